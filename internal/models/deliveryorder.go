package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerSatisfaction is the 1..5 score recorded at vehicle handover.
type CustomerSatisfaction int

const (
	VeryDissatisfied CustomerSatisfaction = 1
	Dissatisfied     CustomerSatisfaction = 2
	Neutral          CustomerSatisfaction = 3
	Satisfied        CustomerSatisfaction = 4
	VerySatisfied    CustomerSatisfaction = 5
)

// ParseCustomerSatisfaction converts a raw score into a CustomerSatisfaction.
func ParseCustomerSatisfaction(v int) (CustomerSatisfaction, error) {
	if v < int(VeryDissatisfied) || v > int(VerySatisfied) {
		return 0, fmt.Errorf("customer satisfaction %d out of range 1..5", v)
	}
	return CustomerSatisfaction(v), nil
}

// DeliveryOrder confirms that a vehicle was handed back to the customer,
// closing its service. Exactly one delivery order may exist per service.
type DeliveryOrder struct {
	ID                   primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	ServiceID            string               `json:"service_id" bson:"service_id"`
	DeliveryDate         time.Time            `json:"delivery_date" bson:"delivery_date"`
	DeliveredBy          string               `json:"delivered_by" bson:"delivered_by"`
	ReceivedBy           string               `json:"received_by" bson:"received_by"`
	CustomerSatisfaction CustomerSatisfaction `json:"customer_satisfaction" bson:"customer_satisfaction"`
	CustomerFeedback     string               `json:"customer_feedback" bson:"customer_feedback"`
	FollowUpRequired     bool                 `json:"follow_up_required" bson:"follow_up_required"`
	Notes                string               `json:"notes" bson:"notes"`
	CreatedAt            time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at" bson:"updated_at"`
}
