package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier represents a parts vendor the shop buys from.
type Supplier struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	NIT            string             `json:"nit" bson:"nit"`
	Contact        string             `json:"contact" bson:"contact"`
	VisitFrequency string             `json:"visit_frequency" bson:"visit_frequency"` // "weekly", "biweekly", "monthly"
	Status         string             `json:"status" bson:"status"`                   // "active" or "inactive"
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// SupplierEvaluation scores a supplier on four axes, each 1..5.
// TotalRating is derived as the mean of the four and is never set directly.
type SupplierEvaluation struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SupplierID          string             `json:"supplier_id" bson:"supplier_id"`
	EvaluationDate      time.Time          `json:"evaluation_date" bson:"evaluation_date"`
	DeliveryRating      int                `json:"delivery_rating" bson:"delivery_rating"`
	QualityRating       int                `json:"quality_rating" bson:"quality_rating"`
	PriceRating         int                `json:"price_rating" bson:"price_rating"`
	CommunicationRating int                `json:"communication_rating" bson:"communication_rating"`
	TotalRating         float64            `json:"total_rating" bson:"total_rating"`
	Comments            string             `json:"comments" bson:"comments"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`
}
