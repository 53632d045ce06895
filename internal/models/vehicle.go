package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Vehicle represents a customer vehicle serviced by the shop.
type Vehicle struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Brand      string             `bson:"brand" json:"brand"`
	Model      string             `bson:"model" json:"model"`
	Plate      string             `bson:"plate" json:"plate"`
	Type       string             `bson:"type" json:"type"` // "car", "motorcycle", "truck", "van"
	CustomerID string             `bson:"customer_id" json:"customer_id"`
	Mileage    float64            `bson:"mileage" json:"mileage"` // in kilometers
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
