package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Technician represents a shop employee who performs services.
type Technician struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	DocumentID string             `bson:"document_id" json:"document_id"`
	Specialty  string             `bson:"specialty" json:"specialty"` // "engine", "electrical", "bodywork", "general"
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"`
	Status     string             `bson:"status" json:"status"` // "active" or "inactive"
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// Customer represents a vehicle owner.
type Customer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	DocumentID string             `bson:"document_id" json:"document_id"`
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"`
	Address    string             `bson:"address" json:"address"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
