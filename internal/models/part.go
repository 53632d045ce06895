package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNegativeAmount signals a quantity or price below zero.
var ErrNegativeAmount = errors.New("quantity and unit price must not be negative")

// PartKind classifies inventory parts.
type PartKind string

const (
	PartMechanical PartKind = "MECHANICAL"
	PartElectrical PartKind = "ELECTRICAL"
	PartBodywork   PartKind = "BODYWORK"
	PartConsumable PartKind = "CONSUMABLE"
)

// ParsePartKind converts a raw string into a PartKind.
func ParsePartKind(s string) (PartKind, error) {
	switch PartKind(s) {
	case PartMechanical, PartElectrical, PartBodywork, PartConsumable:
		return PartKind(s), nil
	default:
		return "", fmt.Errorf("unknown part kind %q", s)
	}
}

// Part represents an inventory item sourced from a supplier.
type Part struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Brand           string             `json:"brand" bson:"brand"`
	Model           string             `json:"model" bson:"model"`
	Kind            PartKind           `json:"kind" bson:"kind"`
	QuantityInStock int                `json:"quantity_in_stock" bson:"quantity_in_stock"`
	MinimumStock    int                `json:"minimum_stock" bson:"minimum_stock"`
	UnitPrice       float64            `json:"unit_price" bson:"unit_price"` // in COP
	EntryDate       time.Time          `json:"entry_date" bson:"entry_date"`
	SupplierID      string             `json:"supplier_id" bson:"supplier_id"`
	Status          string             `json:"status" bson:"status"` // "available", "reserved", "out_of_service"
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// LowStock reports whether the part has fallen to or below its reorder threshold.
func (p *Part) LowStock() bool {
	return p.QuantityInStock <= p.MinimumStock
}

// PartUsage records the consumption of a part by a service.
// TotalPrice is derived and kept in sync with Quantity and UnitPrice.
type PartUsage struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ServiceID  string             `json:"service_id" bson:"service_id"`
	PartID     string             `json:"part_id" bson:"part_id"`
	Quantity   int                `json:"quantity" bson:"quantity"`
	UnitPrice  float64            `json:"unit_price" bson:"unit_price"`
	TotalPrice float64            `json:"total_price" bson:"total_price"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewPartUsage builds a usage line with its total derived from quantity and price.
func NewPartUsage(serviceID, partID string, quantity int, unitPrice float64) (*PartUsage, error) {
	u := &PartUsage{ServiceID: serviceID, PartID: partID}
	if err := u.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := u.SetUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	return u, nil
}

// SetQuantity updates the quantity and recomputes the line total.
func (u *PartUsage) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeAmount
	}
	u.Quantity = quantity
	u.recalculate()
	return nil
}

// SetUnitPrice updates the unit price and recomputes the line total.
func (u *PartUsage) SetUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return ErrNegativeAmount
	}
	u.UnitPrice = unitPrice
	u.recalculate()
	return nil
}

func (u *PartUsage) recalculate() {
	total := decimal.NewFromInt(int64(u.Quantity)).Mul(decimal.NewFromFloat(u.UnitPrice))
	u.TotalPrice = total.InexactFloat64()
}
