package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseOrderStatus is the closed set of states a purchase order moves through.
type PurchaseOrderStatus string

const (
	OrderPending   PurchaseOrderStatus = "PENDING"
	OrderSent      PurchaseOrderStatus = "SENT"
	OrderReceived  PurchaseOrderStatus = "RECEIVED"
	OrderCancelled PurchaseOrderStatus = "CANCELLED"
)

// ParsePurchaseOrderStatus converts a raw string into a PurchaseOrderStatus.
func ParsePurchaseOrderStatus(s string) (PurchaseOrderStatus, error) {
	switch PurchaseOrderStatus(s) {
	case OrderPending, OrderSent, OrderReceived, OrderCancelled:
		return PurchaseOrderStatus(s), nil
	default:
		return "", fmt.Errorf("unknown purchase order status %q", s)
	}
}

// PurchaseOrder is an order for parts placed with a supplier. Total is
// derived from Details and must be recomputed after every detail mutation.
type PurchaseOrder struct {
	ID                 primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	SupplierID         string                `json:"supplier_id" bson:"supplier_id"`
	OrderDate          time.Time             `json:"order_date" bson:"order_date"`
	ExpectedDate       *time.Time            `json:"expected_date,omitempty" bson:"expected_date,omitempty"`
	ActualDeliveryDate *time.Time            `json:"actual_delivery_date,omitempty" bson:"actual_delivery_date,omitempty"`
	Status             PurchaseOrderStatus   `json:"status" bson:"status"`
	Notes              string                `json:"notes" bson:"notes"`
	Total              float64               `json:"total" bson:"total"` // in COP
	Details            []PurchaseOrderDetail `json:"details" bson:"details"`
	CreatedAt          time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at" bson:"updated_at"`
}

// PurchaseOrderDetail is one line item within a purchase order. It is owned
// by its order and mutated only through the order's detail operations.
type PurchaseOrderDetail struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PurchaseOrderID    string             `json:"purchase_order_id" bson:"purchase_order_id"`
	PartID             string             `json:"part_id" bson:"part_id"`
	QuantityOrdered    int                `json:"quantity_ordered" bson:"quantity_ordered"`
	EstimatedUnitPrice float64            `json:"estimated_unit_price" bson:"estimated_unit_price"`
}

// LineTotal is quantity times estimated unit price.
func (d *PurchaseOrderDetail) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(int64(d.QuantityOrdered)).Mul(decimal.NewFromFloat(d.EstimatedUnitPrice))
}
