package purchasing

import (
	"errors"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNegativeInput = errors.New("quantity and estimated unit price must not be negative")

// RecomputeTotal sets the order total to the sum of its line items. The
// stored total is never trusted; every detail mutation goes through here.
func RecomputeTotal(order *models.PurchaseOrder) {
	total := decimal.Zero
	for i := range order.Details {
		total = total.Add(order.Details[i].LineTotal())
	}
	order.Total = total.InexactFloat64()
	order.UpdatedAt = time.Now()
}

// AddDetail appends a line item to the order, back-references the parent
// order on the detail and recomputes the total. Details without an ID are
// assigned one.
func AddDetail(order *models.PurchaseOrder, detail models.PurchaseOrderDetail) error {
	if detail.QuantityOrdered < 0 || detail.EstimatedUnitPrice < 0 {
		return ErrNegativeInput
	}
	if detail.ID.IsZero() {
		detail.ID = primitive.NewObjectID()
	}
	detail.PurchaseOrderID = order.ID.Hex()
	order.Details = append(order.Details, detail)
	RecomputeTotal(order)
	return nil
}

// RemoveDetail deletes the line item with the given ID and recomputes the
// total. It reports whether a detail was actually removed; when the ID is
// not present the order, total included, is left unchanged.
func RemoveDetail(order *models.PurchaseOrder, detailID primitive.ObjectID) bool {
	for i := range order.Details {
		if order.Details[i].ID == detailID {
			order.Details = append(order.Details[:i], order.Details[i+1:]...)
			RecomputeTotal(order)
			return true
		}
	}
	return false
}

// SetDetails replaces the whole detail list and recomputes the total.
func SetDetails(order *models.PurchaseOrder, details []models.PurchaseOrderDetail) error {
	for i := range details {
		if details[i].QuantityOrdered < 0 || details[i].EstimatedUnitPrice < 0 {
			return ErrNegativeInput
		}
	}
	order.Details = make([]models.PurchaseOrderDetail, len(details))
	for i, d := range details {
		if d.ID.IsZero() {
			d.ID = primitive.NewObjectID()
		}
		d.PurchaseOrderID = order.ID.Hex()
		order.Details[i] = d
	}
	RecomputeTotal(order)
	return nil
}
