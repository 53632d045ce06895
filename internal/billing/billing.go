package billing

import (
	"errors"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// IVARate is the Colombian value-added tax applied to the invoice subtotal.
var IVARate = decimal.NewFromFloat(0.19)

var ErrNegativeInput = errors.New("labor cost, quantity and unit price must not be negative")

// PartLine is one consumed-part line feeding the invoice.
type PartLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// ComputeInvoice derives the invoice figures for a service:
// parts cost is the sum over the lines, subtotal adds labor, taxes are 19%
// of the subtotal and total closes the sum. Negative inputs are rejected
// before anything is computed. Amounts are kept exact; rounding for display
// is left to the caller.
func ComputeInvoice(laborCost decimal.Decimal, parts []PartLine) (models.Invoice, error) {
	if laborCost.IsNegative() {
		return models.Invoice{}, ErrNegativeInput
	}
	for _, line := range parts {
		if line.Quantity < 0 || line.UnitPrice.IsNegative() {
			return models.Invoice{}, ErrNegativeInput
		}
	}

	partsCost := decimal.Zero
	for _, line := range parts {
		partsCost = partsCost.Add(decimal.NewFromInt(int64(line.Quantity)).Mul(line.UnitPrice))
	}

	subtotal := partsCost.Add(laborCost)
	taxes := subtotal.Mul(IVARate)
	return models.Invoice{
		PartsCost: partsCost,
		LaborCost: laborCost,
		Subtotal:  subtotal,
		Taxes:     taxes,
		Total:     subtotal.Add(taxes),
	}, nil
}

// InvoiceForUsage computes an invoice from a service's labor cost and its
// recorded part usage.
func InvoiceForUsage(laborCost float64, usage []models.PartUsage) (models.Invoice, error) {
	lines := make([]PartLine, 0, len(usage))
	for _, u := range usage {
		lines = append(lines, PartLine{Quantity: u.Quantity, UnitPrice: decimal.NewFromFloat(u.UnitPrice)})
	}
	return ComputeInvoice(decimal.NewFromFloat(laborCost), lines)
}
