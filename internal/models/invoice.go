package models

import "github.com/shopspring/decimal"

// Invoice holds the figures derived for a completed service. It is computed
// from the service's labor cost and part usage and is not persisted on its own.
type Invoice struct {
	PartsCost decimal.Decimal `json:"parts_cost"`
	LaborCost decimal.Decimal `json:"labor_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Taxes     decimal.Decimal `json:"taxes"`
	Total     decimal.Decimal `json:"total"`
}
