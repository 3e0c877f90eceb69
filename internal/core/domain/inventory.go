package domain

import "github.com/shopspring/decimal"

// MaxAmountExponent bounds the decimal exponent of amounts and quantities.
// Anything outside is not a real-world figure, and rendering it would expand
// every digit.
const MaxAmountExponent = 64

// AmountInRange reports whether d has a usable exponent.
func AmountInRange(d decimal.Decimal) bool {
	e := d.Exponent()
	return e >= -MaxAmountExponent && e <= MaxAmountExponent
}

// StockAdjustment is one product quantity change to be journaled.
type StockAdjustment struct {
	ProductUUID string          `json:"productUuid" validate:"required"`
	UnitUUID    string          `json:"unitUuid"`
	OldQty      decimal.Decimal `json:"oldQty"`
	NewQty      decimal.Decimal `json:"newQty"`
}

// InRange reports whether both quantities are within AmountInRange.
func (a StockAdjustment) InRange() bool {
	return AmountInRange(a.OldQty) && AmountInRange(a.NewQty)
}

// Diff returns NewQty - OldQty.
func (a StockAdjustment) Diff() decimal.Decimal {
	return a.NewQty.Sub(a.OldQty)
}
