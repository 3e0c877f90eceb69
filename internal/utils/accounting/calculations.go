package accounting

import (
	"regexp"
	"strings"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// leadingNumber matches the numeric prefix of a value such as "12.5kg".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads a detail value as a number. Values that do not start with
// a number, or whose exponent is outside domain.MaxAmountExponent, yield zero
// rather than an error.
func ParseAmount(value string) decimal.Decimal {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		m := leadingNumber.FindString(s)
		if m == "" {
			return decimal.Zero
		}
		if d, err = decimal.NewFromString(m); err != nil {
			return decimal.Zero
		}
	}
	if !domain.AmountInRange(d) {
		return decimal.Zero
	}
	return d
}

// Totals accumulates the debit and credit side of one account.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Post adds amount to the side given by position.
func (t *Totals) Post(position domain.Position, amount decimal.Decimal) {
	switch position {
	case domain.Debit:
		t.Debit = t.Debit.Add(amount)
	case domain.Credit:
		t.Credit = t.Credit.Add(amount)
	}
}

// CalculateBalance returns debit - credit for debit-normal accounts and
// credit - debit otherwise.
func CalculateBalance(normal domain.NormalBalance, totals Totals) decimal.Decimal {
	if normal == domain.NormalDebit {
		return totals.Debit.Sub(totals.Credit)
	}
	return totals.Credit.Sub(totals.Debit)
}
