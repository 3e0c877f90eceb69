package domain

import (
	"github.com/shopspring/decimal"
)

// FinancialReportRow is one account line of the financial report.
type FinancialReportRow struct {
	AccountID     string          `json:"uuid"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      AccountCategory `json:"category"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}

// DetailKeyStat summarises how often a detail key was posted for a transaction type
// and whether any active journal config resolves it.
type DetailKeyStat struct {
	TransactionType string `json:"transactionType"`
	Key             string `json:"key"`
	Occurrences     int64  `json:"occurrences"`
	Mapped          bool   `json:"mapped"`
}
