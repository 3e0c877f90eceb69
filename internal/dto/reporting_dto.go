package dto

import (
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancialReportParams are the query parameters of the financial report.
type FinancialReportParams struct {
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"required,datetime=2006-01-02"`
}

// FinancialReportRowResponse is one account line of the financial report.
type FinancialReportRowResponse struct {
	AccountID     string                 `json:"uuid"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Category      domain.AccountCategory `json:"category"`
	NormalBalance domain.NormalBalance   `json:"normalBalance"`
	Debit         decimal.Decimal        `json:"debit"`
	Credit        decimal.Decimal        `json:"credit"`
	Balance       decimal.Decimal        `json:"balance"`
}

// ToFinancialReportResponse converts report rows to their response form.
func ToFinancialReportResponse(rows []domain.FinancialReportRow) []FinancialReportRowResponse {
	res := make([]FinancialReportRowResponse, len(rows))
	for i, r := range rows {
		res[i] = FinancialReportRowResponse(r)
	}
	return res
}
