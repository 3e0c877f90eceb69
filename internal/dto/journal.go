package dto

import (
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleJournalRequest carries the free form payload of a sale.
type CreateSaleJournalRequest struct {
	Details domain.Details `json:"details" binding:"required" swaggertype:"object"`
}

// StockAdjustmentItem is one product quantity change.
type StockAdjustmentItem struct {
	ProductUUID string          `json:"productUuid" binding:"required"`
	UnitUUID    string          `json:"unitUuid"`
	OldQty      decimal.Decimal `json:"oldQty" swaggertype:"string"`
	NewQty      decimal.Decimal `json:"newQty" swaggertype:"string"`
}

// StockAdjustmentRequest lists the quantity changes to journal.
type StockAdjustmentRequest struct {
	Adjustments []StockAdjustmentItem `json:"adjustments" binding:"required,min=1,dive"`
}

// ToDomain converts the request items to domain adjustments.
func (r StockAdjustmentRequest) ToDomain() []domain.StockAdjustment {
	out := make([]domain.StockAdjustment, len(r.Adjustments))
	for i, a := range r.Adjustments {
		out[i] = domain.StockAdjustment{
			ProductUUID: a.ProductUUID,
			UnitUUID:    a.UnitUUID,
			OldQty:      a.OldQty,
			NewQty:      a.NewQty,
		}
	}
	return out
}

// JournalResponse defines the data returned for a journal header.
type JournalResponse struct {
	JournalID       string     `json:"uuid"`
	Code            string     `json:"code"`
	TransactionType string     `json:"transactionType"`
	CreatedAt       time.Time  `json:"createdAt"`
	CreatedBy       string     `json:"createdBy"`
	VerifiedBy      string     `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time `json:"verifiedAt,omitempty"`
}

// JournalDetailResponse is one stored key/value fact.
type JournalDetailResponse struct {
	DetailID string `json:"uuid"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// JournalWithDetailsResponse is a journal with its details.
type JournalWithDetailsResponse struct {
	JournalResponse
	Details []JournalDetailResponse `json:"details"`
}

// CreateJournalResponse is returned by the journal creating endpoints.
type CreateJournalResponse struct {
	Message string                  `json:"message"`
	Journal JournalResponse         `json:"journal"`
	Details []JournalDetailResponse `json:"details"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:       j.JournalID,
		Code:            j.Code,
		TransactionType: j.TransactionType,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
		VerifiedBy:      j.VerifiedBy,
		VerifiedAt:      j.VerifiedAt,
	}
}

// ToJournalDetailResponses converts stored details to their response form.
func ToJournalDetailResponses(details []domain.JournalDetail) []JournalDetailResponse {
	res := make([]JournalDetailResponse, len(details))
	for i, d := range details {
		res[i] = JournalDetailResponse{DetailID: d.DetailID, Key: d.Key, Value: d.Value}
	}
	return res
}

// ToCreateJournalResponse wraps a freshly created journal.
func ToCreateJournalResponse(message string, j *domain.Journal) CreateJournalResponse {
	return CreateJournalResponse{
		Message: message,
		Journal: ToJournalResponse(j),
		Details: ToJournalDetailResponses(j.Details),
	}
}

// ToJournalListResponse converts journals with their details.
func ToJournalListResponse(journals []domain.Journal) []JournalWithDetailsResponse {
	res := make([]JournalWithDetailsResponse, len(journals))
	for i := range journals {
		res[i] = JournalWithDetailsResponse{
			JournalResponse: ToJournalResponse(&journals[i]),
			Details:         ToJournalDetailResponses(journals[i].Details),
		}
	}
	return res
}
