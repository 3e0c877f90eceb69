package dto

import (
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
)

// CreateJournalConfigRequest defines a new posting rule. When matchKind is
// omitted a detailKey ending with "_" is treated as a prefix.
type CreateJournalConfigRequest struct {
	TransactionType string          `json:"transactionType" binding:"required,max=50"`
	DetailKey       string          `json:"detailKey" binding:"required,max=255"`
	MatchKind       string          `json:"matchKind" binding:"omitempty,oneof=EXACT PREFIX exact prefix"`
	AccountID       string          `json:"accountUuid" binding:"required"`
	Position        domain.Position `json:"position" binding:"required,oneof=DEBIT CREDIT"`
	Description     string          `json:"description"`
}

// UpdateJournalConfigRequest changes selected fields of a posting rule.
type UpdateJournalConfigRequest struct {
	TransactionType *string          `json:"transactionType" binding:"omitempty,max=50"`
	DetailKey       *string          `json:"detailKey" binding:"omitempty,max=255"`
	MatchKind       *string          `json:"matchKind" binding:"omitempty,oneof=EXACT PREFIX exact prefix"`
	AccountID       *string          `json:"accountUuid"`
	Position        *domain.Position `json:"position" binding:"omitempty,oneof=DEBIT CREDIT"`
	Description     *string          `json:"description"`
}

// JournalConfigResponse is the API form of a posting rule.
type JournalConfigResponse struct {
	ConfigID        string           `json:"uuid"`
	TransactionType string           `json:"transactionType"`
	DetailKey       string           `json:"detailKey"`
	MatchKind       domain.MatchKind `json:"matchKind"`
	AccountID       string           `json:"accountUuid"`
	Position        domain.Position  `json:"position"`
	Description     string           `json:"description"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       string           `json:"createdBy"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy   string           `json:"lastUpdatedBy"`
}

// ToJournalConfigResponse converts a domain.JournalConfig.
func ToJournalConfigResponse(cfg *domain.JournalConfig) JournalConfigResponse {
	return JournalConfigResponse{
		ConfigID:        cfg.ConfigID,
		TransactionType: cfg.TransactionType,
		DetailKey:       cfg.Match.Key,
		MatchKind:       cfg.Match.Kind,
		AccountID:       cfg.AccountID,
		Position:        cfg.Position,
		Description:     cfg.Description,
		CreatedAt:       cfg.CreatedAt,
		CreatedBy:       cfg.CreatedBy,
		LastUpdatedAt:   cfg.LastUpdatedAt,
		LastUpdatedBy:   cfg.LastUpdatedBy,
	}
}

// ToJournalConfigListResponse converts a slice of posting rules.
func ToJournalConfigListResponse(configs []domain.JournalConfig) []JournalConfigResponse {
	res := make([]JournalConfigResponse, len(configs))
	for i := range configs {
		res[i] = ToJournalConfigResponse(&configs[i])
	}
	return res
}

// DiscoveryResponse lists detail keys seen in journals and whether they are mapped.
type DiscoveryResponse struct {
	Keys     []domain.DetailKeyStat `json:"keys"`
	Unmapped int                    `json:"unmapped"`
}
