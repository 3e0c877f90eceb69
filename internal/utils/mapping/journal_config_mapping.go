package mapping

import (
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/api-diengcyber/transaksi-sub000/internal/models"
)

// ToModelJournalConfig converts a domain JournalConfig to a model JournalConfig
func ToModelJournalConfig(d domain.JournalConfig) models.JournalConfig {
	return models.JournalConfig{
		ConfigID:        d.ConfigID,
		StoreID:         d.StoreID,
		TransactionType: d.TransactionType,
		MatchKind:       string(d.Match.Kind),
		DetailKey:       d.Match.Key,
		AccountID:       d.AccountID,
		Position:        string(d.Position),
		Description:     NullString(d.Description),
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       NullTime(d.DeletedAt),
		DeletedBy:       NullString(d.DeletedBy),
	}
}

// ToDomainJournalConfig converts a model JournalConfig to a domain JournalConfig
func ToDomainJournalConfig(m models.JournalConfig) domain.JournalConfig {
	return domain.JournalConfig{
		ConfigID:        m.ConfigID,
		StoreID:         m.StoreID,
		TransactionType: m.TransactionType,
		Match:           domain.KeyMatch{Kind: domain.MatchKind(m.MatchKind), Key: m.DetailKey},
		AccountID:       m.AccountID,
		Position:        domain.Position(m.Position),
		Description:     m.Description.String,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       TimePtr(m.DeletedAt),
		DeletedBy:       m.DeletedBy.String,
	}
}
