package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
)

func TestJournalConfigMapping_PreservesMatchAndNulls(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	d := domain.JournalConfig{
		ConfigID:        "cfg-1",
		StoreID:         "store-1",
		TransactionType: domain.TxStockAdjustment,
		Match:           domain.PrefixKey("stok_qty_plus#"),
		AccountID:       "acc-inv",
		Position:        domain.Debit,
		AuditFields:     domain.AuditFields{CreatedAt: now, CreatedBy: "user-1", LastUpdatedAt: now, LastUpdatedBy: "user-1"},
	}

	m := ToModelJournalConfig(d)
	assert.Equal(t, "PREFIX", m.MatchKind)
	assert.Equal(t, "stok_qty_plus#", m.DetailKey)
	assert.False(t, m.Description.Valid)
	assert.False(t, m.DeletedAt.Valid)
	assert.False(t, m.DeletedBy.Valid)

	assert.Equal(t, d, ToDomainJournalConfig(m))
}

func TestJournalMapping_VerifiedFields(t *testing.T) {
	at := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	unverified := domain.Journal{JournalID: "j-1", Code: "SALE-store-1-20250304-0001", CreatedAt: at, CreatedBy: "user-1"}

	m := ToModelJournal(unverified)
	assert.False(t, m.VerifiedBy.Valid)
	assert.False(t, m.VerifiedAt.Valid)
	assert.Nil(t, ToDomainJournal(m).VerifiedAt)

	verified := unverified
	verified.VerifiedBy = "user-2"
	verified.VerifiedAt = &at
	back := ToDomainJournal(ToModelJournal(verified))
	assert.Equal(t, "user-2", back.VerifiedBy)
	if assert.NotNil(t, back.VerifiedAt) {
		assert.True(t, at.Equal(*back.VerifiedAt))
	}
}

func TestJournalDetailMapping_KeepsLineNumber(t *testing.T) {
	d := domain.JournalDetail{DetailID: "d-1", JournalCode: "SALE-store-1-20250304-0001", Key: "qty#0", Value: "2"}
	m := ToModelJournalDetail(d, 3)
	assert.Equal(t, 3, m.LineNo)
	assert.Equal(t, d, ToDomainJournalDetail(m))
}
