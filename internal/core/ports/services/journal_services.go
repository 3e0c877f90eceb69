package services

import (
	"context"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByCode retrieves a journal of a store with its details.
	GetJournalByCode(ctx context.Context, storeID, code string) (*domain.Journal, error)

	// FindAllByType returns the store's journals of one type, newest first.
	// An empty type returns every journal of the store.
	FindAllByType(ctx context.Context, storeID, txType string) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journal data.
// Operations taking a pgx.Tx join it when it is non-nil and otherwise run in their own transaction.
type JournalWriterSvc interface {
	// CreateJournal flattens details and stores them under a new sequential code.
	CreateJournal(ctx context.Context, txType string, details domain.Details, userID, storeID string, tx pgx.Tx) (*domain.Journal, error)

	// ProcessStockAdjustment journals the non-zero quantity changes as a STOCK_ADJUSTMENT.
	// It returns a nil journal when nothing changed.
	ProcessStockAdjustment(ctx context.Context, adjustments []domain.StockAdjustment, userID string, tx pgx.Tx, storeID string) (*domain.Journal, error)

	// VerifyJournal marks a journal verified. Verifying twice is a no-op.
	VerifyJournal(ctx context.Context, storeID, code, userID string) (*domain.Journal, error)
}

// ActivityRecorder writes advisory journals whose failure must not fail the caller.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, txType string, details domain.Details, userID, storeID string)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	ActivityRecorder
}
