package repositories

import (
	"context"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByCode retrieves a journal with its details.
	FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error)

	// FindJournalsByCodePrefix returns journals whose code starts with prefix,
	// newest first, with details loaded.
	FindJournalsByCodePrefix(ctx context.Context, prefix string) ([]domain.Journal, error)

	// FindJournalsByStore returns every journal whose code carries the store id, newest first.
	FindJournalsByStore(ctx context.Context, storeID string) ([]domain.Journal, error)

	// FindDetailsInRange returns the details of store journals created within [from, to].
	FindDetailsInRange(ctx context.Context, storeID string, from, to time.Time) ([]domain.JournalDetail, error)

	// CountDetailKeys aggregates detail keys per transaction type for a store.
	CountDetailKeys(ctx context.Context, storeID string) ([]domain.DetailKeyStat, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// MarkVerified sets the verifier of a journal that is not verified yet.
	MarkVerified(ctx context.Context, code, userID string, at time.Time) error
}

// JournalTransactionSupport defines journal operations that run inside a caller owned transaction.
type JournalTransactionSupport interface {
	// LockCodePrefixTx serializes code generation for one code bucket until the transaction ends.
	LockCodePrefixTx(ctx context.Context, tx pgx.Tx, prefix string) error

	// FindLastCodeTx returns the greatest code starting with prefix, or "" when there is none.
	FindLastCodeTx(ctx context.Context, tx pgx.Tx, prefix string) (string, error)

	// SaveJournalTx inserts a journal header and its detail rows.
	SaveJournalTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, details []domain.JournalDetail) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
