package repositories

import (
	"context"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalConfigReader defines read operations for posting rules
type JournalConfigReader interface {
	// ListConfigsByStore returns the active posting rules of a store.
	ListConfigsByStore(ctx context.Context, storeID string) ([]domain.JournalConfig, error)

	// FindConfigByID retrieves an active posting rule.
	FindConfigByID(ctx context.Context, storeID, configID string) (*domain.JournalConfig, error)
}

// JournalConfigWriter defines write operations for posting rules
type JournalConfigWriter interface {
	SaveConfig(ctx context.Context, cfg domain.JournalConfig) error
	UpdateConfig(ctx context.Context, cfg domain.JournalConfig) error
	// SoftDeleteConfig stamps deletedAt/deletedBy on an active rule.
	SoftDeleteConfig(ctx context.Context, storeID, configID, userID string, now time.Time) error
	// SaveConfigTx persists a rule within a caller owned transaction.
	SaveConfigTx(ctx context.Context, tx pgx.Tx, cfg domain.JournalConfig) error
}

// JournalConfigRepositoryFacade combines all posting rule repository interfaces
type JournalConfigRepositoryFacade interface {
	JournalConfigReader
	JournalConfigWriter
}
