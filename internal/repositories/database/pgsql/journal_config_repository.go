package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	"github.com/api-diengcyber/transaksi-sub000/internal/models"
	"github.com/api-diengcyber/transaksi-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalConfigColumns = `config_id, store_id, transaction_type, match_kind, detail_key, account_id, position,
	description, created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`

type PgxJournalConfigRepository struct {
	BaseRepository
}

// newPgxJournalConfigRepository creates a new repository for posting rules.
func newPgxJournalConfigRepository(pool *pgxpool.Pool) portsrepo.JournalConfigRepositoryFacade {
	return &PgxJournalConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalConfigRepositoryFacade = (*PgxJournalConfigRepository)(nil)

func scanJournalConfig(row pgx.Row) (models.JournalConfig, error) {
	var m models.JournalConfig
	err := row.Scan(
		&m.ConfigID,
		&m.StoreID,
		&m.TransactionType,
		&m.MatchKind,
		&m.DetailKey,
		&m.AccountID,
		&m.Position,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&m.DeletedBy,
	)
	return m, err
}

// ListConfigsByStore returns the store's active rules.
func (r *PgxJournalConfigRepository) ListConfigsByStore(ctx context.Context, storeID string) ([]domain.JournalConfig, error) {
	query := `
		SELECT ` + journalConfigColumns + `
		FROM journal_configs
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY transaction_type, detail_key, position;
	`
	rows, err := r.Pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal configs for store %s: %w", storeID, err)
	}
	defer rows.Close()

	var configs []domain.JournalConfig
	for rows.Next() {
		m, err := scanJournalConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal config row: %w", err)
		}
		configs = append(configs, mapping.ToDomainJournalConfig(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal config rows: %w", err)
	}
	return configs, nil
}

// FindConfigByID retrieves an active rule.
func (r *PgxJournalConfigRepository) FindConfigByID(ctx context.Context, storeID, configID string) (*domain.JournalConfig, error) {
	query := `
		SELECT ` + journalConfigColumns + `
		FROM journal_configs
		WHERE store_id = $1 AND config_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanJournalConfig(r.Pool.QueryRow(ctx, query, storeID, configID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("journal config", configID)
		}
		return nil, fmt.Errorf("failed to find journal config %s: %w", configID, err)
	}
	cfg := mapping.ToDomainJournalConfig(m)
	return &cfg, nil
}

const insertJournalConfigQuery = `
	INSERT INTO journal_configs (` + journalConfigColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func insertJournalConfigArgs(cfg domain.JournalConfig) []any {
	m := mapping.ToModelJournalConfig(cfg)
	return []any{
		m.ConfigID,
		m.StoreID,
		m.TransactionType,
		m.MatchKind,
		m.DetailKey,
		m.AccountID,
		m.Position,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
		m.DeletedBy,
	}
}

// SaveConfig inserts a rule.
func (r *PgxJournalConfigRepository) SaveConfig(ctx context.Context, cfg domain.JournalConfig) error {
	if _, err := r.Pool.Exec(ctx, insertJournalConfigQuery, insertJournalConfigArgs(cfg)...); err != nil {
		return mapPgError(err, fmt.Sprintf("failed to save journal config %s", cfg.ConfigID))
	}
	return nil
}

// SaveConfigTx inserts a rule within tx.
func (r *PgxJournalConfigRepository) SaveConfigTx(ctx context.Context, tx pgx.Tx, cfg domain.JournalConfig) error {
	if _, err := tx.Exec(ctx, insertJournalConfigQuery, insertJournalConfigArgs(cfg)...); err != nil {
		return mapPgError(err, fmt.Sprintf("failed to save journal config %s", cfg.ConfigID))
	}
	return nil
}

// UpdateConfig rewrites an active rule.
func (r *PgxJournalConfigRepository) UpdateConfig(ctx context.Context, cfg domain.JournalConfig) error {
	m := mapping.ToModelJournalConfig(cfg)
	query := `
		UPDATE journal_configs
		SET transaction_type = $3, match_kind = $4, detail_key = $5, account_id = $6, position = $7,
		    description = $8, last_updated_at = $9, last_updated_by = $10
		WHERE store_id = $1 AND config_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.StoreID,
		m.ConfigID,
		m.TransactionType,
		m.MatchKind,
		m.DetailKey,
		m.AccountID,
		m.Position,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to update journal config %s", m.ConfigID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal config", m.ConfigID)
	}
	return nil
}

// SoftDeleteConfig hides a rule from resolution while keeping it for audit.
func (r *PgxJournalConfigRepository) SoftDeleteConfig(ctx context.Context, storeID, configID, userID string, now time.Time) error {
	query := `
		UPDATE journal_configs
		SET deleted_at = $3, deleted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE store_id = $1 AND config_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, storeID, configID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal config %s: %w", configID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal config", configID)
	}
	return nil
}
