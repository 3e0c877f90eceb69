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

const accountColumns = `account_id, store_id, code, name, category, normal_balance, is_system,
	parent_account_id, description, created_at, created_by, last_updated_at, last_updated_by`

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.StoreID,
		&m.Code,
		&m.Name,
		&m.Category,
		&m.NormalBalance,
		&m.IsSystem,
		&m.ParentAccountID,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAccountRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*domain.Account, error) {
	m, err := scanAccount(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, "failed to find account")
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, storeID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE store_id = $1 AND account_id = $2;`
	return r.findOne(ctx, r.Pool, query, storeID, accountID)
}

// FindAccountByCode retrieves an account by its display code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, storeID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE store_id = $1 AND code = $2;`
	return r.findOne(ctx, r.Pool, query, storeID, code)
}

// ListAccounts retrieves all accounts of a store ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, storeID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE store_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for store %s: %w", storeID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// CountChildren returns how many accounts name accountID as their parent.
func (r *PgxAccountRepository) CountChildren(ctx context.Context, storeID, accountID string) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE store_id = $1 AND parent_account_id = $2;`,
		storeID, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count children of account %s: %w", accountID, err)
	}
	return n, nil
}

const insertAccountQuery = `
	INSERT INTO accounts (` + accountColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

func insertAccountArgs(account domain.Account) []any {
	m := mapping.ToModelAccount(account)
	return []any{
		m.AccountID,
		m.StoreID,
		m.Code,
		m.Name,
		m.Category,
		m.NormalBalance,
		m.IsSystem,
		m.ParentAccountID,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, err := r.Pool.Exec(ctx, insertAccountQuery, insertAccountArgs(account)...); err != nil {
		return mapPgError(err, fmt.Sprintf("failed to save account %s", account.Code))
	}
	return nil
}

// SaveAccountTx inserts a new account within tx.
func (r *PgxAccountRepository) SaveAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	if _, err := tx.Exec(ctx, insertAccountQuery, insertAccountArgs(account)...); err != nil {
		return mapPgError(err, fmt.Sprintf("failed to save account %s", account.Code))
	}
	return nil
}

// DeleteAccount removes a non-system account. Rows referenced by configs fail with a validation error.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, storeID, accountID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM accounts WHERE store_id = $1 AND account_id = $2 AND NOT is_system;`,
		storeID, accountID)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to delete account %s", accountID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account", accountID)
	}
	return nil
}

// FindAccountByIDTx reads an account and holds a row lock until tx ends.
func (r *PgxAccountRepository) FindAccountByIDTx(ctx context.Context, tx pgx.Tx, storeID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE store_id = $1 AND account_id = $2 FOR UPDATE;`
	return r.findOne(ctx, tx, query, storeID, accountID)
}

// FindAccountByCodeTx reads an account by code within tx.
func (r *PgxAccountRepository) FindAccountByCodeTx(ctx context.Context, tx pgx.Tx, storeID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE store_id = $1 AND code = $2;`
	return r.findOne(ctx, tx, query, storeID, code)
}

// UpdateAccountTx writes the editable columns of an account.
func (r *PgxAccountRepository) UpdateAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET code = $3, name = $4, category = $5, normal_balance = $6,
		    parent_account_id = $7, description = $8, last_updated_at = $9, last_updated_by = $10
		WHERE store_id = $1 AND account_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.StoreID,
		m.AccountID,
		m.Code,
		m.Name,
		m.Category,
		m.NormalBalance,
		m.ParentAccountID,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to update account %s", m.AccountID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account", m.AccountID)
	}
	return nil
}

// ListChildIDsTx returns the direct children of parentID.
func (r *PgxAccountRepository) ListChildIDsTx(ctx context.Context, tx pgx.Tx, storeID, parentID string) ([]string, error) {
	rows, err := tx.Query(ctx,
		`SELECT account_id FROM accounts WHERE store_id = $1 AND parent_account_id = $2 ORDER BY code;`,
		storeID, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children of account %s: %w", parentID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan child ids of account %s: %w", parentID, err)
	}
	return ids, nil
}

// UpdateChildrenCategoryTx sets the category of every direct child of parentID.
func (r *PgxAccountRepository) UpdateChildrenCategoryTx(ctx context.Context, tx pgx.Tx, storeID, parentID string, category domain.AccountCategory, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET category = $3, last_updated_at = $4, last_updated_by = $5
		WHERE store_id = $1 AND parent_account_id = $2;
	`
	if _, err := tx.Exec(ctx, query, storeID, parentID, string(category), now, userID); err != nil {
		return mapPgError(err, fmt.Sprintf("failed to propagate category below account %s", parentID))
	}
	return nil
}
