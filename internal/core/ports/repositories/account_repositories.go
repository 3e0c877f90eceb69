package repositories

import (
	"context"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account of a store by its identifier.
	FindAccountByID(ctx context.Context, storeID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account of a store by its display code.
	FindAccountByCode(ctx context.Context, storeID, code string) (*domain.Account, error)

	// ListAccounts returns every account of a store ordered by code.
	ListAccounts(ctx context.Context, storeID string) ([]domain.Account, error)

	// CountChildren returns the number of direct children of an account.
	CountChildren(ctx context.Context, storeID, accountID string) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes a non-system account.
	DeleteAccount(ctx context.Context, storeID, accountID string) error
}

// AccountTransactionSupport defines account operations that run inside a caller owned transaction.
type AccountTransactionSupport interface {
	// FindAccountByIDTx reads an account and locks its row for the rest of the transaction.
	FindAccountByIDTx(ctx context.Context, tx pgx.Tx, storeID, accountID string) (*domain.Account, error)

	// FindAccountByCodeTx reads an account by code within a transaction.
	FindAccountByCodeTx(ctx context.Context, tx pgx.Tx, storeID, code string) (*domain.Account, error)

	// SaveAccountTx persists a new account within a transaction.
	SaveAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccountTx updates an account's editable fields within a transaction.
	UpdateAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// ListChildIDsTx returns the ids of the direct children of an account.
	ListChildIDsTx(ctx context.Context, tx pgx.Tx, storeID, parentID string) ([]string, error)

	// UpdateChildrenCategoryTx sets the category of every direct child of parentID.
	UpdateChildrenCategoryTx(ctx context.Context, tx pgx.Tx, storeID, parentID string, category domain.AccountCategory, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
