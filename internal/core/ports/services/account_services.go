package services

import (
	"context"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account of a store.
	GetAccountByID(ctx context.Context, storeID, accountID string) (*domain.Account, error)

	// ListAccounts returns the chart of accounts of a store in code order.
	ListAccounts(ctx context.Context, storeID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	// CreateAccount adds an account. A child inherits its parent's category.
	CreateAccount(ctx context.Context, storeID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount edits an account and propagates category changes down its subtree.
	UpdateAccount(ctx context.Context, storeID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes a non-system account without children.
	DeleteAccount(ctx context.Context, storeID, accountID string) error
}

// AccountInstallerSvc seeds the default chart of accounts and posting rules.
type AccountInstallerSvc interface {
	InstallDefaults(ctx context.Context, storeID, userID string) (*dto.InstallDefaultsResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountInstallerSvc
}
