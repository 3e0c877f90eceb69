package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
)

// fakeTx stands in for a live transaction. Calling any pgx.Tx method on it panics,
// which is fine because services only hand it back to the mocked repositories.
type fakeTx struct{ pgx.Tx }

// mockTxManager provides Begin/Commit/Rollback for the mocked repositories.
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockJournalRepository is a mock implementation of JournalRepositoryWithTx
type MockJournalRepository struct {
	mockTxManager
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByCodePrefix(ctx context.Context, prefix string) ([]domain.Journal, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByStore(ctx context.Context, storeID string) ([]domain.Journal, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindDetailsInRange(ctx context.Context, storeID string, from, to time.Time) ([]domain.JournalDetail, error) {
	args := m.Called(ctx, storeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalDetail), args.Error(1)
}

func (m *MockJournalRepository) CountDetailKeys(ctx context.Context, storeID string) ([]domain.DetailKeyStat, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DetailKeyStat), args.Error(1)
}

func (m *MockJournalRepository) MarkVerified(ctx context.Context, code, userID string, at time.Time) error {
	args := m.Called(ctx, code, userID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) LockCodePrefixTx(ctx context.Context, tx pgx.Tx, prefix string) error {
	args := m.Called(ctx, tx, prefix)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLastCodeTx(ctx context.Context, tx pgx.Tx, prefix string) (string, error) {
	args := m.Called(ctx, tx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, details []domain.JournalDetail) error {
	args := m.Called(ctx, tx, journal, details)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of AccountRepositoryWithTx
type MockAccountRepository struct {
	mockTxManager
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, storeID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, storeID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, storeID, code string) (*domain.Account, error) {
	args := m.Called(ctx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, storeID string) ([]domain.Account, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountChildren(ctx context.Context, storeID, accountID string) (int, error) {
	args := m.Called(ctx, storeID, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, storeID, accountID string) error {
	args := m.Called(ctx, storeID, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDTx(ctx context.Context, tx pgx.Tx, storeID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, storeID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCodeTx(ctx context.Context, tx pgx.Tx, storeID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ListChildIDsTx(ctx context.Context, tx pgx.Tx, storeID, parentID string) ([]string, error) {
	args := m.Called(ctx, tx, storeID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) UpdateChildrenCategoryTx(ctx context.Context, tx pgx.Tx, storeID, parentID string, category domain.AccountCategory, userID string, now time.Time) error {
	args := m.Called(ctx, tx, storeID, parentID, category, userID, now)
	return args.Error(0)
}

// MockJournalConfigRepository is a mock implementation of JournalConfigRepositoryFacade
type MockJournalConfigRepository struct {
	mock.Mock
}

var _ portsrepo.JournalConfigRepositoryFacade = (*MockJournalConfigRepository)(nil)

func (m *MockJournalConfigRepository) ListConfigsByStore(ctx context.Context, storeID string) ([]domain.JournalConfig, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalConfig), args.Error(1)
}

func (m *MockJournalConfigRepository) FindConfigByID(ctx context.Context, storeID, configID string) (*domain.JournalConfig, error) {
	args := m.Called(ctx, storeID, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalConfig), args.Error(1)
}

func (m *MockJournalConfigRepository) SaveConfig(ctx context.Context, cfg domain.JournalConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockJournalConfigRepository) UpdateConfig(ctx context.Context, cfg domain.JournalConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockJournalConfigRepository) SoftDeleteConfig(ctx context.Context, storeID, configID, userID string, now time.Time) error {
	args := m.Called(ctx, storeID, configID, userID, now)
	return args.Error(0)
}

func (m *MockJournalConfigRepository) SaveConfigTx(ctx context.Context, tx pgx.Tx, cfg domain.JournalConfig) error {
	args := m.Called(ctx, tx, cfg)
	return args.Error(0)
}

// MockLocker is a mock implementation of the Locker port
type MockLocker struct {
	mock.Mock
}

var _ portssvc.Locker = (*MockLocker)(nil)

func (m *MockLocker) Obtain(ctx context.Context, key string) (portssvc.Lock, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portssvc.Lock), args.Error(1)
}

type MockLock struct {
	mock.Mock
}

func (m *MockLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
