package handlers_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalByCode(ctx context.Context, storeID, code string) (*domain.Journal, error) {
	args := m.Called(ctx, storeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) FindAllByType(ctx context.Context, storeID, txType string) ([]domain.Journal, error) {
	args := m.Called(ctx, storeID, txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, txType string, details domain.Details, userID, storeID string, tx pgx.Tx) (*domain.Journal, error) {
	args := m.Called(ctx, txType, details, userID, storeID, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ProcessStockAdjustment(ctx context.Context, adjustments []domain.StockAdjustment, userID string, tx pgx.Tx, storeID string) (*domain.Journal, error) {
	args := m.Called(ctx, adjustments, userID, tx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) VerifyJournal(ctx context.Context, storeID, code, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, storeID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) RecordActivity(ctx context.Context, txType string, details domain.Details, userID, storeID string) {
	m.Called(ctx, txType, details, userID, storeID)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, storeID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, storeID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, storeID string) ([]domain.Account, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, storeID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, storeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, storeID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, storeID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, storeID, accountID string) error {
	args := m.Called(ctx, storeID, accountID)
	return args.Error(0)
}

func (m *MockAccountService) InstallDefaults(ctx context.Context, storeID, userID string) (*dto.InstallDefaultsResponse, error) {
	args := m.Called(ctx, storeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InstallDefaultsResponse), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalConfigService ---
type MockJournalConfigService struct {
	mock.Mock
}

func (m *MockJournalConfigService) CreateConfig(ctx context.Context, storeID string, req dto.CreateJournalConfigRequest, userID string) (*domain.JournalConfig, error) {
	args := m.Called(ctx, storeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalConfig), args.Error(1)
}

func (m *MockJournalConfigService) GetConfig(ctx context.Context, storeID, configID string) (*domain.JournalConfig, error) {
	args := m.Called(ctx, storeID, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalConfig), args.Error(1)
}

func (m *MockJournalConfigService) ListConfigs(ctx context.Context, storeID string) ([]domain.JournalConfig, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalConfig), args.Error(1)
}

func (m *MockJournalConfigService) UpdateConfig(ctx context.Context, storeID, configID string, req dto.UpdateJournalConfigRequest, userID string) (*domain.JournalConfig, error) {
	args := m.Called(ctx, storeID, configID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalConfig), args.Error(1)
}

func (m *MockJournalConfigService) DeleteConfig(ctx context.Context, storeID, configID, userID string) error {
	args := m.Called(ctx, storeID, configID, userID)
	return args.Error(0)
}

func (m *MockJournalConfigService) DiscoverDetailKeys(ctx context.Context, storeID string) ([]domain.DetailKeyStat, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DetailKeyStat), args.Error(1)
}

var _ portssvc.JournalConfigSvcFacade = (*MockJournalConfigService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetFinancialReport(ctx context.Context, storeID string, startDate, endDate time.Time) ([]domain.FinancialReportRow, error) {
	args := m.Called(ctx, storeID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialReportRow), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
