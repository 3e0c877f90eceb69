package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
	configRepo  portsrepo.JournalConfigReader
	loc         *time.Location
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingLocation sets the time zone that defines day boundaries.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, configRepo portsrepo.JournalConfigReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		configRepo:  configRepo,
		loc:         time.UTC,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetFinancialReport posts every detail value of the period to the accounts its
// rules resolve to and returns one row per account in code order, idle accounts included.
func (s *reportingService) GetFinancialReport(ctx context.Context, storeID string, startDate, endDate time.Time) ([]domain.FinancialReportRow, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	from := startOfDay(startDate, s.loc)
	to := endOfDay(endDate, s.loc)
	if to.Before(from) {
		return nil, apperrors.NewValidationError("endDate must not be before startDate")
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, storeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for report", slog.String("store_id", storeID))
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	configs, err := s.configRepo.ListConfigsByStore(ctx, storeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal configs for report", slog.String("store_id", storeID))
		return nil, fmt.Errorf("failed to load journal configs: %w", err)
	}
	details, err := s.journalRepo.FindDetailsInRange(ctx, storeID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal details for report",
			slog.String("store_id", storeID),
			slog.Time("from", from),
			slog.Time("to", to))
		return nil, fmt.Errorf("failed to load journal details: %w", err)
	}

	totals := make(map[string]*accounting.Totals, len(accounts))
	for _, acc := range accounts {
		totals[acc.AccountID] = &accounting.Totals{}
	}

	resolver := accounting.NewConfigResolver(configs)
	for _, d := range details {
		code, err := domain.ParseJournalCode(d.JournalCode)
		if err != nil || code.StoreID != storeID {
			continue
		}
		amount := accounting.ParseAmount(d.Value)
		if amount.IsZero() {
			continue
		}
		for _, cfg := range resolver.Resolve(code.Type, d.Key) {
			if t, ok := totals[cfg.AccountID]; ok {
				t.Post(cfg.Position, amount)
			}
		}
	}

	rows := make([]domain.FinancialReportRow, len(accounts))
	for i, acc := range accounts {
		t := totals[acc.AccountID]
		rows[i] = domain.FinancialReportRow{
			AccountID:     acc.AccountID,
			Code:          acc.Code,
			Name:          acc.Name,
			Category:      acc.Category,
			NormalBalance: acc.NormalBalance,
			Debit:         t.Debit,
			Credit:        t.Credit,
			Balance:       accounting.CalculateBalance(acc.NormalBalance, *t),
		}
	}

	s.LogInfo(ctx, "Financial report generated successfully",
		slog.String("store_id", storeID),
		slog.Int("account_count", len(rows)),
		slog.Int("detail_count", len(details)))
	return rows, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}
