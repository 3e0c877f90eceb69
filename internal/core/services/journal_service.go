package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
)

const defaultCodeAttempts = 3

// Detail keys written for each stock adjustment item.
const (
	StockProductKey = "stok_product_uuid"
	StockUnitKey    = "stok_unit_uuid"
	StockQtyPlusKey = "stok_qty_plus"
	StockQtyMinKey  = "stok_qty_min"
)

// journalService posts journals and reads them back.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryWithTx
	validate     *validator.Validate
	now          func() time.Time
	loc          *time.Location
	codeAttempts int
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalClock overrides the clock used for codes and audit stamps.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// WithJournalLocation sets the time zone that decides the date segment of codes.
func WithJournalLocation(loc *time.Location) JournalServiceOption {
	return func(s *journalService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithCodeAttempts bounds how often a self managed creation is retried after a code conflict.
func WithCodeAttempts(n int) JournalServiceOption {
	return func(s *journalService) {
		if n > 0 {
			s.codeAttempts = n
		}
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:  journalRepo,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		now:          time.Now,
		loc:          time.UTC,
		codeAttempts: defaultCodeAttempts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal stores a verified journal and one detail row per flattened field.
// With a caller supplied tx it runs exactly once inside it. Otherwise it owns
// the transaction and retries when a concurrent writer took the same code.
func (s *journalService) CreateJournal(ctx context.Context, txType string, details domain.Details, userID, storeID string, tx pgx.Tx) (*domain.Journal, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	if err := domain.ValidateTransactionType(txType); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid transaction type", err)
	}

	rows := details.Flatten()
	attempts := 1
	if tx == nil {
		attempts = s.codeAttempts
	}

	var journal *domain.Journal
	for attempt := 1; ; attempt++ {
		err := withTx(ctx, s.journalRepo, tx, func(t pgx.Tx) error {
			var err error
			journal, err = s.insertJournal(ctx, t, txType, rows, userID, storeID)
			return err
		})
		if err == nil {
			break
		}
		if attempt >= attempts || !isRetryable(err) {
			s.LogError(ctx, err, "Failed to create journal",
				slog.String("store_id", storeID),
				slog.String("type", txType),
				slog.Int("attempt", attempt))
			return nil, fmt.Errorf("failed to create journal: %w", err)
		}
		s.LogInfo(ctx, "Retrying journal creation after conflict",
			slog.String("store_id", storeID),
			slog.String("type", txType),
			slog.Int("attempt", attempt))
	}

	s.LogInfo(ctx, "Journal created successfully",
		slog.String("code", journal.Code),
		slog.Int("detail_count", len(journal.Details)))
	return journal, nil
}

func (s *journalService) insertJournal(ctx context.Context, tx pgx.Tx, txType string, rows []domain.DetailKV, userID, storeID string) (*domain.Journal, error) {
	now := s.now().In(s.loc)
	prefix := domain.JournalCodePrefix(txType, storeID, now)

	if err := s.journalRepo.LockCodePrefixTx(ctx, tx, prefix); err != nil {
		return nil, fmt.Errorf("failed to lock journal code %s: %w", prefix, err)
	}
	code, err := s.generateCode(ctx, tx, prefix)
	if err != nil {
		return nil, err
	}

	verifiedAt := now
	journal := domain.Journal{
		JournalID:       uuid.NewString(),
		Code:            code,
		StoreID:         storeID,
		TransactionType: txType,
		CreatedAt:       now,
		CreatedBy:       userID,
		VerifiedBy:      userID,
		VerifiedAt:      &verifiedAt,
	}
	details := make([]domain.JournalDetail, len(rows))
	for i, row := range rows {
		details[i] = domain.JournalDetail{
			DetailID:    uuid.NewString(),
			JournalCode: code,
			Key:         row.Key,
			Value:       row.Value,
			CreatedBy:   userID,
			CreatedAt:   now,
		}
	}

	if err := s.journalRepo.SaveJournalTx(ctx, tx, journal, details); err != nil {
		return nil, fmt.Errorf("failed to save journal %s: %w", code, err)
	}
	journal.Details = details
	return &journal, nil
}

// generateCode continues the sequence of the prefix bucket. Codes look like
// {TYPE}-{store}-{YYYYMMDD}-{seq:04d}.
func (s *journalService) generateCode(ctx context.Context, tx pgx.Tx, prefix string) (string, error) {
	last, err := s.journalRepo.FindLastCodeTx(ctx, tx, prefix+"-")
	if err != nil {
		return "", fmt.Errorf("failed to read last journal code: %w", err)
	}
	seq := 1
	if last != "" {
		n, err := domain.SeqFromCode(last)
		if err != nil {
			return "", fmt.Errorf("unexpected journal code %q: %w", last, err)
		}
		seq = n + 1
	}
	return domain.FormatJournalCode(prefix, seq), nil
}

// ProcessStockAdjustment turns quantity changes into a STOCK_ADJUSTMENT journal.
func (s *journalService) ProcessStockAdjustment(ctx context.Context, adjustments []domain.StockAdjustment, userID string, tx pgx.Tx, storeID string) (*domain.Journal, error) {
	items := make([]domain.Details, 0, len(adjustments))
	for i, adj := range adjustments {
		if err := s.validate.Struct(adj); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrValidation, fmt.Sprintf("invalid adjustment at index %d", i), err)
		}
		if !adj.InRange() {
			return nil, apperrors.NewValidationError("quantity out of range at index %d", i)
		}
		diff := adj.Diff()
		if diff.IsZero() {
			continue
		}
		item := domain.Details{
			domain.Field(StockProductKey, domain.ScalarValue(adj.ProductUUID)),
			domain.Field(StockUnitKey, domain.ScalarValue(adj.UnitUUID)),
		}
		if diff.IsPositive() {
			item = append(item, domain.Field(StockQtyPlusKey, domain.DecimalValue(diff)))
		} else {
			item = append(item, domain.Field(StockQtyMinKey, domain.DecimalValue(diff.Abs())))
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		s.LogDebug(ctx, "No stock changes to journal", slog.String("store_id", storeID))
		return nil, nil
	}

	details := domain.Details{domain.Field(domain.ItemsKey, domain.ItemsValue(items...))}
	return s.CreateJournal(ctx, domain.TxStockAdjustment, details, userID, storeID, tx)
}

// FindAllByType returns the store's journals of txType, or all of them when txType is empty.
func (s *journalService) FindAllByType(ctx context.Context, storeID, txType string) ([]domain.Journal, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}

	var (
		journals []domain.Journal
		err      error
	)
	if txType == "" {
		journals, err = s.journalRepo.FindJournalsByStore(ctx, storeID)
	} else {
		if vErr := domain.ValidateTransactionType(txType); vErr != nil {
			return nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid transaction type", vErr)
		}
		journals, err = s.journalRepo.FindJournalsByCodePrefix(ctx, fmt.Sprintf("%s-%s-", txType, storeID))
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals",
			slog.String("store_id", storeID),
			slog.String("type", txType))
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	// a code prefix like "SALE-store-" also covers store "store-1"
	owned := journals[:0]
	for _, j := range journals {
		fillFromCode(&j)
		if j.StoreID == storeID {
			owned = append(owned, j)
		}
	}
	return owned, nil
}

// GetJournalByCode returns a journal only when its code belongs to storeID.
func (s *journalService) GetJournalByCode(ctx context.Context, storeID, code string) (*domain.Journal, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseJournalCode(code)
	if err != nil || parsed.StoreID != storeID {
		return nil, apperrors.NewNotFoundError("journal", code)
	}

	journal, err := s.journalRepo.FindJournalByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal %s: %w", code, err)
	}
	fillFromCode(journal)
	return journal, nil
}

// VerifyJournal verifies a journal once. Later calls return it unchanged.
func (s *journalService) VerifyJournal(ctx context.Context, storeID, code, userID string) (*domain.Journal, error) {
	journal, err := s.GetJournalByCode(ctx, storeID, code)
	if err != nil {
		return nil, err
	}
	if journal.IsVerified() {
		return journal, nil
	}

	now := s.now().In(s.loc)
	if err := s.journalRepo.MarkVerified(ctx, code, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to verify journal", slog.String("code", code))
		return nil, fmt.Errorf("failed to verify journal %s: %w", code, err)
	}
	journal.VerifiedBy = userID
	journal.VerifiedAt = &now
	return journal, nil
}

// RecordActivity writes an advisory journal. Errors are logged and dropped so
// the caller's primary operation is never failed by its audit trail.
func (s *journalService) RecordActivity(ctx context.Context, txType string, details domain.Details, userID, storeID string) {
	if _, err := s.CreateJournal(ctx, txType, details, userID, storeID, nil); err != nil {
		s.LogError(ctx, err, "Failed to record activity journal",
			slog.String("store_id", storeID),
			slog.String("type", txType))
	}
}

func fillFromCode(j *domain.Journal) {
	if parsed, err := domain.ParseJournalCode(j.Code); err == nil {
		j.StoreID = parsed.StoreID
		j.TransactionType = parsed.Type
		return
	}
	j.TransactionType = domain.TypeFromCode(j.Code)
}
