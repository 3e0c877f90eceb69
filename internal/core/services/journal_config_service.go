package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
	"github.com/api-diengcyber/transaksi-sub000/internal/utils/accounting"
)

type journalConfigService struct {
	BaseService
	configRepo  portsrepo.JournalConfigRepositoryFacade
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
	now         func() time.Time
}

// NewJournalConfigService creates the posting rule service.
func NewJournalConfigService(configRepo portsrepo.JournalConfigRepositoryFacade, accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader) portssvc.JournalConfigSvcFacade {
	return &journalConfigService{
		configRepo:  configRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		now:         time.Now,
	}
}

var _ portssvc.JournalConfigSvcFacade = (*journalConfigService)(nil)

func (s *journalConfigService) CreateConfig(ctx context.Context, storeID string, req dto.CreateJournalConfigRequest, userID string) (*domain.JournalConfig, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	if err := domain.ValidateTransactionType(req.TransactionType); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid transaction type", err)
	}
	match, err := domain.NewKeyMatch(req.MatchKind, req.DetailKey)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid detail key", err)
	}
	if !req.Position.Valid() {
		return nil, apperrors.NewValidationError("invalid position %q", req.Position)
	}
	if err := s.ensureAccount(ctx, storeID, req.AccountID); err != nil {
		return nil, err
	}

	now := s.now()
	cfg := domain.JournalConfig{
		ConfigID:        uuid.NewString(),
		StoreID:         storeID,
		TransactionType: req.TransactionType,
		Match:           match,
		AccountID:       req.AccountID,
		Position:        req.Position,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.configRepo.SaveConfig(ctx, cfg); err != nil {
		s.LogError(ctx, err, "Failed to save journal config", slog.String("store_id", storeID))
		return nil, fmt.Errorf("failed to save journal config: %w", err)
	}

	s.LogInfo(ctx, "Journal config created successfully",
		slog.String("config_id", cfg.ConfigID),
		slog.String("type", cfg.TransactionType),
		slog.String("detail_key", cfg.Match.Key))
	return &cfg, nil
}

func (s *journalConfigService) GetConfig(ctx context.Context, storeID, configID string) (*domain.JournalConfig, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	return s.configRepo.FindConfigByID(ctx, storeID, configID)
}

func (s *journalConfigService) ListConfigs(ctx context.Context, storeID string) ([]domain.JournalConfig, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	configs, err := s.configRepo.ListConfigsByStore(ctx, storeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal configs", slog.String("store_id", storeID))
		return nil, fmt.Errorf("failed to list journal configs: %w", err)
	}
	return configs, nil
}

func (s *journalConfigService) UpdateConfig(ctx context.Context, storeID, configID string, req dto.UpdateJournalConfigRequest, userID string) (*domain.JournalConfig, error) {
	cfg, err := s.GetConfig(ctx, storeID, configID)
	if err != nil {
		return nil, err
	}

	if req.TransactionType != nil {
		if err := domain.ValidateTransactionType(*req.TransactionType); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid transaction type", err)
		}
		cfg.TransactionType = *req.TransactionType
	}
	if req.DetailKey != nil || req.MatchKind != nil {
		key := cfg.Match.Key
		if req.DetailKey != nil {
			key = *req.DetailKey
		}
		kind := string(cfg.Match.Kind)
		if req.MatchKind != nil {
			kind = *req.MatchKind
		} else if req.DetailKey != nil {
			kind = ""
		}
		match, err := domain.NewKeyMatch(kind, key)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid detail key", err)
		}
		cfg.Match = match
	}
	if req.AccountID != nil {
		if err := s.ensureAccount(ctx, storeID, *req.AccountID); err != nil {
			return nil, err
		}
		cfg.AccountID = *req.AccountID
	}
	if req.Position != nil {
		if !req.Position.Valid() {
			return nil, apperrors.NewValidationError("invalid position %q", *req.Position)
		}
		cfg.Position = *req.Position
	}
	if req.Description != nil {
		cfg.Description = *req.Description
	}
	cfg.LastUpdatedAt = s.now()
	cfg.LastUpdatedBy = userID

	if err := s.configRepo.UpdateConfig(ctx, *cfg); err != nil {
		s.LogError(ctx, err, "Failed to update journal config", slog.String("config_id", configID))
		return nil, fmt.Errorf("failed to update journal config: %w", err)
	}
	return cfg, nil
}

func (s *journalConfigService) DeleteConfig(ctx context.Context, storeID, configID, userID string) error {
	if err := requireStore(storeID); err != nil {
		return err
	}
	if err := s.configRepo.SoftDeleteConfig(ctx, storeID, configID, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete journal config", slog.String("config_id", configID))
		}
		return err
	}
	s.LogInfo(ctx, "Journal config deleted", slog.String("config_id", configID))
	return nil
}

// DiscoverDetailKeys groups the store's detail keys per transaction type.
// Item keys are folded to their "<field>#" form, which is also the prefix
// that maps every index of the field.
func (s *journalConfigService) DiscoverDetailKeys(ctx context.Context, storeID string) ([]domain.DetailKeyStat, error) {
	if err := requireStore(storeID); err != nil {
		return nil, err
	}
	counts, err := s.journalRepo.CountDetailKeys(ctx, storeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count detail keys", slog.String("store_id", storeID))
		return nil, fmt.Errorf("failed to count detail keys: %w", err)
	}
	configs, err := s.configRepo.ListConfigsByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal configs: %w", err)
	}
	resolver := accounting.NewConfigResolver(configs)

	grouped := make(map[string]*domain.DetailKeyStat)
	for _, c := range counts {
		key := c.Key
		if i := strings.LastIndexByte(key, '#'); i >= 0 {
			key = key[:i+1]
		}
		id := c.TransactionType + "\x00" + key
		stat, ok := grouped[id]
		if !ok {
			stat = &domain.DetailKeyStat{TransactionType: c.TransactionType, Key: key}
			grouped[id] = stat
		}
		stat.Occurrences += c.Occurrences
		if len(resolver.Resolve(c.TransactionType, c.Key)) > 0 {
			stat.Mapped = true
		}
	}

	stats := make([]domain.DetailKeyStat, 0, len(grouped))
	for _, stat := range grouped {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TransactionType != stats[j].TransactionType {
			return stats[i].TransactionType < stats[j].TransactionType
		}
		return stats[i].Key < stats[j].Key
	})
	return stats, nil
}

func (s *journalConfigService) ensureAccount(ctx context.Context, storeID, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, storeID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account", accountID)
		}
		return fmt.Errorf("failed to load account: %w", err)
	}
	return nil
}
