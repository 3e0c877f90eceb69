package services

import (
	"context"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/api-diengcyber/transaksi-sub000/internal/dto"
)

// JournalConfigSvcFacade manages posting rules.
type JournalConfigSvcFacade interface {
	CreateConfig(ctx context.Context, storeID string, req dto.CreateJournalConfigRequest, userID string) (*domain.JournalConfig, error)
	GetConfig(ctx context.Context, storeID, configID string) (*domain.JournalConfig, error)
	ListConfigs(ctx context.Context, storeID string) ([]domain.JournalConfig, error)
	UpdateConfig(ctx context.Context, storeID, configID string, req dto.UpdateJournalConfigRequest, userID string) (*domain.JournalConfig, error)
	DeleteConfig(ctx context.Context, storeID, configID, userID string) error

	// DiscoverDetailKeys reports the detail keys posted for the store and whether a rule resolves them.
	DiscoverDetailKeys(ctx context.Context, storeID string) ([]domain.DetailKeyStat, error)
}
