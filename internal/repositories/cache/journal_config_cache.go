package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL bounds how stale a cached rule list may get if an invalidation is lost.
	DefaultTTL = 5 * time.Minute

	// KeyPrefix is the prefix for cached rule lists, one key per store.
	KeyPrefix = "journal_config:"
)

// JournalConfigCache wraps a posting rule repository and caches the active
// rules of each store in Redis. Redis failures fall through to the repository.
type JournalConfigCache struct {
	portsrepo.JournalConfigRepositoryFacade
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewJournalConfigCache decorates repo with a Redis read-through cache.
func NewJournalConfigCache(repo portsrepo.JournalConfigRepositoryFacade, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *JournalConfigCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalConfigCache{
		JournalConfigRepositoryFacade: repo,
		client:                        client,
		ttl:                           ttl,
		logger:                        logger.With(slog.String("component", "journal_config_cache")),
	}
}

var _ portsrepo.JournalConfigRepositoryFacade = (*JournalConfigCache)(nil)

func storeKey(storeID string) string {
	return KeyPrefix + storeID
}

// ListConfigsByStore serves the store's rules from Redis when present.
func (c *JournalConfigCache) ListConfigsByStore(ctx context.Context, storeID string) ([]domain.JournalConfig, error) {
	key := storeKey(storeID)

	val, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var configs []domain.JournalConfig
		if err := json.Unmarshal(val, &configs); err == nil {
			c.logger.Debug("cache hit", slog.String("store_id", storeID))
			return configs, nil
		}
		c.logger.Warn("discarding undecodable cache entry", slog.String("store_id", storeID))
	case errors.Is(err, redis.Nil):
		c.logger.Debug("cache miss", slog.String("store_id", storeID))
	default:
		c.logger.Error("cache error", slog.String("operation", "get"), slog.String("store_id", storeID), slog.String("error", err.Error()))
	}

	configs, err := c.JournalConfigRepositoryFacade.ListConfigsByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(configs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal journal configs: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("cache error", slog.String("operation", "set"), slog.String("store_id", storeID), slog.String("error", err.Error()))
	}
	return configs, nil
}

// SaveConfig writes through and drops the store's cached list.
func (c *JournalConfigCache) SaveConfig(ctx context.Context, cfg domain.JournalConfig) error {
	if err := c.JournalConfigRepositoryFacade.SaveConfig(ctx, cfg); err != nil {
		return err
	}
	c.Invalidate(ctx, cfg.StoreID)
	return nil
}

// SaveConfigTx drops the cached list before the caller commits. A reader in
// between may cache the old list until the next write or the TTL.
func (c *JournalConfigCache) SaveConfigTx(ctx context.Context, tx pgx.Tx, cfg domain.JournalConfig) error {
	if err := c.JournalConfigRepositoryFacade.SaveConfigTx(ctx, tx, cfg); err != nil {
		return err
	}
	c.Invalidate(ctx, cfg.StoreID)
	return nil
}

func (c *JournalConfigCache) UpdateConfig(ctx context.Context, cfg domain.JournalConfig) error {
	if err := c.JournalConfigRepositoryFacade.UpdateConfig(ctx, cfg); err != nil {
		return err
	}
	c.Invalidate(ctx, cfg.StoreID)
	return nil
}

func (c *JournalConfigCache) SoftDeleteConfig(ctx context.Context, storeID, configID, userID string, now time.Time) error {
	if err := c.JournalConfigRepositoryFacade.SoftDeleteConfig(ctx, storeID, configID, userID, now); err != nil {
		return err
	}
	c.Invalidate(ctx, storeID)
	return nil
}

// Invalidate removes the cached rule list of a store.
func (c *JournalConfigCache) Invalidate(ctx context.Context, storeID string) {
	if err := c.client.Del(ctx, storeKey(storeID)).Err(); err != nil {
		c.logger.Error("cache error", slog.String("operation", "del"), slog.String("store_id", storeID), slog.String("error", err.Error()))
	}
}
