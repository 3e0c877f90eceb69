package lock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
)

// DefaultTTL is how long a lock is held if its owner never releases it.
const DefaultTTL = 30 * time.Second

// KeyPrefix namespaces application locks in Redis.
const KeyPrefix = "lock:"

// RedisLocker hands out short lived Redis locks via redislock.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker creates a Locker backed by the given Redis client.
func NewRedisLocker(client redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: redislock.New(client), ttl: ttl}
}

var _ portssvc.Locker = (*RedisLocker)(nil)

// Obtain tries once and fails fast with ErrLockNotObtained when the key is held.
func (l *RedisLocker) Obtain(ctx context.Context, key string) (portssvc.Lock, error) {
	lk, err := l.client.Obtain(ctx, KeyPrefix+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, portssvc.ErrLockNotObtained
	}
	if err != nil {
		return nil, err
	}
	return redisLock{lk}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

// Release frees the lock. A lock that already expired is not an error.
func (l redisLock) Release(ctx context.Context) error {
	if err := l.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}
