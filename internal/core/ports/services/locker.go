package services

import (
	"context"
	"errors"
)

// ErrLockNotObtained is returned when another holder owns the lock.
var ErrLockNotObtained = errors.New("lock not obtained")

// Lock is a held lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out named locks, usually scoped to one store.
type Locker interface {
	Obtain(ctx context.Context, key string) (Lock, error)
}
