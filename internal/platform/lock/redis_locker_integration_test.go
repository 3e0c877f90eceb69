//go:build integration

package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/platform/lock"
	"github.com/api-diengcyber/transaksi-sub000/internal/testutil/testdb"
)

var testRedis *testdb.TestRedis

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testRedis, err = testdb.NewTestRedis(ctx)
	if err != nil {
		panic("failed to create test redis: " + err.Error())
	}

	code := m.Run()

	_ = testRedis.Close(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

func TestRedisLocker_ExclusiveUntilReleased(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testRedis.Reset(ctx))
	locker := lock.NewRedisLocker(testRedis.Client, 5*time.Second)

	held, err := locker.Obtain(ctx, "install-defaults:store-1")
	require.NoError(t, err)

	_, err = locker.Obtain(ctx, "install-defaults:store-1")
	assert.ErrorIs(t, err, portssvc.ErrLockNotObtained)

	// other stores are independent
	other, err := locker.Obtain(ctx, "install-defaults:store-2")
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, held.Release(ctx))
	again, err := locker.Obtain(ctx, "install-defaults:store-1")
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestRedisLocker_ReleaseAfterExpiry(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testRedis.Reset(ctx))
	locker := lock.NewRedisLocker(testRedis.Client, 100*time.Millisecond)

	held, err := locker.Obtain(ctx, "install-defaults:store-1")
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)

	assert.NoError(t, held.Release(ctx))
}
