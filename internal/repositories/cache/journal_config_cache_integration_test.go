//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/api-diengcyber/transaksi-sub000/internal/repositories/cache"
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

func TestJournalConfigCache_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testRedis.Reset(ctx))

	repo := new(MockJournalConfigRepository)
	c := cache.NewJournalConfigCache(repo, testRedis.Client, time.Minute, quietLogger())

	repo.On("ListConfigsByStore", mock.Anything, "store-1").Return(sampleConfigs(), nil).Once()
	for i := 0; i < 2; i++ {
		got, err := c.ListConfigsByStore(ctx, "store-1")
		require.NoError(t, err)
		assert.Equal(t, sampleConfigs(), got)
	}
	repo.AssertNumberOfCalls(t, "ListConfigsByStore", 1)

	ttl, err := testRedis.Client.TTL(ctx, cache.KeyPrefix+"store-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	updated := sampleConfigs()[0]
	updated.Position = domain.Credit
	repo.On("UpdateConfig", mock.Anything, updated).Return(nil).Once()
	require.NoError(t, c.UpdateConfig(ctx, updated))

	exists, err := testRedis.Client.Exists(ctx, cache.KeyPrefix+"store-1").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	repo.On("ListConfigsByStore", mock.Anything, "store-1").Return([]domain.JournalConfig{updated}, nil).Once()
	got, err := c.ListConfigsByStore(ctx, "store-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, got[0].Position)
	repo.AssertNumberOfCalls(t, "ListConfigsByStore", 2)
}

func TestJournalConfigCache_UndecodableEntryIsReplaced(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testRedis.Reset(ctx))
	require.NoError(t, testRedis.Client.Set(ctx, cache.KeyPrefix+"store-1", "not json", time.Minute).Err())

	repo := new(MockJournalConfigRepository)
	repo.On("ListConfigsByStore", mock.Anything, "store-1").Return(sampleConfigs(), nil).Once()
	c := cache.NewJournalConfigCache(repo, testRedis.Client, time.Minute, quietLogger())

	got, err := c.ListConfigsByStore(ctx, "store-1")
	require.NoError(t, err)
	assert.Equal(t, sampleConfigs(), got)

	raw, err := testRedis.Client.Get(ctx, cache.KeyPrefix+"store-1").Result()
	require.NoError(t, err)
	assert.Contains(t, raw, "grand_total")
}
