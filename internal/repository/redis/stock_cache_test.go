package redis_test

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	redisrepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/redis"
)

func mustCache(t *testing.T) *redisrepo.StockCache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping integration test")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())
	require.NoError(t, client.FlushDB(ctx).Err())

	return redisrepo.NewStockCache(client)
}

func TestSetAndGetStock(t *testing.T) {
	cache := mustCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetStock(ctx, "p1", 10))

	got, err := cache.GetStock(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 10, got)

	got, err = cache.GetStock(ctx, "missing")
	require.NoError(t, err)
	require.Equal(t, -1, got, "uncached product reads as -1")
}

func TestDecrementFloor(t *testing.T) {
	cache := mustCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetStock(ctx, "p1", 3))

	next, err := cache.DecrementFloor(ctx, "p1", 2)
	require.NoError(t, err)
	require.Equal(t, 1, next)

	// Decrementing past zero clamps instead of going negative.
	next, err = cache.DecrementFloor(ctx, "p1", 5)
	require.NoError(t, err)
	require.Equal(t, 0, next)

	next, err = cache.DecrementFloor(ctx, "missing", 1)
	require.NoError(t, err)
	require.Equal(t, -1, next, "cache never invents stock for unknown keys")
}
