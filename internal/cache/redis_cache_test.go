package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

// setupTestCache connects to a local Redis or skips the test.
func setupTestCache(t *testing.T) *RedisCache {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c, err := Connect(ctx, testRedisAddr, "storefront-test:"+uuid.NewString()+":", time.Minute)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

type cachedProduct struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	var out cachedProduct
	hit, err := c.Get(ctx, "product:1", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "product:1", cachedProduct{ID: "1", Price: "9.99"}))

	hit, err = c.Get(ctx, "product:1", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "9.99", out.Price)

	require.NoError(t, c.Delete(ctx, "product:1", "never-set"))
	hit, err = c.Get(ctx, "product:1", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, uint64(1), stats.Sets)
	assert.Equal(t, uint64(1), stats.Deletes)
	assert.InDelta(t, 33.3, stats.HitRate, 0.1)
}

func TestRedisCache_DeleteNothing(t *testing.T) {
	c := setupTestCache(t)
	assert.NoError(t, c.Delete(context.Background()))
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := Connect(ctx, "127.0.0.1:1", "x:", time.Minute)
	assert.Error(t, err)
}
