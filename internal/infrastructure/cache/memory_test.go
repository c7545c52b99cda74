package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckdqja135/salermoon/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key-1", "encoded-result", time.Minute))

	value, err := cache.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "encoded-result", value)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short-lived", "value", 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)

	_, err := cache.Get(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	exists, err := cache.Exists(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Delete(ctx, "key"))

	_, err := cache.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))

	exists, err = cache.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCache_SizeAndFlush(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, cache.Set(ctx, "b", 2, time.Minute))
	assert.Equal(t, 2, cache.Size())

	cache.Flush()
	assert.Equal(t, 0, cache.Size())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				cache.Set(ctx, "shared", n, time.Minute)
				cache.Get(ctx, "shared")
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	exists, err := cache.Exists(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, exists)
}
