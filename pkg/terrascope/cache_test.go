package terrascope_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

func freshEntry(data string) *terrascope.CacheEntry {
	return &terrascope.CacheEntry{
		Data:      []byte(data),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := terrascope.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "mosaic-1", freshEntry("payload")))

		entry, err := cache.Get(ctx, "mosaic-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), entry.Data)
		assert.True(t, cache.Has(ctx, "mosaic-1"))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		cache := terrascope.NewMemoryCache(10)

		_, err := cache.Get(context.Background(), "absent")
		require.ErrorIs(t, err, terrascope.ErrCacheKeyNotFound)
		assert.False(t, cache.Has(context.Background(), "absent"))
	})

	t.Run("expired entry is dropped", func(t *testing.T) {
		t.Parallel()

		cache := terrascope.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "stale", &terrascope.CacheEntry{
			Data:      []byte("old"),
			ExpiresAt: time.Now().Add(-time.Minute),
		}))
		assert.False(t, cache.Has(ctx, "stale"))

		_, err := cache.Get(ctx, "stale")
		require.ErrorIs(t, err, terrascope.ErrCacheEntryExpired)

		// The expired read evicts; a second read misses entirely.
		_, err = cache.Get(ctx, "stale")
		require.ErrorIs(t, err, terrascope.ErrCacheKeyNotFound)
	})

	t.Run("zero expiry never expires", func(t *testing.T) {
		t.Parallel()

		cache := terrascope.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "pinned", &terrascope.CacheEntry{Data: []byte("keep")}))

		entry, err := cache.Get(ctx, "pinned")
		require.NoError(t, err)
		assert.Equal(t, []byte("keep"), entry.Data)
	})

	t.Run("evicts oldest when full", func(t *testing.T) {
		t.Parallel()

		cache := terrascope.NewMemoryCache(2)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "first", freshEntry("1")))
		time.Sleep(time.Millisecond)
		require.NoError(t, cache.Set(ctx, "second", freshEntry("2")))
		time.Sleep(time.Millisecond)
		require.NoError(t, cache.Set(ctx, "third", freshEntry("3")))

		assert.False(t, cache.Has(ctx, "first"))
		assert.True(t, cache.Has(ctx, "second"))
		assert.True(t, cache.Has(ctx, "third"))
	})

	t.Run("overwriting a key does not evict", func(t *testing.T) {
		t.Parallel()

		cache := terrascope.NewMemoryCache(2)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "a", freshEntry("1")))
		require.NoError(t, cache.Set(ctx, "b", freshEntry("2")))
		require.NoError(t, cache.Set(ctx, "a", freshEntry("1b")))

		assert.True(t, cache.Has(ctx, "a"))
		assert.True(t, cache.Has(ctx, "b"))
	})

	t.Run("delete and clear", func(t *testing.T) {
		t.Parallel()

		cache := terrascope.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "a", freshEntry("1")))
		require.NoError(t, cache.Set(ctx, "b", freshEntry("2")))

		require.NoError(t, cache.Delete(ctx, "a"))
		assert.False(t, cache.Has(ctx, "a"))
		assert.True(t, cache.Has(ctx, "b"))

		require.NoError(t, cache.Clear(ctx))
		assert.False(t, cache.Has(ctx, "b"))
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := terrascope.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", freshEntry("data")))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, terrascope.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key"))

	require.NoError(t, cache.Delete(ctx, "key"))
	require.NoError(t, cache.Clear(ctx))
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := terrascope.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &terrascope.MemoryCache{}, cache)
	})

	t.Run("none disables caching", func(t *testing.T) {
		t.Parallel()

		cache, err := terrascope.NewCacheFromConfig(&terrascope.CacheConfig{Type: terrascope.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &terrascope.NoOpCache{}, cache)
	})

	t.Run("nats requires connection config", func(t *testing.T) {
		t.Parallel()

		_, err := terrascope.NewCacheFromConfig(&terrascope.CacheConfig{Type: terrascope.CacheTypeNATS})
		require.ErrorIs(t, err, terrascope.ErrNATSConfigRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := terrascope.NewCacheFromConfig(&terrascope.CacheConfig{Type: "redis"})
		require.ErrorIs(t, err, terrascope.ErrUnsupportedCacheType)
	})
}

func TestCacheConfig_EntryTTL(t *testing.T) {
	t.Parallel()

	var nilConfig *terrascope.CacheConfig

	assert.Equal(t, 5*time.Minute, nilConfig.EntryTTL())
	assert.Equal(t, 5*time.Minute, (&terrascope.CacheConfig{}).EntryTTL())
	assert.Equal(t, time.Minute, (&terrascope.CacheConfig{TTL: time.Minute}).EntryTTL())
}
