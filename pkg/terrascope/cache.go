package terrascope

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static cache errors.
var (
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
	ErrCacheDisabled     = errors.New("cache disabled")
)

// CacheEntry is one cached response body.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry's TTL has elapsed.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Cache stores response bodies for static resources. Paged fetches and
// state polls never go through a cache; those reads must always be fresh.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// MemoryCache is an in-process Cache with a size bound. When full, the
// oldest entry by insertion time is evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	maxSize int
	entries map[string]*memoryCacheEntry
}

type memoryCacheEntry struct {
	entry    *CacheEntry
	storedAt time.Time
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		maxSize: maxSize,
		entries: make(map[string]*memoryCacheEntry),
	}
}

// Get retrieves a cached entry.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	stored, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	if stored.entry.Expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, ErrCacheEntryExpired
	}

	return stored.entry, nil
}

// Set stores an entry, evicting the oldest one when the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &memoryCacheEntry{entry: entry, storedAt: time.Now()}

	return nil
}

// evictOldest removes the entry stored the longest ago. Caller holds mu.
func (c *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
	)

	for key, stored := range c.entries {
		if oldestKey == "" || stored.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = stored.storedAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*memoryCacheEntry)

	return nil
}

// Has reports whether a non-expired entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stored, ok := c.entries[key]

	return ok && !stored.entry.Expired()
}

// NoOpCache is a cache that stores nothing.
type NoOpCache struct{}

// NewNoOpCache creates a cache that never hits.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always reports false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
