package terrascope

import (
	"errors"
	"fmt"
	"time"
)

// CacheType names a cache backend.
type CacheType string

const (
	// CacheTypeMemory is the in-process cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS is the NATS JetStream KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

// Static cache configuration errors.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
)

// Cache sizing defaults.
const (
	defaultCacheSize = 1000
	defaultCacheTTL  = 5 * time.Minute
)

// CacheConfig selects and configures a cache backend.
type CacheConfig struct {
	// Type selects the backend.
	Type CacheType

	// MaxSize bounds the memory backend.
	MaxSize int

	// TTL is the entry lifetime applied when the HTTP layer stores a
	// response.
	TTL time.Duration

	// NATS configures the NATS KV backend; required for CacheTypeNATS.
	NATS *NATSKVConfig
}

// DefaultCacheConfig returns a memory cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:    CacheTypeMemory,
		MaxSize: defaultCacheSize,
		TTL:     defaultCacheTTL,
	}
}

// EntryTTL returns the configured TTL or the default.
func (c *CacheConfig) EntryTTL() time.Duration {
	if c == nil || c.TTL <= 0 {
		return defaultCacheTTL
	}

	return c.TTL
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		size := config.MaxSize
		if size <= 0 {
			size = defaultCacheSize
		}

		return NewMemoryCache(size), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}
