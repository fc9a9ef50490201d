package terrascope

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. nats.DefaultURL.
	URL string

	// Bucket is the KV bucket name; created if it does not exist.
	Bucket string

	// TTL is the bucket-level entry lifetime applied on creation.
	TTL time.Duration

	// Credentials is an optional path to a NATS credentials file.
	Credentials string
}

// NATSKVCache is a Cache backed by a NATS JetStream key-value bucket,
// letting several SDK processes share one cache of static resources.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and binds (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	var opts []nats.Option
	if config.Credentials != "" {
		opts = append(opts, nats.UserCredentials(config.Credentials))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("binding KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv}, nil
}

// encodeKey maps arbitrary cache keys (URLs) onto the NATS KV key alphabet.
func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

// Get retrieves a cached entry from the bucket.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kve, err := c.kv.Get(encodeKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, ErrCacheKeyNotFound
		}

		return nil, fmt.Errorf("reading cache key: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kve.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("parsing cache entry: %w", err)
	}

	if entry.Expired() {
		_ = c.kv.Delete(encodeKey(key))

		return nil, ErrCacheEntryExpired
	}

	return &entry, nil
}

// Set stores an entry in the bucket.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(encodeKey(key), data)
	if err != nil {
		return fmt.Errorf("writing cache key: %w", err)
	}

	return nil
}

// Delete removes an entry from the bucket.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(encodeKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache key: %w", err)
	}

	return nil
}

// Clear removes every entry from the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		err := c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging cache key: %w", err)
		}
	}

	return nil
}

// Has reports whether a non-expired entry exists for key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the NATS connection.
func (c *NATSKVCache) Close() {
	c.conn.Close()
}
