// Package auth resolves the API key attached to every request. The SDK
// treats authentication as a black box: a provider returns a key, the HTTP
// layer sends it as a Bearer token.
package auth

import (
	"context"
	"os"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// EnvAPIKey is the environment variable consulted by EnvKeyProvider.
const EnvAPIKey = "TERRASCOPE_API_KEY"

// KeyProvider supplies the API key for outgoing requests.
type KeyProvider interface {
	Key(ctx context.Context) (string, error)
}

// StaticKeyProvider returns a fixed key.
type StaticKeyProvider struct {
	key string
}

// NewStaticKeyProvider wraps a literal API key.
func NewStaticKeyProvider(key string) *StaticKeyProvider {
	return &StaticKeyProvider{key: key}
}

// Key implements KeyProvider.
func (p *StaticKeyProvider) Key(ctx context.Context) (string, error) {
	return p.key, nil
}

// EnvKeyProvider reads the key from the environment on every call so that
// rotated keys take effect without restarting.
type EnvKeyProvider struct{}

// Key implements KeyProvider.
func (p *EnvKeyProvider) Key(ctx context.Context) (string, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return "", terrascope.ErrAPIKeyRequired
	}

	return key, nil
}
