package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope-io/terrascope-client/internal/auth"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

func TestStaticKeyProvider(t *testing.T) {
	t.Parallel()

	provider := auth.NewStaticKeyProvider("pk-123")

	key, err := provider.Key(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pk-123", key)
}

func TestEnvKeyProvider(t *testing.T) {
	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv(auth.EnvAPIKey, "env-key")

		provider := &auth.EnvKeyProvider{}

		key, err := provider.Key(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "env-key", key)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv(auth.EnvAPIKey, "")

		provider := &auth.EnvKeyProvider{}

		_, err := provider.Key(context.Background())
		require.ErrorIs(t, err, terrascope.ErrAPIKeyRequired)
	})

	t.Run("rotation takes effect without restart", func(t *testing.T) {
		t.Setenv(auth.EnvAPIKey, "old-key")

		provider := &auth.EnvKeyProvider{}

		key, err := provider.Key(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "old-key", key)

		t.Setenv(auth.EnvAPIKey, "new-key")

		key, err = provider.Key(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new-key", key)
	})
}
