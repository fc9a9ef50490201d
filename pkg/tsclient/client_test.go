package tsclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
	"github.com/terrascope-io/terrascope-client/pkg/tsclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := tsclient.New(nil)
		require.ErrorIs(t, err, terrascope.ErrConfigRequired)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := tsclient.New(&terrascope.Config{APIKey: "key"})
		require.ErrorIs(t, err, terrascope.ErrAPIEndpointRequired)
	})

	t.Run("endpoint is normalized", func(t *testing.T) {
		t.Parallel()

		config := &terrascope.Config{APIEndpoint: "api.terrascope.io/", APIKey: "key"}

		_, err := tsclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://api.terrascope.io", config.APIEndpoint)
	})

	t.Run("explicit scheme is preserved", func(t *testing.T) {
		t.Parallel()

		config := &terrascope.Config{APIEndpoint: "http://localhost:8080", APIKey: "key"}

		_, err := tsclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", config.APIEndpoint)
	})
}

func TestNewWithAPIKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/orders/v2/order-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "order-1", "state": "success"}`))
	}))
	defer server.Close()

	client, err := tsclient.NewWithAPIKey(server.URL, "test-key")
	require.NoError(t, err)

	order, err := client.Orders().Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "success", order.State)
}

func TestNewWithEndpoint(t *testing.T) {
	t.Setenv("TERRASCOPE_API_KEY", "env-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer env-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"mosaics": [], "_links": {}}`))
	}))
	defer server.Close()

	client, err := tsclient.NewWithEndpoint(server.URL)
	require.NoError(t, err)

	iterator, err := client.Mosaics().List(context.Background(), 0)
	require.NoError(t, err)

	all, err := iterator.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
