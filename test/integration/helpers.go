//go:build integration
// +build integration

package integration

import (
	"os"
	"testing"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
	"github.com/terrascope-io/terrascope-client/pkg/tsclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint string
	APIKey      string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("TERRASCOPE_API_ENDPOINT"),
		APIKey:      os.Getenv("TERRASCOPE_API_KEY"),
		Verbose:     os.Getenv("TERRASCOPE_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test when no live API is configured.
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.APIEndpoint == "" || c.APIKey == "" {
		t.Skip("TERRASCOPE_API_ENDPOINT and TERRASCOPE_API_KEY must be set for integration tests")
	}
}

// NewClient creates an SDK client against the configured live API.
func (c *TestConfig) NewClient(t *testing.T) terrascope.Client {
	t.Helper()

	client, err := tsclient.New(&terrascope.Config{
		APIEndpoint: c.APIEndpoint,
		APIKey:      c.APIKey,
		Debug:       c.Verbose,
	})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return client
}
