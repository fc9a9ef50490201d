// Package tsclient provides the main entry point for creating Terrascope API clients
package tsclient

import (
	"fmt"
	"strings"

	"github.com/terrascope-io/terrascope-client/internal/client"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// New creates a new Terrascope platform API client.
func New(config *terrascope.Config) (terrascope.Client, error) {
	if config == nil {
		return nil, terrascope.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, terrascope.ErrAPIEndpointRequired
	}

	// Normalize API endpoint
	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithEndpoint creates a client for an endpoint, taking the API key
// from the environment.
func NewWithEndpoint(endpoint string) (terrascope.Client, error) {
	return New(&terrascope.Config{APIEndpoint: endpoint})
}

// NewWithAPIKey creates a client for an endpoint with an explicit API key.
func NewWithAPIKey(endpoint, apiKey string) (terrascope.Client, error) {
	return New(&terrascope.Config{APIEndpoint: endpoint, APIKey: apiKey})
}
