// Package commands implements the terrascope CLI commands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
	"github.com/terrascope-io/terrascope-client/pkg/tsclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	timeFormat = "2006-01-02 15:04:05"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required (use --api or 'terrascope login')")
	ErrAPIKeyRequired      = errors.New("API key is required (use --key or 'terrascope login')")
	ErrFileRequired        = errors.New("a request file is required (--from-file)")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrNotLoggedIn         = errors.New("not logged in")
)

// CreateClient builds a platform client from flags, environment, and the
// config file.
func CreateClient() (terrascope.Client, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	config := &terrascope.Config{
		APIEndpoint: endpoint,
		APIKey:      viper.GetString("key"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = newZerologLogger()
	}

	client, err := tsclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	return nil
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	return nil
}

// formatTime renders a timestamp for table output.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}

	return t.Format(timeFormat)
}

// loadRequestFile decodes a JSON or YAML request file into v.
func loadRequestFile(path string, v interface{}) error {
	if path == "" {
		return ErrFileRequired
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from an explicit CLI flag
	if err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}

	if json.Valid(data) {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing request file: %w", err)
		}

		return nil
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing request file: %w", err)
	}

	return nil
}
