package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrascope-io/terrascope-client/internal/constants"
)

// configKeys lists the keys the config command manages.
var configKeys = []string{"api", "key", "output", "verbose"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get and set persistent CLI configuration values",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigListCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !isConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			value := viper.GetString(key)
			if key == "key" && value != "" {
				value = maskKey(value)
			}

			fmt.Println(value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !isConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			viper.Set(key, args[1])

			if err := persistConfig(); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			for _, key := range configKeys {
				value := viper.GetString(key)
				if key == "key" && value != "" {
					value = maskKey(value)
				}

				_ = table.Append(key, value)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func isConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}

	return false
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}

	return "****" + key[len(key)-4:]
}

// persistConfig writes the current viper state to the config file, creating
// it under ~/.terrascope on first use.
func persistConfig() error {
	err := viper.WriteConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("writing config: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".terrascope")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.yml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// The key is a credential; keep the file private.
	if err := os.Chmod(path, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("restricting config permissions: %w", err)
	}

	return nil
}
