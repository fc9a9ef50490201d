package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
	"github.com/terrascope-io/terrascope-client/pkg/tsclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		apiKey      string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Terrascope platform",
		Long:  "Store an API endpoint and key and verify them against the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get API endpoint
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if apiEndpoint == "" {
				return ErrAPIEndpointRequired
			}

			// Get API key without echoing it
			if apiKey == "" {
				apiKey = viper.GetString("key")
			}

			if apiKey == "" {
				fmt.Print("API key: ")

				byteKey, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}

				apiKey = strings.TrimSpace(string(byteKey))

				fmt.Println()
			}

			if apiKey == "" {
				return ErrAPIKeyRequired
			}

			client, err := tsclient.New(&terrascope.Config{
				APIEndpoint: apiEndpoint,
				APIKey:      apiKey,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials with a cheap authenticated call
			ctx := context.Background()

			iterator, err := client.Quota().GetProducts(ctx, 1)
			if err != nil {
				return fmt.Errorf("failed to connect to API: %w", err)
			}

			if _, err := iterator.All(ctx); err != nil {
				return fmt.Errorf("failed to connect to API: %w", err)
			}

			viper.Set("api", apiEndpoint)
			viper.Set("key", apiKey)

			if err := persistConfig(); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s\n", apiEndpoint)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "endpoint", "", "API endpoint URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the Terrascope platform",
		Long:  "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetString("key") == "" {
				return ErrNotLoggedIn
			}

			viper.Set("key", "")

			if err := persistConfig(); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
