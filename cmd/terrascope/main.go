package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrascope-io/terrascope-client/cmd/terrascope/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "terrascope",
	Short: "Terrascope platform CLI",
	Long: `A command-line interface for the Terrascope Earth-observation platform.

This CLI provides access to the imagery catalog, orders, subscriptions,
basemaps, tasking, analytics, and account resources.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.terrascope/config.yml)")
	rootCmd.PersistentFlags().StringP("api", "a", "", "API endpoint URL")
	rootCmd.PersistentFlags().StringP("key", "k", "", "API key")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("api", rootCmd.PersistentFlags().Lookup("api"))
	_ = viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewDataCommand())
	rootCmd.AddCommand(commands.NewOrdersCommand())
	rootCmd.AddCommand(commands.NewSubscriptionsCommand())
	rootCmd.AddCommand(commands.NewFeaturesCommand())
	rootCmd.AddCommand(commands.NewMosaicsCommand())
	rootCmd.AddCommand(commands.NewQuotaCommand())
	rootCmd.AddCommand(commands.NewReportsCommand())
	rootCmd.AddCommand(commands.NewTaskingCommand())
	rootCmd.AddCommand(commands.NewAnalyticsCommand())
	rootCmd.AddCommand(commands.NewDestinationsCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Create config directory if it doesn't exist
		configDir := filepath.Join(home, ".terrascope")
		if err := os.MkdirAll(configDir, 0750); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.terrascope/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("TERRASCOPE")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
