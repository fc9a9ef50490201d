package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// NewFeaturesCommand creates the features command group.
func NewFeaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Manage feature collections",
		Long:  "List and populate OGC feature collections used as areas of interest",
	}

	cmd.AddCommand(newFeaturesListCommand())
	cmd.AddCommand(newFeaturesGetCommand())
	cmd.AddCommand(newFeaturesItemsCommand())
	cmd.AddCommand(newFeaturesAddCommand())

	return cmd
}

func newFeaturesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feature collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Features().ListCollections(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list collections: %w", err)
			}

			collections, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect collections: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(collections)
			case OutputFormatYAML:
				return renderYAML(collections)
			default:
				if len(collections) == 0 {
					fmt.Println("No collections found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Title", "Features")

				for _, collection := range collections {
					_ = table.Append(collection.ID, collection.Title, strconv.Itoa(collection.FeatureCount))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum collections to return (0 for unlimited)")

	return cmd
}

func newFeaturesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection-id>",
		Short: "Show a single feature collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			collection, err := client.Features().GetCollection(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get collection: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(collection)
			case OutputFormatYAML:
				return renderYAML(collection)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", collection.ID)
				_ = table.Append("Title", collection.Title)
				_ = table.Append("Description", collection.Description)
				_ = table.Append("Features", strconv.Itoa(collection.FeatureCount))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newFeaturesItemsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "items <collection-id>",
		Short: "List the features in a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Features().ListItems(ctx, args[0], limit)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			features, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect items: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(features)
			case OutputFormatYAML:
				return renderYAML(features)
			default:
				if len(features) == 0 {
					fmt.Println("No features found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Geometry Type")

				for _, feature := range features {
					geometryType := NotAvailable
					if t, ok := feature.Geometry["type"].(string); ok {
						geometryType = t
					}

					_ = table.Append(feature.ID, geometryType)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum features to return (0 for unlimited)")

	return cmd
}

func newFeaturesAddCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "add <collection-id>",
		Short: "Add features to a collection from a GeoJSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var payload struct {
				Features []terrascope.Feature `json:"features" yaml:"features"`
			}

			if err := loadRequestFile(fromFile, &payload); err != nil {
				return err
			}

			ids, err := client.Features().AddItems(context.Background(), args[0], payload.Features)
			if err != nil {
				return fmt.Errorf("failed to add features: %w", err)
			}

			fmt.Printf("Added %d features\n", len(ids))

			for _, id := range ids {
				fmt.Println(id)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "GeoJSON FeatureCollection file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}
