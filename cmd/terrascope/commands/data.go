package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// NewDataCommand creates the data command group.
func NewDataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Search the imagery catalog",
		Long:  "Search catalog items and inspect their assets",
	}

	cmd.AddCommand(newDataSearchCommand())
	cmd.AddCommand(newDataItemCommand())
	cmd.AddCommand(newDataAssetsCommand())

	return cmd
}

func newDataSearchCommand() *cobra.Command {
	var (
		itemTypes  []string
		filterFile string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a quick search against the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			request := &terrascope.SearchRequest{ItemTypes: itemTypes}

			if filterFile != "" {
				if err := loadRequestFile(filterFile, &request.Filter); err != nil {
					return err
				}
			}

			ctx := context.Background()

			iterator, err := client.Data().QuickSearch(ctx, request, limit)
			if err != nil {
				return fmt.Errorf("failed to run search: %w", err)
			}

			items, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect search results: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(items)
			case OutputFormatYAML:
				return renderYAML(items)
			default:
				if len(items) == 0 {
					fmt.Println("No items found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Item Type", "Permissions")

				for _, item := range items {
					_ = table.Append(item.ID, item.ItemType, fmt.Sprintf("%d", len(item.Permissions)))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&itemTypes, "item-type", "t", nil, "item types to search (repeatable)")
	cmd.Flags().StringVarP(&filterFile, "filter-file", "f", "", "JSON or YAML file holding the search filter")
	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum items to return (0 for unlimited)")

	return cmd
}

func newDataItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "item <item-type> <item-id>",
		Short: "Show a single catalog item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			item, err := client.Data().GetItem(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get item: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(item)
			case OutputFormatYAML:
				return renderYAML(item)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", item.ID)
				_ = table.Append("Item Type", item.ItemType)
				_ = table.Append("Permissions", fmt.Sprintf("%v", item.Permissions))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newDataAssetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assets <item-type> <item-id>",
		Short: "List the assets of a catalog item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			assets, err := client.Data().ListItemAssets(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to list assets: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(assets)
			case OutputFormatYAML:
				return renderYAML(assets)
			default:
				if len(assets) == 0 {
					fmt.Println("No assets found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Type", "Status")

				for name, asset := range assets {
					_ = table.Append(name, asset.Type, asset.Status)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
