package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewMosaicsCommand creates the mosaics command group.
func NewMosaicsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mosaics",
		Short: "Browse basemap mosaics",
	}

	cmd.AddCommand(newMosaicsListCommand())
	cmd.AddCommand(newMosaicsGetCommand())
	cmd.AddCommand(newMosaicsQuadsCommand())

	return cmd
}

func newMosaicsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mosaics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Mosaics().List(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list mosaics: %w", err)
			}

			mosaics, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect mosaics: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(mosaics)
			case OutputFormatYAML:
				return renderYAML(mosaics)
			default:
				if len(mosaics) == 0 {
					fmt.Println("No mosaics found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Interval", "Last Acquired")

				for _, mosaic := range mosaics {
					_ = table.Append(mosaic.ID, mosaic.Name, mosaic.Interval, formatTime(mosaic.LastAcquired))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum mosaics to return (0 for unlimited)")

	return cmd
}

func newMosaicsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <mosaic-id>",
		Short: "Show a single mosaic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			mosaic, err := client.Mosaics().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get mosaic: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(mosaic)
			case OutputFormatYAML:
				return renderYAML(mosaic)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", mosaic.ID)
				_ = table.Append("Name", mosaic.Name)
				_ = table.Append("Interval", mosaic.Interval)
				_ = table.Append("First Acquired", formatTime(mosaic.FirstAcquired))
				_ = table.Append("Last Acquired", formatTime(mosaic.LastAcquired))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newMosaicsQuadsCommand() *cobra.Command {
	var (
		limit int
		bbox  []float64
	)

	cmd := &cobra.Command{
		Use:   "quads <mosaic-id>",
		Short: "List the quads of a mosaic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Mosaics().ListQuads(ctx, args[0], bbox, limit)
			if err != nil {
				return fmt.Errorf("failed to list quads: %w", err)
			}

			quads, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect quads: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(quads)
			case OutputFormatYAML:
				return renderYAML(quads)
			default:
				if len(quads) == 0 {
					fmt.Println("No quads found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Coverage")

				for _, quad := range quads {
					_ = table.Append(quad.ID, fmt.Sprintf("%.1f%%", quad.PercentCovered))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum quads to return (0 for unlimited)")
	cmd.Flags().Float64SliceVar(&bbox, "bbox", nil, "bounding box minx,miny,maxx,maxy")

	return cmd
}
