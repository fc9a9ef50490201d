package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewReportsCommand creates the reports command group.
func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse account usage reports",
	}

	cmd.AddCommand(newReportsListCommand())
	cmd.AddCommand(newReportsGetCommand())

	return cmd
}

func newReportsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Reports().List(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list reports: %w", err)
			}

			reports, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect reports: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(reports)
			case OutputFormatYAML:
				return renderYAML(reports)
			default:
				if len(reports) == 0 {
					fmt.Println("No reports found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Type", "Created")

				for _, report := range reports {
					_ = table.Append(report.ID, report.Name, report.Type, formatTime(report.CreatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum reports to return (0 for unlimited)")

	return cmd
}

func newReportsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <report-id>",
		Short: "Show a single report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			report, err := client.Reports().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get report: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(report)
			case OutputFormatYAML:
				return renderYAML(report)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", report.ID)
				_ = table.Append("Name", report.Name)
				_ = table.Append("Type", report.Type)
				_ = table.Append("Created", formatTime(report.CreatedAt))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
