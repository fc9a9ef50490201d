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

// NewQuotaCommand creates the quota command group.
func NewQuotaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Manage quota products and reservations",
	}

	cmd.AddCommand(newQuotaProductsCommand())
	cmd.AddCommand(newQuotaReservationsCommand())
	cmd.AddCommand(newQuotaReserveCommand())
	cmd.AddCommand(newQuotaEstimateCommand())

	return cmd
}

func newQuotaProductsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List quota products",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Quota().GetProducts(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			products, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect products: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(products)
			case OutputFormatYAML:
				return renderYAML(products)
			default:
				if len(products) == 0 {
					fmt.Println("No products found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Title", "Unit", "Usage", "Limit")

				for _, product := range products {
					_ = table.Append(
						strconv.Itoa(product.ID),
						product.Title,
						product.Unit,
						fmt.Sprintf("%.2f", product.Usage),
						fmt.Sprintf("%.2f", product.Limit),
					)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum products to return (0 for unlimited)")

	return cmd
}

func newQuotaReservationsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List quota reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Quota().ListReservations(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list reservations: %w", err)
			}

			reservations, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect reservations: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(reservations)
			case OutputFormatYAML:
				return renderYAML(reservations)
			default:
				if len(reservations) == 0 {
					fmt.Println("No reservations found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "State", "Amount", "Created")

				for _, reservation := range reservations {
					_ = table.Append(
						strconv.Itoa(reservation.ID),
						reservation.State,
						fmt.Sprintf("%.2f", reservation.Amount),
						formatTime(reservation.CreatedAt),
					)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum reservations to return (0 for unlimited)")

	return cmd
}

func newQuotaReserveCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Create a quota reservation from a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.QuotaReservationRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			reservation, err := client.Quota().CreateReservation(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to create reservation: %w", err)
			}

			fmt.Printf("Created reservation %d in state %s\n", reservation.ID, reservation.State)

			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML reservation request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newQuotaEstimateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of a quota reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.QuotaReservationRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			estimate, err := client.Quota().EstimateReservation(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to estimate reservation: %w", err)
			}

			fmt.Printf("Estimated amount: %.2f\n", estimate.Amount)

			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML reservation request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}
