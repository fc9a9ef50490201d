package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// NewTaskingCommand creates the tasking command group.
func NewTaskingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasking",
		Short: "Manage satellite tasking orders",
	}

	cmd.AddCommand(newTaskingListCommand())
	cmd.AddCommand(newTaskingGetCommand())
	cmd.AddCommand(newTaskingCreateCommand())
	cmd.AddCommand(newTaskingCancelCommand())
	cmd.AddCommand(newTaskingWaitCommand())

	return cmd
}

func newTaskingListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasking orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Tasking().ListOrders(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list tasking orders: %w", err)
			}

			orders, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect tasking orders: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(orders)
			case OutputFormatYAML:
				return renderYAML(orders)
			default:
				if len(orders) == 0 {
					fmt.Println("No tasking orders found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Status", "Window Start", "Window End")

				for _, order := range orders {
					_ = table.Append(order.ID, order.Name, order.Status, formatTime(order.StartTime), formatTime(order.EndTime))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum orders to return (0 for unlimited)")

	return cmd
}

func newTaskingGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show a single tasking order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			order, err := client.Tasking().GetOrder(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get tasking order: %w", err)
			}

			return renderTaskingOrder(order)
		},
	}
}

func newTaskingCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tasking order from a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.TaskingOrderRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			order, err := client.Tasking().CreateOrder(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to create tasking order: %w", err)
			}

			fmt.Printf("Created tasking order %s\n", order.ID)

			return renderTaskingOrder(order)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML tasking order request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newTaskingCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel a tasking order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Tasking().CancelOrder(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to cancel tasking order: %w", err)
			}

			fmt.Printf("Cancelled tasking order %s\n", args[0])

			return nil
		},
	}
}

func newTaskingWaitCommand() *cobra.Command {
	var (
		state       string
		delay       time.Duration
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "wait <order-id>",
		Short: "Wait for a tasking order to reach a state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts := &terrascope.WaitOptions{
				Delay:       delay,
				MaxAttempts: maxAttempts,
				OnObserve: func(observed string) {
					fmt.Printf("Tasking order %s: %s\n", args[0], observed)
				},
			}

			final, err := client.Tasking().WaitForOrder(context.Background(), args[0], state, opts)
			if err != nil {
				return fmt.Errorf("failed waiting for tasking order: %w", err)
			}

			fmt.Printf("Tasking order %s finished waiting in state %s\n", args[0], final)

			return nil
		},
	}

	cmd.Flags().StringVarP(&state, "state", "s", "success", "target state to wait for")
	cmd.Flags().DurationVar(&delay, "delay", terrascope.DefaultWaitDelay, "pause between polls")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", terrascope.DefaultWaitMaxAttempts, "poll budget (0 for unlimited)")

	return cmd
}

func renderTaskingOrder(order *terrascope.TaskingOrder) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return renderJSON(order)
	case OutputFormatYAML:
		return renderYAML(order)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", order.ID)
		_ = table.Append("Name", order.Name)
		_ = table.Append("Status", order.Status)
		_ = table.Append("Window Start", formatTime(order.StartTime))
		_ = table.Append("Window End", formatTime(order.EndTime))
		_ = table.Append("Created", formatTime(order.CreatedTime))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
