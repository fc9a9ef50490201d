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

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage imagery orders",
		Long:  "Create, list, cancel, and wait on imagery orders",
	}

	cmd.AddCommand(newOrdersListCommand())
	cmd.AddCommand(newOrdersGetCommand())
	cmd.AddCommand(newOrdersCreateCommand())
	cmd.AddCommand(newOrdersCancelCommand())
	cmd.AddCommand(newOrdersWaitCommand())

	return cmd
}

func newOrdersListCommand() *cobra.Command {
	var (
		limit  int
		source string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var params *terrascope.ListParams
			if source != "" {
				params = terrascope.NewListParams().WithSource(source)
			}

			ctx := context.Background()

			iterator, err := client.Orders().List(ctx, params, limit)
			if err != nil {
				return fmt.Errorf("failed to list orders: %w", err)
			}

			orders, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect orders: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(orders)
			case OutputFormatYAML:
				return renderYAML(orders)
			default:
				if len(orders) == 0 {
					fmt.Println("No orders found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "State", "Created")

				for _, order := range orders {
					_ = table.Append(order.ID, order.Name, order.State, formatTime(order.CreatedOn))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum orders to return (0 for unlimited)")
	cmd.Flags().StringVar(&source, "source", "", "filter by source type")

	return cmd
}

func newOrdersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show a single order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			order, err := client.Orders().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get order: %w", err)
			}

			return renderOrder(order)
		},
	}
}

func newOrdersCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order from a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.OrderRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			order, err := client.Orders().Create(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			fmt.Printf("Created order %s\n", order.ID)

			return renderOrder(order)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML order request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newOrdersCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel a running order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Orders().Cancel(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to cancel order: %w", err)
			}

			fmt.Printf("Cancelled order %s\n", args[0])

			return nil
		},
	}
}

func newOrdersWaitCommand() *cobra.Command {
	var (
		state       string
		delay       time.Duration
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "wait <order-id>",
		Short: "Wait for an order to reach a state",
		Long:  "Poll an order until it reaches the target state or finishes in a terminal state",
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
					fmt.Printf("Order %s: %s\n", args[0], observed)
				},
			}

			final, err := client.Orders().Wait(context.Background(), args[0], state, opts)
			if err != nil {
				return fmt.Errorf("failed waiting for order: %w", err)
			}

			fmt.Printf("Order %s finished waiting in state %s\n", args[0], final)

			return nil
		},
	}

	cmd.Flags().StringVarP(&state, "state", "s", "success", "target state to wait for")
	cmd.Flags().DurationVar(&delay, "delay", terrascope.DefaultWaitDelay, "pause between polls")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", terrascope.DefaultWaitMaxAttempts, "poll budget (0 for unlimited)")

	return cmd
}

func renderOrder(order *terrascope.Order) error {
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
		_ = table.Append("State", order.State)
		_ = table.Append("Created", formatTime(order.CreatedOn))
		_ = table.Append("Last Message", order.LastMessage)

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
