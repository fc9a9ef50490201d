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

// NewSubscriptionsCommand creates the subscriptions command group.
func NewSubscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Manage data delivery subscriptions",
	}

	cmd.AddCommand(newSubscriptionsListCommand())
	cmd.AddCommand(newSubscriptionsGetCommand())
	cmd.AddCommand(newSubscriptionsCreateCommand())
	cmd.AddCommand(newSubscriptionsUpdateCommand())
	cmd.AddCommand(newSubscriptionsCancelCommand())
	cmd.AddCommand(newSubscriptionsResultsCommand())

	return cmd
}

func newSubscriptionsListCommand() *cobra.Command {
	var (
		limit   int
		hosting string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var params *terrascope.ListParams
			if hosting != "" {
				params = terrascope.NewListParams().WithHosting(hosting)
			}

			ctx := context.Background()

			iterator, err := client.Subscriptions().List(ctx, params, limit)
			if err != nil {
				return fmt.Errorf("failed to list subscriptions: %w", err)
			}

			subscriptions, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect subscriptions: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(subscriptions)
			case OutputFormatYAML:
				return renderYAML(subscriptions)
			default:
				if len(subscriptions) == 0 {
					fmt.Println("No subscriptions found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Status", "Created")

				for _, subscription := range subscriptions {
					_ = table.Append(subscription.ID, subscription.Name, subscription.Status, formatTime(subscription.CreatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum subscriptions to return (0 for unlimited)")
	cmd.Flags().StringVar(&hosting, "hosting", "", "filter by hosting kind")

	return cmd
}

func newSubscriptionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <subscription-id>",
		Short: "Show a single subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			subscription, err := client.Subscriptions().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}

			return renderSubscription(subscription)
		},
	}
}

func newSubscriptionsCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subscription from a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.SubscriptionRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			subscription, err := client.Subscriptions().Create(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to create subscription: %w", err)
			}

			fmt.Printf("Created subscription %s\n", subscription.ID)

			return renderSubscription(subscription)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML subscription request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newSubscriptionsUpdateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "update <subscription-id>",
		Short: "Update a subscription from a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.SubscriptionRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			subscription, err := client.Subscriptions().Update(context.Background(), args[0], &request)
			if err != nil {
				return fmt.Errorf("failed to update subscription: %w", err)
			}

			return renderSubscription(subscription)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML subscription request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newSubscriptionsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <subscription-id>",
		Short: "Cancel a running subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Subscriptions().Cancel(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to cancel subscription: %w", err)
			}

			fmt.Printf("Cancelled subscription %s\n", args[0])

			return nil
		},
	}
}

func newSubscriptionsResultsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results <subscription-id>",
		Short: "List the results a subscription has delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Subscriptions().ListResults(ctx, args[0], limit)
			if err != nil {
				return fmt.Errorf("failed to list results: %w", err)
			}

			results, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect results: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(results)
			case OutputFormatYAML:
				return renderYAML(results)
			default:
				if len(results) == 0 {
					fmt.Println("No results found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Status", "Created")

				for _, result := range results {
					_ = table.Append(result.ID, result.Status, formatTime(result.CreatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum results to return (0 for unlimited)")

	return cmd
}

func renderSubscription(subscription *terrascope.Subscription) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return renderJSON(subscription)
	case OutputFormatYAML:
		return renderYAML(subscription)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", subscription.ID)
		_ = table.Append("Name", subscription.Name)
		_ = table.Append("Status", subscription.Status)
		_ = table.Append("Created", formatTime(subscription.CreatedAt))
		_ = table.Append("Updated", formatTime(subscription.UpdatedAt))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
