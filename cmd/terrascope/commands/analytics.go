package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewAnalyticsCommand creates the analytics command group.
func NewAnalyticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Browse analytics feeds and results",
	}

	cmd.AddCommand(newAnalyticsFeedsCommand())
	cmd.AddCommand(newAnalyticsFeedCommand())
	cmd.AddCommand(newAnalyticsSubscriptionsCommand())
	cmd.AddCommand(newAnalyticsResultsCommand())

	return cmd
}

func newAnalyticsFeedsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "feeds",
		Short: "List analytics feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Analytics().ListFeeds(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list feeds: %w", err)
			}

			feeds, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect feeds: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(feeds)
			case OutputFormatYAML:
				return renderYAML(feeds)
			default:
				if len(feeds) == 0 {
					fmt.Println("No feeds found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Title", "Created")

				for _, feed := range feeds {
					_ = table.Append(feed.ID, feed.Title, formatTime(feed.CreatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum feeds to return (0 for unlimited)")

	return cmd
}

func newAnalyticsFeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "feed <feed-id>",
		Short: "Show a single analytics feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			feed, err := client.Analytics().GetFeed(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get feed: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(feed)
			case OutputFormatYAML:
				return renderYAML(feed)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", feed.ID)
				_ = table.Append("Title", feed.Title)
				_ = table.Append("Description", feed.Description)
				_ = table.Append("Created", formatTime(feed.CreatedAt))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newAnalyticsSubscriptionsCommand() *cobra.Command {
	var (
		limit  int
		feedID string
	)

	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List analytics subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Analytics().ListSubscriptions(ctx, feedID, limit)
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
				table.Header("ID", "Title", "Feed", "Created")

				for _, subscription := range subscriptions {
					_ = table.Append(subscription.ID, subscription.Title, subscription.FeedID, formatTime(subscription.CreatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum subscriptions to return (0 for unlimited)")
	cmd.Flags().StringVar(&feedID, "feed", "", "restrict to a single feed")

	return cmd
}

func newAnalyticsResultsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results <subscription-id>",
		Short: "List the results of an analytics subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Analytics().ListResults(ctx, args[0], limit)
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
				table.Header("ID", "Geometry Type")

				for _, result := range results {
					geometryType := NotAvailable
					if t, ok := result.Geometry["type"].(string); ok {
						geometryType = t
					}

					_ = table.Append(result.ID, geometryType)
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
