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

// NewDestinationsCommand creates the destinations command group.
func NewDestinationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "Manage delivery destinations",
	}

	cmd.AddCommand(newDestinationsListCommand())
	cmd.AddCommand(newDestinationsGetCommand())
	cmd.AddCommand(newDestinationsCreateCommand())
	cmd.AddCommand(newDestinationsUpdateCommand())
	cmd.AddCommand(newDestinationsArchiveCommand())

	return cmd
}

func newDestinationsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			iterator, err := client.Destinations().List(ctx, nil, limit)
			if err != nil {
				return fmt.Errorf("failed to list destinations: %w", err)
			}

			destinations, err := iterator.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to collect destinations: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(destinations)
			case OutputFormatYAML:
				return renderYAML(destinations)
			default:
				if len(destinations) == 0 {
					fmt.Println("No destinations found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Type", "Archived")

				for _, destination := range destinations {
					archived := "no"
					if destination.Archived {
						archived = "yes"
					}

					_ = table.Append(destination.ID, destination.Name, destination.Type, archived)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "maximum destinations to return (0 for unlimited)")

	return cmd
}

func newDestinationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <destination-id>",
		Short: "Show a single destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			destination, err := client.Destinations().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get destination: %w", err)
			}

			return renderDestination(destination)
		},
	}
}

func newDestinationsCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a destination from a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.DestinationRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			destination, err := client.Destinations().Create(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to create destination: %w", err)
			}

			fmt.Printf("Created destination %s\n", destination.ID)

			return renderDestination(destination)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML destination request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newDestinationsUpdateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "update <destination-id>",
		Short: "Update a destination from a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request terrascope.DestinationRequest
			if err := loadRequestFile(fromFile, &request); err != nil {
				return err
			}

			destination, err := client.Destinations().Update(context.Background(), args[0], &request)
			if err != nil {
				return fmt.Errorf("failed to update destination: %w", err)
			}

			return renderDestination(destination)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML destination request file")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newDestinationsArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <destination-id>",
		Short: "Archive a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			archived := true
			request := &terrascope.DestinationRequest{Archived: &archived}

			if _, err := client.Destinations().Update(context.Background(), args[0], request); err != nil {
				return fmt.Errorf("failed to archive destination: %w", err)
			}

			fmt.Printf("Archived destination %s\n", args[0])

			return nil
		},
	}
}

func renderDestination(destination *terrascope.Destination) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return renderJSON(destination)
	case OutputFormatYAML:
		return renderYAML(destination)
	default:
		archived := "no"
		if destination.Archived {
			archived = "yes"
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", destination.ID)
		_ = table.Append("Name", destination.Name)
		_ = table.Append("Type", destination.Type)
		_ = table.Append("Archived", archived)

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
