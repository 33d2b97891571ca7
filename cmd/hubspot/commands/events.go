package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Record behavioral events",
		Long:    "Record behavioral events against contacts",
	}

	cmd.AddCommand(newEventsTrackCommand())
	cmd.AddCommand(newEventsSendCommand())

	return cmd
}

func newEventsTrackCommand() *cobra.Command {
	var (
		email      string
		properties []string
	)

	cmd := &cobra.Command{
		Use:   "track <event-id>",
		Short: "Trigger a behavioral event",
		Long:  "Trigger a behavioral event for a contact through the tracking endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseKeyValues(properties)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			tracked, err := client.Events().Track(commandContext(cmd), args[0], email, props)
			if err != nil {
				return fmt.Errorf("failed to track event: %w", err)
			}

			if !tracked {
				return fmt.Errorf("event %s: %w", args[0], hubspot.ErrRequestFailed)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Event %s tracked\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringArrayVarP(&properties, "property", "p", nil, "event property as key=value (repeatable)")

	return cmd
}

func newEventsSendCommand() *cobra.Command {
	var (
		email      string
		objectID   string
		properties []string
	)

	cmd := &cobra.Command{
		Use:   "send <event-name>",
		Short: "Send a custom behavioral event",
		Long:  "Send a custom behavioral event occurrence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseKeyValues(properties)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Events().TrackCustom(commandContext(cmd), &hubspot.CustomEvent{
				EventName:  args[0],
				Email:      email,
				ObjectID:   objectID,
				Properties: props,
			})
			if err != nil {
				return fmt.Errorf("failed to send event: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Event %s sent\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&objectID, "object-id", "", "contact object id")
	cmd.Flags().StringArrayVarP(&properties, "property", "p", nil, "event property as key=value (repeatable)")

	return cmd
}
