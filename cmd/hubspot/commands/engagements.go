package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NewEngagementsCommand creates the engagements command group.
func NewEngagementsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "engagements",
		Aliases: []string{"engagement"},
		Short:   "Inspect engagements",
		Long:    "Inspect notes, calls and other HubSpot engagements",
	}

	cmd.AddCommand(newEngagementsGetCommand())

	return cmd
}

func newEngagementsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <engagement-id>",
		Short: "Get engagement details",
		Long:  "Display an engagement with its associations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engagementID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			engagement, err := client.Engagements().Find(commandContext(cmd), engagementID)
			if err != nil {
				return fmt.Errorf("failed to get engagement: %w", err)
			}

			if engagement == nil {
				return fmt.Errorf("engagement %d: %w", engagementID, hubspot.ErrNotFound)
			}

			return renderOutput(cmd.OutOrStdout(), engagement, func(w io.Writer) error {
				return renderEngagementDetails(w, engagement)
			})
		},
	}
}

func renderEngagementDetails(w io.Writer, engagement *hubspot.Engagement) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	info := engagement.Engagement
	_ = table.Append("ID", strconv.FormatInt(info.ID, 10))
	_ = table.Append("Type", info.Type)

	if info.Timestamp > 0 {
		_ = table.Append("Timestamp", time.UnixMilli(info.Timestamp).UTC().Format(time.RFC3339))
	}

	_ = table.Append("Contacts", formatIDs(engagement.Associations.ContactIDs))
	_ = table.Append("Companies", formatIDs(engagement.Associations.CompanyIDs))
	_ = table.Append("Deals", formatIDs(engagement.Associations.DealIDs))

	if body := engagement.Body(); body != "" {
		_ = table.Append("Body", body)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
