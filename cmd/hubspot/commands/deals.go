package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NewDealsCommand creates the deals command group.
func NewDealsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deals",
		Aliases: []string{"deal"},
		Short:   "Manage deals",
		Long:    "Get, list and delete HubSpot deals",
	}

	cmd.AddCommand(newDealsGetCommand())
	cmd.AddCommand(newDealsRecentCommand())
	cmd.AddCommand(newDealsDeleteCommand())

	return cmd
}

func newDealsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <deal-id>",
		Short: "Get deal details",
		Long:  "Display a deal with its properties and associations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			deal, err := client.Deals().Find(commandContext(cmd), dealID)
			if err != nil {
				return fmt.Errorf("failed to get deal: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), deal, func(w io.Writer) error {
				return renderDealDetails(w, deal)
			})
		},
	}
}

func newDealsRecentCommand() *cobra.Command {
	var (
		limit int
		since time.Duration
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently modified deals",
		Long:  "List deals modified recently, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opts := &hubspot.DealListOptions{Limit: limit}
			if since > 0 {
				opts.Since = time.Now().Add(-since)
			}

			deals, err := client.Deals().Recent(commandContext(cmd), opts)
			if err != nil {
				return fmt.Errorf("failed to list recent deals: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), deals, func(w io.Writer) error {
				return renderDealsTable(w, deals)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum number of deals")
	cmd.Flags().DurationVar(&since, "since", 0, "only deals modified within this duration (e.g. 24h)")

	return cmd
}

func newDealsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deal-id>",
		Short: "Delete a deal",
		Long:  "Permanently delete a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Deals().Delete(commandContext(cmd), dealID)
			if err != nil {
				return fmt.Errorf("failed to delete deal: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deal %d deleted\n", dealID)

			return nil
		},
	}
}

func renderDealDetails(w io.Writer, deal *hubspot.Deal) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append("Deal ID", strconv.FormatInt(deal.DealID, 10))
	_ = table.Append("Portal ID", strconv.FormatInt(deal.PortalID, 10))
	_ = table.Append("Company IDs", formatIDs(deal.CompanyIDs))
	_ = table.Append("Contact IDs", formatIDs(deal.Vids))

	names := make([]string, 0, len(deal.Properties))
	for name := range deal.Properties {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		_ = table.Append(name, deal.Properties[name])
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderDealsTable(w io.Writer, deals []hubspot.Deal) error {
	if len(deals) == 0 {
		_, _ = fmt.Fprintln(w, "No deals found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Stage", "Amount")

	for _, deal := range deals {
		_ = table.Append(
			strconv.FormatInt(deal.DealID, 10),
			deal.Property("dealname"),
			deal.Property("dealstage"),
			deal.Property("amount"),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatIDs(ids []int64) string {
	if len(ids) == 0 {
		return "-"
	}

	out := ""

	for i, id := range ids {
		if i > 0 {
			out += ", "
		}

		out += strconv.FormatInt(id, 10)
	}

	return out
}
