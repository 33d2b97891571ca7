package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NewListsCommand creates the contact lists command group.
func NewListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list", "contact-lists"},
		Short:   "Inspect contact lists",
		Long:    "Get and list HubSpot contact lists",
	}

	cmd.AddCommand(newListsGetCommand())
	cmd.AddCommand(newListsAllCommand())

	return cmd
}

func newListsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <list-id>...",
		Short: "Get contact lists",
		Long:  "Display one contact list, or several fetched in a single batch request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listIDs := make([]int64, 0, len(args))

			for _, arg := range args {
				listID, err := parseID(arg)
				if err != nil {
					return err
				}

				listIDs = append(listIDs, listID)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			if len(listIDs) == 1 {
				list, err := client.ContactLists().Find(ctx, listIDs[0])
				if err != nil {
					return fmt.Errorf("failed to get contact list: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), list, func(w io.Writer) error {
					return renderContactListsTable(w, []hubspot.ContactList{*list})
				})
			}

			lists, err := client.ContactLists().FindBatch(ctx, listIDs)
			if err != nil {
				return fmt.Errorf("failed to get contact lists: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), lists, func(w io.Writer) error {
				return renderContactListsTable(w, lists)
			})
		},
	}
}

func newListsAllCommand() *cobra.Command {
	var (
		kind   string
		count  int
		offset int64
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "List contact lists",
		Long:  "List contact lists, optionally only static or dynamic ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			listKind := hubspot.ContactListKind(kind)

			switch listKind {
			case hubspot.ListsAll, hubspot.ListsStatic, hubspot.ListsDynamic:
			default:
				return fmt.Errorf("%w: kind must be static or dynamic", hubspot.ErrInvalidParams)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			page, err := client.ContactLists().All(commandContext(cmd), &hubspot.ContactListOptions{
				Kind:   listKind,
				Count:  count,
				Offset: offset,
			})
			if err != nil {
				return fmt.Errorf("failed to list contact lists: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), page, func(w io.Writer) error {
				err := renderContactListsTable(w, page.Lists)
				if err != nil {
					return err
				}

				if page.HasMore {
					_, _ = fmt.Fprintf(w, "More lists available, use --offset %d\n", page.Offset)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "list kind (static or dynamic)")
	cmd.Flags().IntVar(&count, "count", constants.DefaultPageSize, "number of lists per page")
	cmd.Flags().Int64Var(&offset, "offset", 0, "offset returned by the previous page")

	return cmd
}

func renderContactListsTable(w io.Writer, lists []hubspot.ContactList) error {
	if len(lists) == 0 {
		_, _ = fmt.Fprintln(w, "No contact lists found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Dynamic")

	for _, list := range lists {
		_ = table.Append(strconv.FormatInt(list.ListID, 10), list.Name, strconv.FormatBool(list.Dynamic))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
