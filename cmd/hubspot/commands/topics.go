package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTopicsCommand creates the topics command group.
func NewTopicsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"topic"},
		Short:   "Inspect blog topics",
		Long:    "List blog topics",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List blog topics",
		Long:  "List every blog topic of the portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			topics, err := client.Topics().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list topics: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), topics, func(w io.Writer) error {
				if len(topics) == 0 {
					_, _ = fmt.Fprintln(w, "No topics found")

					return nil
				}

				table := tablewriter.NewWriter(w)
				table.Header("ID", "Name", "Slug")

				for _, topic := range topics {
					_ = table.Append(strconv.FormatInt(topic.ID, 10), topic.Name, topic.Slug)
				}

				return renderTable(table)
			})
		},
	})

	return cmd
}
