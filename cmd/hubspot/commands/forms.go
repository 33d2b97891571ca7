package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NewFormsCommand creates the forms command group.
func NewFormsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forms",
		Aliases: []string{"form"},
		Short:   "Submit forms",
		Long:    "Submit HubSpot forms",
	}

	cmd.AddCommand(newFormsSubmitCommand())

	return cmd
}

func newFormsSubmitCommand() *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "submit <form-guid>",
		Short: "Submit a form",
		Long:  "Submit field values to a form of the configured portal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseKeyValues(fields)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			submitted, err := client.Forms().Submit(commandContext(cmd), args[0], values)
			if err != nil {
				return fmt.Errorf("failed to submit form: %w", err)
			}

			if !submitted {
				return fmt.Errorf("form %s: %w", args[0], hubspot.ErrRequestFailed)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Form %s submitted\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "form field as key=value (repeatable)")

	return cmd
}
