package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hubspot-client/internal/client"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NewPropertiesCommand creates the properties command group.
func NewPropertiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"props"},
		Short:   "Inspect property definitions",
		Long:    "Inspect deal and company property definitions",
	}

	cmd.AddCommand(newPropertiesObjectCommand("deals"))
	cmd.AddCommand(newPropertiesObjectCommand("companies"))

	return cmd
}

func newPropertiesObjectCommand(objectType string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   objectType,
		Short: fmt.Sprintf("Inspect %s properties", objectType),
		Long:  fmt.Sprintf("List and get %s property definitions", objectType),
	}

	cmd.AddCommand(newPropertiesListCommand(objectType))
	cmd.AddCommand(newPropertiesGetCommand(objectType))

	return cmd
}

func propertiesFor(hubspotClient *client.Client, objectType string) (hubspot.PropertiesClient, error) {
	switch objectType {
	case "deals":
		return hubspotClient.DealProperties(), nil
	case "companies":
		return hubspotClient.CompanyProperties(), nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidObjectType, objectType)
	}
}

func newPropertiesListCommand(objectType string) *cobra.Command {
	var include, exclude []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s properties", objectType),
		Long:  fmt.Sprintf("List %s property definitions, optionally filtered by group", objectType),
		RunE: func(cmd *cobra.Command, args []string) error {
			hubspotClient, err := createClient()
			if err != nil {
				return err
			}

			properties, err := propertiesFor(hubspotClient, objectType)
			if err != nil {
				return err
			}

			result, err := properties.All(commandContext(cmd), hubspot.GroupFilter{Include: include, Exclude: exclude})
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
				return renderPropertiesTable(w, result)
			})
		},
	}

	cmd.Flags().StringSliceVar(&include, "include-group", nil, "only properties in these groups")
	cmd.Flags().StringSliceVar(&exclude, "exclude-group", nil, "skip properties in these groups")
	cmd.MarkFlagsMutuallyExclusive("include-group", "exclude-group")

	return cmd
}

func newPropertiesGetCommand(objectType string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: fmt.Sprintf("Get a %s property", objectType),
		Long:  fmt.Sprintf("Display a %s property definition", objectType),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hubspotClient, err := createClient()
			if err != nil {
				return err
			}

			properties, err := propertiesFor(hubspotClient, objectType)
			if err != nil {
				return err
			}

			property, err := properties.Find(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get property: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), property, func(w io.Writer) error {
				return renderPropertyDetails(w, property)
			})
		},
	}
}

func renderPropertiesTable(w io.Writer, properties []hubspot.Property) error {
	if len(properties) == 0 {
		_, _ = fmt.Fprintln(w, "No properties found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Label", "Group", "Type")

	for _, property := range properties {
		_ = table.Append(property.Name, property.Label, property.GroupName, property.Type)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderPropertyDetails(w io.Writer, property *hubspot.Property) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append("Name", property.Name)
	_ = table.Append("Label", property.Label)
	_ = table.Append("Description", property.Description)
	_ = table.Append("Group", property.GroupName)
	_ = table.Append("Type", property.Type)
	_ = table.Append("Field Type", property.FieldType)
	_ = table.Append("Options", strconv.Itoa(len(property.Options)))
	_ = table.Append("Read Only", strconv.FormatBool(property.ReadOnlyValue))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
