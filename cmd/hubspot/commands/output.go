package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/itchyny/gojq"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
)

// tableRenderer writes a human-readable rendition of a result.
type tableRenderer func(w io.Writer) error

// renderOutput writes data in the format selected by --output. A --jq
// expression takes precedence and always produces JSON.
func renderOutput(w io.Writer, data interface{}, table tableRenderer) error {
	if expression := viper.GetString("jq"); expression != "" {
		return renderJQ(w, data, expression)
	}

	switch viper.GetString("output") {
	case constants.OutputFormatJSON:
		return writeJSON(w, data)
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.JSONIndentSize)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	default:
		return table(w)
	}
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// renderJQ runs expression over the JSON form of data and writes each result.
func renderJQ(w io.Writer, data interface{}, expression string) error {
	query, err := gojq.Parse(expression)
	if err != nil {
		return fmt.Errorf("invalid jq expression: %w", err)
	}

	input, err := toGeneric(data)
	if err != nil {
		return err
	}

	written := 0
	iter := query.Run(input)

	for {
		value, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := value.(error); isErr {
			return fmt.Errorf("jq error: %w", err)
		}

		err = writeJSON(w, value)
		if err != nil {
			return err
		}

		written++
	}

	if written == 0 {
		return constants.ErrJQNoOutput
	}

	return nil
}

// toGeneric converts data into the map/slice form gojq operates on.
func toGeneric(data interface{}) (interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	var generic interface{}

	err = json.Unmarshal(raw, &generic)
	if err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}

	return generic, nil
}

func validateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatJSON, constants.OutputFormatYAML, constants.OutputFormatTable:
		return nil
	default:
		return fmt.Errorf("%w: %s (expected table, json or yaml)", constants.ErrInvalidOutput, format)
	}
}

// titleCase turns a snake_case key into a table heading.
func titleCase(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
