// Package cli renders command results in the format the root --output flag
// selected. Commands hand their summary structs to Output and stay unaware of
// the chosen encoding.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputFormat is one of the encodings a summary can be rendered in.
type OutputFormat string

const (
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
)

// globalOutputFormat is set once by the root command before any RunE fires.
var globalOutputFormat = OutputFormatYAML

// SetOutputFormat parses the --output flag value; anything unrecognized falls
// back to yaml.
func SetOutputFormat(format string) {
	switch format {
	case "json":
		globalOutputFormat = OutputFormatJSON
	default:
		globalOutputFormat = OutputFormatYAML
	}
}

// Output renders data to stdout in the selected format.
func Output(data any) error {
	return OutputTo(os.Stdout, globalOutputFormat, data)
}

// OutputTo renders data to w in the given format.
func OutputTo(w io.Writer, format OutputFormat, data any) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
