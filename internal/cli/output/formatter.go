package output

import (
	"fmt"
	"io"
	"slices"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates s as an output format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
	return f, nil
}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format, wide bool) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{Wide: wide}
	}
}
