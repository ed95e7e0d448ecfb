// Package output renders computation results for the terminal or for
// machine consumption.
package output

import (
	"fmt"
	"io"

	"github.com/codecheckers/regclerk/internal/model"
	"github.com/codecheckers/regclerk/internal/roster"
	"github.com/codecheckers/regclerk/internal/service"
	"github.com/codecheckers/regclerk/internal/stats"
)

// Format names an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formatter renders the assistant's results.
type Formatter interface {
	FormatNext(result *service.Result, w io.Writer) error
	FormatStats(summary stats.Summary, w io.Writer) error
	FormatCheckers(matches []roster.Match, w io.Writer) error
	FormatLabels(labels []model.Label, w io.Writer) error
}

// NewFormatter creates a formatter for the named format.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}, nil
	case FormatTable, "":
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}
