package output

import (
	"encoding/json"
	"io"

	"github.com/codecheckers/regclerk/internal/model"
	"github.com/codecheckers/regclerk/internal/roster"
	"github.com/codecheckers/regclerk/internal/service"
	"github.com/codecheckers/regclerk/internal/stats"
)

// JSONFormatter renders results as JSON for scripting and piping.
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	if f.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// FormatNext outputs the full computation result as JSON.
func (f *JSONFormatter) FormatNext(result *service.Result, w io.Writer) error {
	return f.encode(result, w)
}

// FormatStats outputs the register statistics as JSON.
func (f *JSONFormatter) FormatStats(summary stats.Summary, w io.Writer) error {
	return f.encode(summary, w)
}

// FormatCheckers outputs roster search matches as JSON.
func (f *JSONFormatter) FormatCheckers(matches []roster.Match, w io.Writer) error {
	checkers := make([]roster.Checker, 0, len(matches))
	for _, m := range matches {
		checkers = append(checkers, m.Checker)
	}
	return f.encode(checkers, w)
}

// FormatLabels outputs the register labels as JSON.
func (f *JSONFormatter) FormatLabels(labels []model.Label, w io.Writer) error {
	return f.encode(labels, w)
}
