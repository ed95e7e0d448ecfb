package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/codecheckers/regclerk/internal/format"
	"github.com/codecheckers/regclerk/internal/model"
	"github.com/codecheckers/regclerk/internal/roster"
	"github.com/codecheckers/regclerk/internal/service"
	"github.com/codecheckers/regclerk/internal/stats"
)

// TableFormatter renders results as aligned terminal text.
type TableFormatter struct{}

var (
	headerColor  = color.New(color.Bold)
	nextColor    = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
	handleColor  = color.New(color.FgCyan)
	numberFormat = color.New(color.FgCyan)
)

// hyperlink wraps text in an OSC 8 terminal hyperlink when stdout is a
// terminal.
func hyperlink(text, url string) string {
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// FormatNext renders the next-identifier result with context: the highest
// identifier found, skipped ranges, collision warnings and the statistics
// summary.
func (f *TableFormatter) FormatNext(result *service.Result, w io.Writer) error {
	fmt.Fprintf(w, "%s  %s\n",
		headerColor.Sprint("Register:"),
		hyperlink(result.Register.FullName(), "https://github.com/"+result.Register.FullName()))

	fmt.Fprintf(w, "%s      %s\n", headerColor.Sprint("Next:"), nextColor.Sprint(result.Next.Identifier))

	if result.Next.FirstOfYear {
		fmt.Fprintf(w, "           %s\n", dimColor.Sprintf("first certificate of %d", result.Next.Year))
	} else if h := result.Next.Highest; h != nil {
		fmt.Fprintf(w, "%s   %s (issue #%d: %s)\n",
			headerColor.Sprint("Highest:"),
			numberFormat.Sprint(h.Full),
			h.IssueNumber,
			format.TruncateToWidth(h.IssueTitle, 50))
	}

	for _, c := range result.Collisions {
		warnColor.Fprintf(w, "Warning: %s already appears in issue #%d (%s)\n",
			result.Next.Identifier, c.Number, format.TruncateToWidth(c.Title, 50))
	}

	for _, sk := range result.Skipped {
		warnColor.Fprintf(w, "Skipped range %s/%s in issue #%d: %s\n",
			sk.Start, sk.End, sk.IssueNumber, sk.Reason)
	}

	fmt.Fprintln(w)
	return f.FormatStats(result.Stats, w)
}

// FormatStats renders the register statistics summary.
func (f *TableFormatter) FormatStats(summary stats.Summary, w io.Writer) error {
	headerColor.Fprintln(w, "Register statistics")
	fmt.Fprintf(w, "  Checks:   %d (%d ongoing)\n", summary.NumberOfChecks, summary.OngoingChecks)
	fmt.Fprintln(w, "  Completed by category:")
	for _, cat := range stats.Categories() {
		fmt.Fprintf(w, "    %s %d\n", format.PadRight(cat, 20), summary.CompletedByCategory[cat])
	}
	return nil
}

// FormatCheckers renders roster search matches as a table.
func (f *TableFormatter) FormatCheckers(matches []roster.Match, w io.Writer) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No checkers found.")
		return nil
	}

	const (
		colHandle = 18
		colName   = 26
		colSkills = 40
	)

	headerColor.Fprintf(w, "%s  %s  %s\n",
		format.PadRight("Handle", colHandle),
		format.PadRight("Name", colName),
		"Skills")
	fmt.Fprintln(w, strings.Repeat("-", colHandle+colName+colSkills+4))

	for _, m := range matches {
		handle := handleColor.Sprint("@" + m.Checker.Handle)
		if m.Checker.Handle == "" {
			handle = dimColor.Sprint("(no handle)")
		} else {
			handle = hyperlink(handle, "https://github.com/"+m.Checker.Handle)
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			format.PadRight(handle, colHandle),
			format.PadRight(format.TruncateToWidth(m.Checker.Name, colName), colName),
			format.TruncateToWidth(strings.Join(m.Checker.Skills, ", "), colSkills))
	}
	return nil
}

// FormatLabels renders the register's labels.
func (f *TableFormatter) FormatLabels(labels []model.Label, w io.Writer) error {
	if len(labels) == 0 {
		fmt.Fprintln(w, "No labels found.")
		return nil
	}
	for _, l := range labels {
		fmt.Fprintf(w, "%s  %s\n", format.PadRight(l.Name, 24), dimColor.Sprint("#"+l.Color))
	}
	return nil
}
