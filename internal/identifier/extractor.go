// Package identifier implements certificate identifier extraction from
// register issue titles and the next-identifier calculation.
//
// A certificate identifier is a YYYY-NNN token uniquely naming one completed
// check within a year. Titles may carry single identifiers or range tokens
// like "2025-020/2025-031" denoting a contiguous inclusive span.
package identifier

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/codecheckers/regclerk/internal/log"
	"github.com/codecheckers/regclerk/internal/model"
)

// Identifier patterns require exactly four year digits and exactly three
// number digits; malformed tokens like "24-1" or "2024-1234" never match.
var (
	rangePattern     = regexp.MustCompile(`\b(\d{4})-(\d{3})/(\d{4})-(\d{3})\b`)
	singletonPattern = regexp.MustCompile(`\b(\d{4})-(\d{3})\b`)
)

// Identifier is one extracted certificate identifier. Immutable value record;
// the issue fields describe where the identifier was found.
type Identifier struct {
	Full        string `json:"full"`
	Year        int    `json:"year"`
	Number      int    `json:"number"`
	IssueTitle  string `json:"issueTitle"`
	IssueNumber int    `json:"issueNumber"`
	IssueURL    string `json:"issueUrl"`
	FromRange   bool   `json:"isFromRange"`
	RangeStart  string `json:"rangeStart,omitempty"`
	RangeEnd    string `json:"rangeEnd,omitempty"`
}

// SkippedRange records a range token that was rejected during extraction,
// for reporting. Cross-year ranges are invalid and never expanded.
type SkippedRange struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Reason      string `json:"reason"`
	IssueNumber int    `json:"issueNumber"`
	IssueTitle  string `json:"issueTitle"`
}

// ExtractOptions configures extraction.
type ExtractOptions struct {
	// RequireLabel restricts extraction to issues carrying this marker label
	// (case-insensitive exact match). Empty means all issues are scanned.
	RequireLabel string
}

// matchedRange is one accepted range within a single title, used to suppress
// singleton matches that duplicate the range's members.
type matchedRange struct {
	year       int
	start, end int
}

// span is a byte range of a matched range token within one title. Singleton
// matches inside these spans are never emitted separately, whether the range
// was accepted or rejected.
type span struct {
	lo, hi int
}

// Extract parses issue titles into a normalized, deduplicated, sorted list of
// certificate identifiers. It is a pure function of the issue titles and
// labels; duplicate identifiers across issues keep the first occurrence in
// issue-processing order. Rejected range tokens are returned for reporting.
func Extract(issues []model.Issue, opts ExtractOptions) ([]Identifier, []SkippedRange) {
	var ids []Identifier
	var skipped []SkippedRange
	seen := make(map[string]bool)

	emit := func(id Identifier) {
		if seen[id.Full] {
			return
		}
		seen[id.Full] = true
		ids = append(ids, id)
	}

	for _, issue := range issues {
		if opts.RequireLabel != "" && !issue.HasLabel(opts.RequireLabel) {
			continue
		}

		var ranges []matchedRange
		var spans []span

		// Range tokens first. Cross-year ranges are discarded whole: they
		// are neither expanded nor later treated as a singleton pair.
		for _, m := range rangePattern.FindAllStringSubmatchIndex(issue.Title, -1) {
			tok := func(i int) string { return issue.Title[m[2*i]:m[2*i+1]] }
			startYear, _ := strconv.Atoi(tok(1))
			startNum, _ := strconv.Atoi(tok(2))
			endYear, _ := strconv.Atoi(tok(3))
			endNum, _ := strconv.Atoi(tok(4))

			rangeStart := fmt.Sprintf("%s-%s", tok(1), tok(2))
			rangeEnd := fmt.Sprintf("%s-%s", tok(3), tok(4))
			spans = append(spans, span{lo: m[0], hi: m[1]})

			if startYear != endYear {
				log.Warn("skipping cross-year range",
					"start", rangeStart, "end", rangeEnd, "issue", issue.Number)
				skipped = append(skipped, SkippedRange{
					Start:       rangeStart,
					End:         rangeEnd,
					Reason:      "cross-year range",
					IssueNumber: issue.Number,
					IssueTitle:  issue.Title,
				})
				continue
			}
			if startNum > endNum {
				log.Warn("skipping reversed range",
					"start", rangeStart, "end", rangeEnd, "issue", issue.Number)
				skipped = append(skipped, SkippedRange{
					Start:       rangeStart,
					End:         rangeEnd,
					Reason:      "reversed range",
					IssueNumber: issue.Number,
					IssueTitle:  issue.Title,
				})
				continue
			}

			ranges = append(ranges, matchedRange{year: startYear, start: startNum, end: endNum})

			// Generated members preserve the start token's zero-padding width.
			width := len(tok(2))
			for n := startNum; n <= endNum; n++ {
				emit(Identifier{
					Full:        fmt.Sprintf("%d-%0*d", startYear, width, n),
					Year:        startYear,
					Number:      n,
					IssueTitle:  issue.Title,
					IssueNumber: issue.Number,
					IssueURL:    issue.HTMLURL,
					FromRange:   true,
					RangeStart:  rangeStart,
					RangeEnd:    rangeEnd,
				})
			}
		}

		// Standalone identifiers in the same title, skipping anything that
		// is part of a range token or falls inside an expanded range.
		for _, m := range singletonPattern.FindAllStringSubmatchIndex(issue.Title, -1) {
			if insideSpan(spans, m[0]) {
				continue
			}
			year, _ := strconv.Atoi(issue.Title[m[2]:m[3]])
			num, _ := strconv.Atoi(issue.Title[m[4]:m[5]])
			if insideRange(ranges, year, num) {
				continue
			}
			emit(Identifier{
				Full:        issue.Title[m[0]:m[1]],
				Year:        year,
				Number:      num,
				IssueTitle:  issue.Title,
				IssueNumber: issue.Number,
				IssueURL:    issue.HTMLURL,
			})
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Year != ids[j].Year {
			return ids[i].Year < ids[j].Year
		}
		return ids[i].Number < ids[j].Number
	})

	return ids, skipped
}

// insideSpan reports whether position pos falls within any matched range token.
func insideSpan(spans []span, pos int) bool {
	for _, s := range spans {
		if pos >= s.lo && pos < s.hi {
			return true
		}
	}
	return false
}

// insideRange reports whether (year, num) is covered by any expanded range
// matched earlier in the same title.
func insideRange(ranges []matchedRange, year, num int) bool {
	for _, r := range ranges {
		if year == r.year && num >= r.start && num <= r.end {
			return true
		}
	}
	return false
}
