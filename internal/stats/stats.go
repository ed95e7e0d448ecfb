// Package stats aggregates register issue counts for dashboard display.
package stats

import (
	"strings"

	"github.com/codecheckers/regclerk/internal/model"
)

// developmentLabel marks issues about the register itself rather than
// checks; they are excluded from every count.
const developmentLabel = "development"

// Summary holds aggregate counts over a register's issues.
type Summary struct {
	NumberOfChecks      int            `json:"numberOfChecks"`
	OngoingChecks       int            `json:"ongoingChecks"`
	CompletedByCategory map[string]int `json:"completedByCategory"`
}

// categorySynonyms maps each reporting category to the label fragments that
// place a completed check in it. Matching is case-insensitive substring
// containment, so a "Conference/Workshop 2024" label still counts.
var categorySynonyms = map[string][]string{
	"journal":            {"journal"},
	"conferenceWorkshop": {"conference", "workshop"},
	"community":          {"community"},
	"institution":        {"institution"},
}

// Categories returns the known reporting categories.
func Categories() []string {
	return []string{"journal", "conferenceWorkshop", "community", "institution"}
}

// Aggregate counts issues by state and category. Development-labeled issues
// are excluded from all counts. The aggregation is a dashboard input: it
// never fails, degrading to zero counts on malformed issues instead.
func Aggregate(issues []model.Issue) Summary {
	s := Summary{CompletedByCategory: make(map[string]int, len(categorySynonyms))}
	for _, cat := range Categories() {
		s.CompletedByCategory[cat] = 0
	}

	for _, issue := range issues {
		if issue.HasLabel(developmentLabel) {
			continue
		}

		s.NumberOfChecks++
		if issue.State == model.StateOpen {
			s.OngoingChecks++
		}

		if issue.State != model.StateClosed {
			continue
		}
		for cat, synonyms := range categorySynonyms {
			if hasAnyLabelFragment(issue, synonyms) {
				s.CompletedByCategory[cat]++
			}
		}
	}

	return s
}

// hasAnyLabelFragment reports whether any label name case-insensitively
// contains one of the fragments.
func hasAnyLabelFragment(issue model.Issue, fragments []string) bool {
	for _, l := range issue.Labels {
		name := strings.ToLower(l.Name)
		for _, frag := range fragments {
			if strings.Contains(name, frag) {
				return true
			}
		}
	}
	return false
}
