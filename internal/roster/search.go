package roster

import (
	"sort"
	"strings"
)

// Match is a checker that matched a search query, with a relevance score.
type Match struct {
	Checker Checker
	// Score orders results; higher is more relevant.
	Score int
	// MatchedOn names the field the query matched: "handle", "name" or
	// "skills".
	MatchedOn string
}

// Scoring tiers. Prefix matches on the handle outrank everything else
// because handles are what ends up in the issue assignment.
const (
	scoreHandlePrefix = 100
	scoreNamePrefix   = 80
	scoreHandleSub    = 60
	scoreNameSub      = 40
	scoreSkill        = 20
)

// Search returns checkers matching the query, best matches first. Matching
// is case-insensitive substring over handle, name and skills; an empty
// query matches nothing.
func Search(checkers []Checker, query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []Match
	for _, c := range checkers {
		if m, ok := score(c, query); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Checker.Name < matches[j].Checker.Name
	})
	return matches
}

func score(c Checker, query string) (Match, bool) {
	handle := strings.ToLower(c.Handle)
	name := strings.ToLower(c.Name)

	switch {
	case strings.HasPrefix(handle, query):
		return Match{Checker: c, Score: scoreHandlePrefix, MatchedOn: "handle"}, true
	case strings.HasPrefix(name, query):
		return Match{Checker: c, Score: scoreNamePrefix, MatchedOn: "name"}, true
	case strings.Contains(handle, query):
		return Match{Checker: c, Score: scoreHandleSub, MatchedOn: "handle"}, true
	case strings.Contains(name, query):
		return Match{Checker: c, Score: scoreNameSub, MatchedOn: "name"}, true
	}

	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return Match{Checker: c, Score: scoreSkill, MatchedOn: "skills"}, true
		}
	}
	return Match{}, false
}
