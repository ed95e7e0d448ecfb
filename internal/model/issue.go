// Package model defines the data types shared across the regclerk application.
package model

import (
	"strings"
	"time"
)

// Issue state constants as reported by the GitHub API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Issue is a read-only snapshot of a register issue. The register repository
// on GitHub is the source of truth; regclerk never mutates issues.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Labels    []Label   `json:"labels"`
	HTMLURL   string    `json:"htmlUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Label is a repository label attached to an issue.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// HasLabel reports whether the issue carries the named label,
// compared case-insensitively.
func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}

// LabelNames returns the issue's label names in order.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}
