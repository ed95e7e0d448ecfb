// Package roster loads and searches the codechecker roster, a CSV resource
// with loosely-specified column names.
package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/codecheckers/regclerk/internal/log"
)

// Checker is one codechecker from the roster.
type Checker struct {
	Name   string   `json:"name"`
	Handle string   `json:"handle"`
	ORCID  string   `json:"orcid,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// columnAliases maps each checker field to the header names that may carry
// it. Headers are matched case-insensitively after trimming.
var columnAliases = map[string][]string{
	"name":   {"name"},
	"handle": {"github", "handle", "github handle"},
	"skills": {"skills", "expertise"},
	"orcid":  {"orcid", "orcid id"},
}

// Parse reads the roster CSV. The header row is resolved through the column
// aliases; rows missing a resolvable name and handle are skipped rather than
// failing the whole roster.
func Parse(r io.Reader) ([]Checker, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	cols := resolveColumns(header)
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("roster has no recognizable name column: %v", header)
	}

	var checkers []Checker
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster row: %w", err)
		}

		c := Checker{
			Name:   field(record, cols, "name"),
			Handle: strings.TrimPrefix(field(record, cols, "handle"), "@"),
			ORCID:  field(record, cols, "orcid"),
			Skills: splitSkills(field(record, cols, "skills")),
		}
		if c.Name == "" && c.Handle == "" {
			log.Debug("skipping roster row without name or handle", "row", record)
			continue
		}
		checkers = append(checkers, c)
	}

	return checkers, nil
}

// resolveColumns maps field names to column indexes using the alias table.
func resolveColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range columnAliases {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if h == alias {
					cols[field] = i
					break
				}
			}
		}
	}
	return cols
}

// field returns the trimmed cell for the named column, or "" when the column
// is absent or the row is too short.
func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// splitSkills splits a skills cell on semicolons or pipes.
func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	sep := ";"
	if !strings.Contains(s, ";") && strings.Contains(s, "|") {
		sep = "|"
	}
	var skills []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// Fetch downloads and parses the roster from a URL.
func Fetch(ctx context.Context, url string) ([]Checker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch roster: unexpected status %s", resp.Status)
	}

	return Parse(resp.Body)
}

// LoadFile parses the roster from a local file.
func LoadFile(path string) ([]Checker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}
