// Package service orchestrates the register assistant: it fetches register
// issues, extracts certificate identifiers, computes the next free one and
// aggregates register statistics.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codecheckers/regclerk/internal/constants"
	"github.com/codecheckers/regclerk/internal/identifier"
	"github.com/codecheckers/regclerk/internal/log"
	"github.com/codecheckers/regclerk/internal/model"
	"github.com/codecheckers/regclerk/internal/registry"
	"github.com/codecheckers/regclerk/internal/stats"
)

// ErrInFlight is returned when a computation is requested while another one
// is still running. The request is dropped, not queued; callers retry once
// the running computation finishes.
var ErrInFlight = errors.New("a register computation is already in progress")

// IssueSource fetches register issues. *github.Client satisfies it; tests
// substitute a fake.
type IssueSource interface {
	FetchAllIssues(ctx context.Context, owner, repo string) ([]model.Issue, error)
	FetchRecentIssues(ctx context.Context, owner, repo string, limit int) ([]model.Issue, error)
}

// Result is the outcome of one full register computation.
type Result struct {
	Register   registry.Registry         `json:"register"`
	Next       identifier.NextResult     `json:"next"`
	Issued     []identifier.Identifier   `json:"issuedIdentifiers"`
	Skipped    []identifier.SkippedRange `json:"skippedRanges,omitempty"`
	Stats      stats.Summary             `json:"stats"`
	Recent     []model.Issue             `json:"recentIssues,omitempty"`
	Collisions []model.Issue             `json:"collisions,omitempty"`
}

// Stage names reported through ProgressFunc.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageCompute = "compute"
)

// ProgressFunc is called as computation stages start (done=false) and finish
// (done=true). count carries the stage's item count on completion.
type ProgressFunc func(stage string, done bool, count int)

// Options configures the assistant.
type Options struct {
	// Year the next identifier is computed for; zero means the current year.
	Year int
	// Padding overrides the minimum digit width of the number component.
	Padding int
	// RequireLabel gates extraction to issues carrying the marker label.
	RequireLabel string
	// RecentLimit bounds the recent-issue fetch used for collision warnings.
	RecentLimit int
	// Floors overrides the register's per-year number floors.
	Floors map[int]int
	// Progress reports stage transitions. Nil means no reporting.
	Progress ProgressFunc
	// Now is the clock, injectable for tests. Nil means time.Now.
	Now func() time.Time
}

// Assistant coordinates fetching, extraction and calculation for one
// register. It is safe for concurrent use; overlapping computations are
// rejected with ErrInFlight rather than queued.
type Assistant struct {
	source   IssueSource
	policy   registry.Policy
	opts     Options
	inFlight atomic.Bool
}

// New creates an assistant for the register selected by key.
func New(source IssueSource, key registry.Key, opts Options) (*Assistant, error) {
	policy, err := registry.PolicyFor(key)
	if err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = constants.RecentIssueLimit
	}
	for year, n := range opts.Floors {
		if n > 0 {
			policy.MinimumNumberForYear[year] = n
		}
	}
	return &Assistant{source: source, policy: policy, opts: opts}, nil
}

func (a *Assistant) progress(stage string, done bool, count int) {
	if a.opts.Progress != nil {
		a.opts.Progress(stage, done, count)
	}
}

// Register returns the register this assistant reads.
func (a *Assistant) Register() registry.Registry {
	return a.policy.Registry
}

// NextIdentifier runs one full computation: fetch the complete issue history
// and the most recently updated issues in parallel, extract identifiers,
// compute the next free one and aggregate statistics. A second call while
// one is running returns ErrInFlight; the guard resets on error so a retry
// works.
func (a *Assistant) NextIdentifier(ctx context.Context) (*Result, error) {
	if !a.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer a.inFlight.Store(false)

	reg := a.policy.Registry
	log.Debug("computing next identifier", "register", reg.FullName())

	a.progress(StageFetch, false, 0)

	var all, recent []model.Issue
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		issues, err := a.source.FetchAllIssues(gctx, reg.Owner, reg.Repo)
		if err != nil {
			return fmt.Errorf("failed to fetch register issues: %w", err)
		}
		all = issues
		return nil
	})

	g.Go(func() error {
		issues, err := a.source.FetchRecentIssues(gctx, reg.Owner, reg.Repo, a.opts.RecentLimit)
		if err != nil {
			return fmt.Errorf("failed to fetch recent issues: %w", err)
		}
		recent = issues
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.progress(StageFetch, true, len(all))

	a.progress(StageExtract, false, 0)
	issued, skipped := identifier.Extract(all, identifier.ExtractOptions{
		RequireLabel: a.opts.RequireLabel,
	})
	a.progress(StageExtract, true, len(issued))

	a.progress(StageCompute, false, 0)
	year := a.opts.Year
	if year == 0 {
		year = a.opts.Now().Year()
	}
	next := identifier.Compute(issued, year, a.policy.Floor(year), a.opts.Padding)

	result := &Result{
		Register: reg,
		Next:     next,
		Issued:   issued,
		Skipped:  skipped,
		Stats:    stats.Aggregate(all),
		Recent:   recent,
	}
	result.Collisions = findCollisions(recent, next.Identifier)
	for _, c := range result.Collisions {
		log.Warn("proposed identifier already appears in a recent issue title",
			"identifier", next.Identifier, "issue", c.Number, "title", c.Title)
	}

	a.progress(StageCompute, true, next.Number)

	log.Debug("computation finished",
		"next", next.Identifier,
		"issued", len(issued),
		"skippedRanges", len(skipped))
	return result, nil
}

// findCollisions returns the recent issues whose titles already contain the
// proposed identifier as a standalone token. A non-empty result usually
// means someone assigned the number by hand while the register history was
// being fetched.
func findCollisions(recent []model.Issue, proposed string) []model.Issue {
	// Word boundaries keep a longer number like 2025-0070 from matching a
	// proposed 2025-007.
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(proposed) + `\b`)
	var collisions []model.Issue
	for _, issue := range recent {
		if re.MatchString(issue.Title) {
			collisions = append(collisions, issue)
		}
	}
	return collisions
}
