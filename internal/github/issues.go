package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	gogithub "github.com/google/go-github/v57/github"

	"github.com/codecheckers/regclerk/internal/constants"
	"github.com/codecheckers/regclerk/internal/httpcache"
	"github.com/codecheckers/regclerk/internal/log"
	"github.com/codecheckers/regclerk/internal/model"
)

// FetchAllIssues pages through the issue listing endpoint for one register
// repository, requesting both open and closed issues at a fixed page size,
// starting at page 1 and incrementing until a page returns zero items.
//
// Termination is additionally bounded at MaxIssuePages; when the bound is
// hit, the issues collected so far are returned rather than failing. Pages
// are fetched sequentially, each cached under its own request signature, so
// a repeated call within the cache TTL consumes no quota at all.
func (c *Client) FetchAllIssues(ctx context.Context, owner, repo string) ([]model.Issue, error) {
	var all []model.Issue

	for page := 1; ; page++ {
		if page > constants.MaxIssuePages {
			log.Warn("pagination bound hit, returning issues collected so far",
				"repo", owner+"/"+repo, "pages", constants.MaxIssuePages, "issues", len(all))
			return all, nil
		}

		log.Progress("Fetching issues: page %d (%d so far)...", page, len(all))

		pg, err := c.listIssuesPage(ctx, owner, repo, page)
		if err != nil {
			return nil, err
		}
		// Termination goes by the raw upstream item count, not the converted
		// count: a page holding only pull requests converts to zero issues
		// but is not the last page.
		if pg.RawCount == 0 {
			break
		}
		all = append(all, pg.Issues...)
	}

	log.ProgressDone()
	log.Info("fetched issues", "repo", owner+"/"+repo, "count", len(all))
	return all, nil
}

// issuesPage is the cached payload for one page of the issue listing. The
// raw upstream item count is kept alongside the converted issues so that
// pagination keeps going past PR-only pages even when served from cache.
type issuesPage struct {
	Issues   []model.Issue `json:"issues"`
	RawCount int           `json:"rawCount"`
}

// listIssuesPage fetches one page of the issue listing through the cache.
func (c *Client) listIssuesPage(ctx context.Context, owner, repo string, page int) (issuesPage, error) {
	sig := httpcache.Signature(fmt.Sprintf("/repos/%s/%s/issues", owner, repo), map[string]string{
		"state":    "all",
		"per_page": strconv.Itoa(constants.IssuePageSize),
		"page":     strconv.Itoa(page),
	})

	data, err := c.cache.GetOrFetch(sig, func() (json.RawMessage, error) {
		opts := &gogithub.IssueListByRepoOptions{
			State: "all",
			ListOptions: gogithub.ListOptions{
				Page:    page,
				PerPage: constants.IssuePageSize,
			},
		}
		ghIssues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues for %s/%s page %d: %w", owner, repo, page, wrapRateLimit(err))
		}
		c.observeRate(resp)
		return json.Marshal(issuesPage{Issues: convertIssues(ghIssues), RawCount: len(ghIssues)})
	})
	if err != nil {
		return issuesPage{}, err
	}

	var pg issuesPage
	if err := json.Unmarshal(data, &pg); err != nil {
		return issuesPage{}, fmt.Errorf("failed to decode cached issues page: %w", err)
	}
	return pg, nil
}

// FetchRecentIssues fetches a single bounded page of issues sorted by most
// recently updated. It backs the identifier-collision warning; limit is a
// small count, not a page-size multiple of the main fetch.
func (c *Client) FetchRecentIssues(ctx context.Context, owner, repo string, limit int) ([]model.Issue, error) {
	if limit <= 0 {
		limit = constants.RecentIssueLimit
	}

	sig := httpcache.Signature(fmt.Sprintf("/repos/%s/%s/issues", owner, repo), map[string]string{
		"state":     "all",
		"sort":      "updated",
		"direction": "desc",
		"per_page":  strconv.Itoa(limit),
	})

	data, err := c.cache.GetOrFetch(sig, func() (json.RawMessage, error) {
		opts := &gogithub.IssueListByRepoOptions{
			State:     "all",
			Sort:      "updated",
			Direction: "desc",
			ListOptions: gogithub.ListOptions{
				Page:    1,
				PerPage: limit,
			},
		}
		ghIssues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list recent issues for %s/%s: %w", owner, repo, wrapRateLimit(err))
		}
		c.observeRate(resp)
		return json.Marshal(convertIssues(ghIssues))
	})
	if err != nil {
		return nil, err
	}

	var issues []model.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("failed to decode cached recent issues: %w", err)
	}
	return issues, nil
}

// ListLabels fetches the repository's labels for display.
func (c *Client) ListLabels(ctx context.Context, owner, repo string) ([]model.Label, error) {
	sig := httpcache.Signature(fmt.Sprintf("/repos/%s/%s/labels", owner, repo), map[string]string{
		"per_page": strconv.Itoa(constants.IssuePageSize),
	})

	data, err := c.cache.GetOrFetch(sig, func() (json.RawMessage, error) {
		var all []model.Label
		opts := &gogithub.ListOptions{PerPage: constants.IssuePageSize}
		for {
			ghLabels, resp, err := c.gh.Issues.ListLabels(ctx, owner, repo, opts)
			if err != nil {
				return nil, fmt.Errorf("failed to list labels for %s/%s: %w", owner, repo, wrapRateLimit(err))
			}
			c.observeRate(resp)
			for _, l := range ghLabels {
				all = append(all, model.Label{Name: l.GetName(), Color: l.GetColor()})
			}
			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return json.Marshal(all)
	})
	if err != nil {
		return nil, err
	}

	var labels []model.Label
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("failed to decode cached labels: %w", err)
	}
	return labels, nil
}

// observeRate records advisory rate limit headers from a response.
func (c *Client) observeRate(resp *gogithub.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		// No rate limit headers present (e.g. proxies, test servers).
		return
	}
	globalRateLimitState.Update(resp.Rate.Remaining, resp.Rate.Limit, resp.Rate.Reset.Time)
}

// convertIssues maps GitHub API issues to register issues. Pull requests
// share the issue listing endpoint and are filtered out.
func convertIssues(ghIssues []*gogithub.Issue) []model.Issue {
	issues := make([]model.Issue, 0, len(ghIssues))
	for _, gi := range ghIssues {
		if gi.IsPullRequest() {
			continue
		}
		issue := model.Issue{
			Number:    gi.GetNumber(),
			Title:     gi.GetTitle(),
			State:     gi.GetState(),
			HTMLURL:   gi.GetHTMLURL(),
			UpdatedAt: gi.GetUpdatedAt().Time,
		}
		for _, l := range gi.Labels {
			issue.Labels = append(issue.Labels, model.Label{
				Name:  l.GetName(),
				Color: l.GetColor(),
			})
		}
		issues = append(issues, issue)
	}
	return issues
}
