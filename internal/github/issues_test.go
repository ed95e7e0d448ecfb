package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codecheckers/regclerk/internal/httpcache"
)

// apiIssue mirrors the wire shape of the GitHub issue listing.
type apiIssue struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	State       string     `json:"state"`
	HTMLURL     string     `json:"html_url"`
	Labels      []apiLabel `json:"labels"`
	PullRequest *struct{}  `json:"pull_request,omitempty"`
}

type apiLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// newTestClient returns a client pointed at a test server serving the given
// handler, with a fresh cache.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("", httpcache.New(time.Minute), WithBaseURL(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

// pagedHandler serves issue pages from the given slices; pages beyond the
// slice are empty.
func pagedHandler(t *testing.T, requestCount *int32, pages ...[]apiIssue) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requestCount, 1)

		if got := r.URL.Query().Get("state"); got != "all" {
			t.Errorf("expected state=all, got %q", got)
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}

		var body []apiIssue
		if page <= len(pages) {
			body = pages[page-1]
		}
		if body == nil {
			body = []apiIssue{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
}

func TestFetchAllIssuesPaginates(t *testing.T) {
	var requests int32
	client, _ := newTestClient(t, pagedHandler(t, &requests,
		[]apiIssue{
			{Number: 1, Title: "Certificate 2025-001", State: "open"},
			{Number: 2, Title: "Certificate 2025-002", State: "closed"},
		},
		[]apiIssue{
			{Number: 3, Title: "Certificate 2025-003", State: "open"},
		},
	))

	issues, err := client.FetchAllIssues(context.Background(), "codecheckers", "register")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[2].Number != 3 {
		t.Errorf("pages concatenated out of order: %+v", issues)
	}
	// Two full-ish pages plus the terminating empty page.
	if requests != 3 {
		t.Errorf("expected 3 requests, got %d", requests)
	}
}

func TestFetchAllIssuesCachesPages(t *testing.T) {
	var requests int32
	client, _ := newTestClient(t, pagedHandler(t, &requests,
		[]apiIssue{{Number: 1, Title: "Certificate 2025-001", State: "open"}},
	))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.FetchAllIssues(ctx, "codecheckers", "register"); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}

	// The second call must be served entirely from the cache.
	if requests != 2 {
		t.Errorf("expected 2 requests (page 1 + empty page 2, once), got %d", requests)
	}
}

func TestFetchAllIssuesPageBound(t *testing.T) {
	var requests int32
	// Every page is full forever; the hard bound must terminate the loop and
	// return what was collected rather than failing.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		body := []apiIssue{{Number: page, Title: fmt.Sprintf("Certificate 2025-%03d", page), State: "open"}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
	client, _ := newTestClient(t, handler)

	issues, err := client.FetchAllIssues(context.Background(), "codecheckers", "register")
	if err != nil {
		t.Fatalf("expected bounded termination without error, got %v", err)
	}
	if len(issues) != 50 {
		t.Errorf("expected 50 issues (one per bounded page), got %d", len(issues))
	}
	if requests != 50 {
		t.Errorf("expected exactly 50 requests, got %d", requests)
	}
}

func TestFetchAllIssuesFiltersPullRequests(t *testing.T) {
	var requests int32
	client, _ := newTestClient(t, pagedHandler(t, &requests,
		[]apiIssue{
			{Number: 1, Title: "Certificate 2025-001", State: "open"},
			{Number: 2, Title: "Fix typo in README", State: "open", PullRequest: &struct{}{}},
		},
	))

	issues, err := client.FetchAllIssues(context.Background(), "codecheckers", "register")
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected PR to be filtered, got %d issues", len(issues))
	}
	if issues[0].Number != 1 {
		t.Errorf("wrong issue survived: %+v", issues[0])
	}
}

func TestFetchAllIssuesContinuesPastPullRequestOnlyPage(t *testing.T) {
	var requests int32
	// Page 1 converts to zero issues (all PRs) but is not the last page;
	// pagination must keep going and pick up the issue on page 2.
	client, _ := newTestClient(t, pagedHandler(t, &requests,
		[]apiIssue{
			{Number: 1, Title: "Fix typo in README", State: "open", PullRequest: &struct{}{}},
			{Number: 2, Title: "Update workflow", State: "closed", PullRequest: &struct{}{}},
		},
		[]apiIssue{
			{Number: 3, Title: "Certificate 2025-003", State: "open"},
		},
	))

	issues, err := client.FetchAllIssues(context.Background(), "codecheckers", "register")
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected the page-2 issue, got %d issues: %+v", len(issues), issues)
	}
	if issues[0].Number != 3 {
		t.Errorf("wrong issue: %+v", issues[0])
	}
	// Pages 1 and 2 plus the terminating empty page 3.
	if requests != 3 {
		t.Errorf("expected 3 requests, got %d", requests)
	}
}

func TestFetchAllIssuesUpstreamError(t *testing.T) {
	var requests int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	})
	client, _ := newTestClient(t, handler)

	ctx := context.Background()
	if _, err := client.FetchAllIssues(ctx, "codecheckers", "register"); err == nil {
		t.Fatal("expected error from failing upstream")
	}

	// Failures are not cached; a retry must hit the network again.
	if _, err := client.FetchAllIssues(ctx, "codecheckers", "register"); err == nil {
		t.Fatal("expected error on retry")
	}
	if requests != 2 {
		t.Errorf("expected 2 network attempts, got %d", requests)
	}
}

func TestFetchRecentIssues(t *testing.T) {
	var requests int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		q := r.URL.Query()
		if q.Get("sort") != "updated" || q.Get("direction") != "desc" {
			t.Errorf("expected sort=updated direction=desc, got %v", q)
		}
		if q.Get("per_page") != "5" {
			t.Errorf("expected per_page=5, got %q", q.Get("per_page"))
		}
		body := []apiIssue{
			{Number: 9, Title: "Certificate 2025-009", State: "open"},
			{Number: 8, Title: "Certificate 2025-008", State: "open"},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
	client, _ := newTestClient(t, handler)

	issues, err := client.FetchRecentIssues(context.Background(), "codecheckers", "register", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}

	// Distinct signature from the full fetch: cached independently.
	if _, err := client.FetchRecentIssues(context.Background(), "codecheckers", "register", 5); err != nil {
		t.Fatal(err)
	}
	if requests != 1 {
		t.Errorf("expected recent fetch to be cached, got %d requests", requests)
	}
}

func TestListLabels(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := []apiLabel{
			{Name: "id assigned", Color: "c2e0c6"},
			{Name: "development", Color: "d93f0b"},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
	client, _ := newTestClient(t, handler)

	labels, err := client.ListLabels(context.Background(), "codecheckers", "register")
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	if labels[0].Name != "id assigned" || labels[0].Color != "c2e0c6" {
		t.Errorf("unexpected label: %+v", labels[0])
	}
}
