package registry

import (
	"net/url"
	"strings"
)

// NewIssueURL builds the GitHub "new issue" web form URL pre-filled from the
// template. The actual write is performed by the operator's browser
// navigation; regclerk never calls a write endpoint.
func NewIssueURL(reg Registry, tpl Template) string {
	q := url.Values{}
	if tpl.Title != "" {
		q.Set("title", tpl.Title)
	}
	if tpl.Body != "" {
		q.Set("body", tpl.Body)
	}
	if len(tpl.Labels) > 0 {
		q.Set("labels", strings.Join(tpl.Labels, ","))
	}
	if len(tpl.Assignees) > 0 {
		q.Set("assignees", strings.Join(tpl.Assignees, ","))
	}

	u := url.URL{
		Scheme:   "https",
		Host:     "github.com",
		Path:     "/" + reg.Owner + "/" + reg.Repo + "/issues/new",
		RawQuery: q.Encode(),
	}
	return u.String()
}
