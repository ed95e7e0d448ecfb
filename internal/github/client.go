// Package github wraps the GitHub API for reading register issues and labels.
// All register reads are public, so the client works unauthenticated; a token
// only raises the rate limit quota.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	gogithub "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/codecheckers/regclerk/internal/httpcache"
)

// Client wraps the GitHub API client together with the response cache.
type Client struct {
	gh    *gogithub.Client
	cache *httpcache.Cache
}

// Option configures the client.
type Option func(*Client) error

// WithBaseURL points the client at a different API endpoint (used in tests
// and for GitHub Enterprise deployments).
func WithBaseURL(base string) Option {
	return func(c *Client) error {
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
			u.Path += "/"
		}
		c.gh.BaseURL = u
		return nil
	}
}

// NewClient creates a GitHub client. An empty token yields an unauthenticated
// client, which is sufficient for public register repositories.
func NewClient(token string, cache *httpcache.Cache, opts ...Option) (*Client, error) {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}

	c := &Client{
		gh:    gogithub.NewClient(hc),
		cache: cache,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Cache returns the response cache the client fetches through.
func (c *Client) Cache() *httpcache.Cache {
	return c.cache
}

// RawClient returns the underlying go-github client for advanced operations.
func (c *Client) RawClient() *gogithub.Client {
	return c.gh
}
