// Package httpcache provides a time-boxed in-memory memoization layer for
// GitHub API responses, keyed by request signature.
package httpcache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/codecheckers/regclerk/internal/constants"
	"github.com/codecheckers/regclerk/internal/log"
)

// FetchFunc performs the underlying network fetch on a cache miss.
type FetchFunc func() (json.RawMessage, error)

// entry holds a cached response with its fetch time.
type entry struct {
	data      json.RawMessage
	fetchedAt time.Time
}

// Cache memoizes API responses for a bounded time window. An entry is valid
// only while now - fetchedAt < ttl; expired entries are treated as absent and
// re-fetched, never served. A failed fetch is never stored.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time

	hits   int
	misses int
}

// New creates a cache with the given entry TTL. A non-positive TTL falls back
// to the default response cache TTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = constants.ResponseCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewWithClock creates a cache with an injectable clock (for testing).
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	c := New(ttl)
	c.now = now
	return c
}

// Signature builds a deterministic request signature from an endpoint path
// and its fetch options. Option keys are sorted so that two calls with the
// same options in different order produce the same signature, while calls
// with different pagination or header options never collide.
func Signature(endpoint string, opts map[string]string) string {
	if len(opts) == 0 {
		return endpoint
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(endpoint)
	for _, k := range keys {
		fmt.Fprintf(&sb, "&%s=%s", k, opts[k])
	}
	return sb.String()
}

// GetOrFetch returns the cached response for sig when present and unexpired,
// performing no network access. On a miss or expiry it calls fn, stores the
// result with the current timestamp and returns it. Errors from fn propagate
// unchanged and leave the cache untouched.
//
// The fetch runs outside the lock. Callers within one fetch episode request
// distinct signatures (one per page), so no two in-flight fetches interleave
// on the same key.
func (c *Cache) GetOrFetch(sig string, fn FetchFunc) (json.RawMessage, error) {
	c.mu.Lock()
	if e, ok := c.entries[sig]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.hits++
		c.mu.Unlock()
		log.Debug("cache hit", "signature", sig)
		return e.data, nil
	}
	c.misses++
	c.mu.Unlock()

	data, err := fn()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[sig] = entry{data: data, fetchedAt: c.now()}
	c.mu.Unlock()

	log.Debug("cache store", "signature", sig, "bytes", len(data))
	return data, nil
}

// Clear removes all cached entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.hits = 0
	c.misses = 0
}

// Stats reports the number of stored entries, how many are still valid, and
// the hit/miss counters since the last Clear.
func (c *Cache) Stats() (total, valid, hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, e := range c.entries {
		if now.Sub(e.fetchedAt) < c.ttl {
			valid++
		}
	}
	return len(c.entries), valid, c.hits, c.misses
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
