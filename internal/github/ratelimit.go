package github

import (
	"errors"
	"fmt"
	"sync"
	"time"

	gogithub "github.com/google/go-github/v57/github"

	"github.com/codecheckers/regclerk/internal/constants"
	"github.com/codecheckers/regclerk/internal/log"
)

// ErrRateLimited marks errors caused by an exhausted API quota, so callers
// can distinguish "wait and retry" from real failures.
var ErrRateLimited = errors.New("GitHub API rate limit exceeded")

// wrapRateLimit tags quota errors from go-github with ErrRateLimited. Other
// errors pass through unchanged.
func wrapRateLimit(err error) error {
	var rle *gogithub.RateLimitError
	var arle *gogithub.AbuseRateLimitError
	if errors.As(err, &rle) || errors.As(err, &arle) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return err
}

// RateLimitState tracks the advisory rate limit state reported in API
// response headers. It never blocks or throttles requests; callers must not
// assume rate limiting is enforced here.
type RateLimitState struct {
	mu        sync.RWMutex
	remaining int
	limit     int
	resetAt   time.Time
	warned    bool
}

var globalRateLimitState = &RateLimitState{}

// Update records the rate limit state from response headers and logs a
// low-quota warning once when remaining quota drops below the watermark.
func (s *RateLimitState) Update(remaining, limit int, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = remaining
	s.limit = limit
	s.resetAt = resetAt

	if remaining < constants.RateLimitLowWatermark {
		if !s.warned {
			s.warned = true
			log.Warn("GitHub API quota running low",
				"remaining", remaining, "limit", limit, "resetAt", resetAt)
		}
	} else {
		s.warned = false
	}
}

// Status returns the last observed rate limit state.
func (s *RateLimitState) Status() (remaining, limit int, resetAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remaining, s.limit, s.resetAt
}

// RateLimitStatus returns the global advisory rate limit state.
func RateLimitStatus() (remaining, limit int, resetAt time.Time) {
	return globalRateLimitState.Status()
}
