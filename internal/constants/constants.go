// Package constants provides a centralized location for configuration
// values and magic numbers used throughout the regclerk application.
package constants

import "time"

// Identifier formatting constants
const (
	// IdentifierPadding is the zero-padding width of the number part of a
	// certificate identifier ("2025-007" has a padding of 3).
	IdentifierPadding = 3
)

// Pagination constants
const (
	// IssuePageSize is the fixed page size used when paging through the
	// issue listing endpoint.
	IssuePageSize = 100

	// MaxIssuePages bounds the pagination loop against a misbehaving or
	// unbounded upstream. When the bound is hit, the issues collected so
	// far are returned rather than failing.
	MaxIssuePages = 50

	// RecentIssueLimit is the default number of recently-updated issues
	// fetched for the identifier-collision warning.
	RecentIssueLimit = 10
)

// Rate limiting constants
const (
	// RateLimitLowWatermark is the remaining-quota threshold below which a
	// low-quota warning is logged. The warning is advisory only; requests
	// are never throttled by regclerk itself.
	RateLimitLowWatermark = 100
)

// Cache TTL constants
const (
	// ResponseCacheTTL is the maximum age of a cached API response before
	// it is treated as absent and re-fetched.
	ResponseCacheTTL = 5 * time.Minute
)

// TUI constants
const (
	// TUIUpdateInterval is the minimum time between TUI progress updates.
	TUIUpdateInterval = 50 * time.Millisecond

	// SearchDebounceQuiet is the quiet period after the last keystroke
	// before a roster search executes.
	SearchDebounceQuiet = 250 * time.Millisecond
)
