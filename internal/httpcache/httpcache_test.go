package httpcache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		opts     map[string]string
		want     string
	}{
		{
			name:     "no options",
			endpoint: "/repos/o/r/issues",
			opts:     nil,
			want:     "/repos/o/r/issues",
		},
		{
			name:     "options sorted deterministically",
			endpoint: "/repos/o/r/issues",
			opts:     map[string]string{"state": "all", "page": "2"},
			want:     "/repos/o/r/issues&page=2&state=all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Signature(tt.endpoint, tt.opts)
			if got != tt.want {
				t.Errorf("Signature() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignatureDistinguishesPages(t *testing.T) {
	a := Signature("/repos/o/r/issues", map[string]string{"page": "1"})
	b := Signature("/repos/o/r/issues", map[string]string{"page": "2"})
	if a == b {
		t.Errorf("signatures for different pages collide: %q", a)
	}
}

func TestGetOrFetchCachesWithinTTL(t *testing.T) {
	now := time.Now()
	c := NewWithClock(time.Minute, func() time.Time { return now })

	calls := 0
	fn := func() (json.RawMessage, error) {
		calls++
		return json.RawMessage(`[1,2,3]`), nil
	}

	sig := Signature("/issues", map[string]string{"page": "1"})
	for i := 0; i < 3; i++ {
		data, err := c.GetOrFetch(sig, fn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `[1,2,3]` {
			t.Errorf("unexpected data: %s", data)
		}
	}

	if calls != 1 {
		t.Errorf("expected exactly one underlying fetch, got %d", calls)
	}
}

func TestGetOrFetchRefetchesAfterExpiry(t *testing.T) {
	now := time.Now()
	c := NewWithClock(time.Minute, func() time.Time { return now })

	calls := 0
	fn := func() (json.RawMessage, error) {
		calls++
		return json.RawMessage(`{}`), nil
	}

	if _, err := c.GetOrFetch("sig", fn); err != nil {
		t.Fatal(err)
	}

	// Advance past the TTL; the entry must be treated as absent.
	now = now.Add(time.Minute + time.Second)
	if _, err := c.GetOrFetch("sig", fn); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("expected refetch after expiry, got %d calls", calls)
	}
}

func TestGetOrFetchDoesNotStoreFailures(t *testing.T) {
	c := New(time.Minute)
	wantErr := errors.New("upstream unavailable")

	_, err := c.GetOrFetch("sig", func() (json.RawMessage, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected error to propagate unchanged, got %v", err)
	}

	// A later successful fetch must actually run.
	calls := 0
	if _, err := c.GetOrFetch("sig", func() (json.RawMessage, error) {
		calls++
		return json.RawMessage(`"ok"`), nil
	}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Error("expected fetch to run after earlier failure")
	}

	total, _, _, _ := c.Stats()
	if total != 1 {
		t.Errorf("expected 1 entry after failure then success, got %d", total)
	}
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	if _, err := c.GetOrFetch("sig", func() (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	}); err != nil {
		t.Fatal(err)
	}

	c.Clear()

	total, valid, hits, misses := c.Stats()
	if total != 0 || valid != 0 || hits != 0 || misses != 0 {
		t.Errorf("expected empty stats after clear, got total=%d valid=%d hits=%d misses=%d",
			total, valid, hits, misses)
	}
}

func TestStatsCountsValidEntries(t *testing.T) {
	now := time.Now()
	c := NewWithClock(time.Minute, func() time.Time { return now })

	for _, sig := range []string{"a", "b"} {
		if _, err := c.GetOrFetch(sig, func() (json.RawMessage, error) {
			return json.RawMessage(`1`), nil
		}); err != nil {
			t.Fatal(err)
		}
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.GetOrFetch("c", func() (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	}); err != nil {
		t.Fatal(err)
	}

	total, valid, _, _ := c.Stats()
	if total != 3 {
		t.Errorf("expected 3 entries, got %d", total)
	}
	if valid != 1 {
		t.Errorf("expected 1 valid entry, got %d", valid)
	}
}
