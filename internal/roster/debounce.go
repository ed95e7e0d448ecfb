package roster

import (
	"sync"
	"time"
)

// Debouncer runs a function only after a quiet period with no further
// schedules. Each Schedule call replaces any pending one, so a burst of
// keystrokes triggers a single search.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	gen     uint64
	pending bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Schedule arranges for fn to run after the quiet period, cancelling any
// previously scheduled function that has not fired yet.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.quiet, func() {
		fn()
		d.mu.Lock()
		// A newer Schedule may have raced with this firing; only the
		// latest generation clears the pending flag.
		if d.gen == gen {
			d.pending = false
		}
		d.mu.Unlock()
	})
}

// Pending reports whether a scheduled function has not completed yet. Once
// it returns false, any side effect of the last scheduled function has
// already happened.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending function.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
}
