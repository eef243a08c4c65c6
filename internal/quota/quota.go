// Package quota bounds the number of clips emitted across one run.
package quota

import "sync"

// Allocator tracks the remaining clip capacity for a single run. The cap
// is global across all videos and channels. Safe for concurrent use.
type Allocator struct {
	mu        sync.Mutex
	remaining int
	cap       int
}

// New returns an allocator with n units of capacity. Negative n is
// treated as zero.
func New(n int) *Allocator {
	if n < 0 {
		n = 0
	}
	return &Allocator{remaining: n, cap: n}
}

// Remaining reports how many clips may still be emitted.
func (a *Allocator) Remaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remaining
}

// TryConsume reserves n units if available and reports whether the
// reservation succeeded. n <= 0 always succeeds without consuming.
func (a *Allocator) TryConsume(n int) bool {
	if n <= 0 {
		return true
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.remaining < n {
		return false
	}
	a.remaining -= n
	return true
}

// Release returns n previously reserved units, e.g. when an upload
// failed after its capacity was reserved. Capacity never grows past the
// configured cap.
func (a *Allocator) Release(n int) {
	if n <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.remaining += n
	if a.remaining > a.cap {
		a.remaining = a.cap
	}
}
