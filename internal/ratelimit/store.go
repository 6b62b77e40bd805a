// Package ratelimit implements a fixed-window request counter keyed by
// client identifier.
//
// Each route class owns one Store. A window is {start, count}: the
// first request in a fresh or elapsed window admits with count=1; later
// requests increment the count and are rejected once it would exceed
// the configured limit. The count resets at fixed window boundaries
// rather than sliding.
//
// Counters are in-memory and reset on process restart; durable or
// distributed limiting is out of scope.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of an admission check along with the
// values needed for RateLimit-* response headers.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

type window struct {
	start time.Time
	count int
}

// Store holds fixed-window counters for one route class.
//
// All state is guarded by mu: the read-increment-compare-write on a
// counter must be one indivisible step with respect to concurrent
// requests from the same client.
type Store struct {
	mu        sync.Mutex
	windows   map[string]*window
	duration  time.Duration
	max       int
	lastSweep time.Time

	// now is replaceable in tests to step through window boundaries.
	now func() time.Time
}

// NewStore creates a Store admitting up to max requests per key within
// each window of the given duration.
func NewStore(duration time.Duration, max int) *Store {
	return &Store{
		windows:  make(map[string]*window),
		duration: duration,
		max:      max,
		now:      time.Now,
	}
}

// Allow records one request for key and reports whether it is admitted.
//
// If no window exists for the key, or the current one has elapsed, a
// new window starts with count=1 and the request is admitted.
// Otherwise the count increments; the request is rejected when the
// post-increment count exceeds the limit. A rejected request leaves the
// count clamped at the limit so counters never exceed it.
func (s *Store) Allow(key string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= s.duration {
		w = &window{start: now, count: 1}
		s.windows[key] = w
		return Result{
			Allowed:   true,
			Limit:     s.max,
			Remaining: s.max - 1,
			Reset:     w.start.Add(s.duration),
		}
	}

	reset := w.start.Add(s.duration)
	if w.count+1 > s.max {
		return Result{
			Allowed:   false,
			Limit:     s.max,
			Remaining: 0,
			Reset:     reset,
		}
	}

	w.count++
	return Result{
		Allowed:   true,
		Limit:     s.max,
		Remaining: s.max - w.count,
		Reset:     reset,
	}
}

// Decrement un-counts one previously admitted request for key.
//
// The auth route class uses this to exclude successful attempts from
// its budget. Decrementing a missing or elapsed window is a no-op, and
// counts never go below zero.
func (s *Store) Decrement(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || s.now().Sub(w.start) >= s.duration {
		return
	}
	if w.count > 0 {
		w.count--
	}
}

// Len reports the number of tracked keys. Used by tests and the sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// sweepLocked drops elapsed windows at most once per window duration,
// bounding memory under churning client keys. Caller holds mu.
func (s *Store) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.duration {
		return
	}
	s.lastSweep = now

	for key, w := range s.windows {
		if now.Sub(w.start) >= s.duration {
			delete(s.windows, key)
		}
	}
}
