package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock steps time manually so window boundaries are deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(window time.Duration, max int) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(window, max)
	s.now = clock.now
	return s, clock
}

func TestStore_AllowsUpToLimit(t *testing.T) {
	s, _ := newTestStore(15*time.Minute, 5)

	for i := 0; i < 5; i++ {
		res := s.Allow("1.2.3.4")
		if !res.Allowed {
			t.Fatalf("request %d should be admitted", i+1)
		}
		if want := 5 - (i + 1); res.Remaining != want {
			t.Fatalf("request %d: remaining = %d, want %d", i+1, res.Remaining, want)
		}
	}

	res := s.Allow("1.2.3.4")
	if res.Allowed {
		t.Fatalf("request 6 should be rejected")
	}
	if res.Remaining != 0 {
		t.Fatalf("rejected request: remaining = %d, want 0", res.Remaining)
	}
}

func TestStore_WindowRollover(t *testing.T) {
	s, clock := newTestStore(15*time.Minute, 2)

	s.Allow("k")
	s.Allow("k")
	if s.Allow("k").Allowed {
		t.Fatalf("third request in window should be rejected")
	}

	// First request after the window elapses is admitted regardless of
	// prior count.
	clock.advance(15 * time.Minute)
	res := s.Allow("k")
	if !res.Allowed {
		t.Fatalf("first request of new window should be admitted")
	}
	if res.Remaining != 1 {
		t.Fatalf("new window remaining = %d, want 1", res.Remaining)
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	s, _ := newTestStore(time.Minute, 1)

	if !s.Allow("a").Allowed {
		t.Fatalf("first request for a should pass")
	}
	if s.Allow("a").Allowed {
		t.Fatalf("second request for a should be rejected")
	}
	if !s.Allow("b").Allowed {
		t.Fatalf("exhausting a must not affect b")
	}
}

func TestStore_DecrementUncountsRequest(t *testing.T) {
	s, _ := newTestStore(time.Minute, 2)

	s.Allow("k")
	s.Allow("k")
	s.Decrement("k")

	if !s.Allow("k").Allowed {
		t.Fatalf("request should be admitted after decrement freed a slot")
	}
	if s.Allow("k").Allowed {
		t.Fatalf("budget should be exhausted again")
	}
}

func TestStore_DecrementNeverGoesNegative(t *testing.T) {
	s, _ := newTestStore(time.Minute, 2)

	s.Decrement("missing")
	s.Allow("k")
	s.Decrement("k")
	s.Decrement("k")
	s.Decrement("k")

	// A negative count would let more than max requests through.
	for i := 0; i < 2; i++ {
		if !s.Allow("k").Allowed {
			t.Fatalf("request %d should be admitted", i+1)
		}
	}
	if s.Allow("k").Allowed {
		t.Fatalf("request above limit should be rejected")
	}
}

func TestStore_DecrementAfterWindowElapsedIsNoop(t *testing.T) {
	s, clock := newTestStore(time.Minute, 1)

	s.Allow("k")
	clock.advance(time.Minute)
	s.Decrement("k")

	if !s.Allow("k").Allowed {
		t.Fatalf("fresh window should admit")
	}
	if s.Allow("k").Allowed {
		t.Fatalf("second request of fresh window should be rejected")
	}
}

func TestStore_ResetReportsWindowEnd(t *testing.T) {
	s, clock := newTestStore(15*time.Minute, 5)

	start := clock.now()
	res := s.Allow("k")
	if want := start.Add(15 * time.Minute); !res.Reset.Equal(want) {
		t.Fatalf("reset = %v, want %v", res.Reset, want)
	}

	// Reset stays pinned to the window start, not the latest request.
	clock.advance(5 * time.Minute)
	res = s.Allow("k")
	if want := start.Add(15 * time.Minute); !res.Reset.Equal(want) {
		t.Fatalf("reset after mid-window request = %v, want %v", res.Reset, want)
	}
}

func TestStore_SweepDropsElapsedWindows(t *testing.T) {
	s, clock := newTestStore(time.Minute, 5)

	for i := 0; i < 10; i++ {
		s.Allow(fmt.Sprintf("key-%d", i))
	}
	if s.Len() != 10 {
		t.Fatalf("len = %d, want 10", s.Len())
	}

	clock.advance(2 * time.Minute)
	s.Allow("fresh")

	if s.Len() != 1 {
		t.Fatalf("len after sweep = %d, want 1", s.Len())
	}
}

func TestStore_ConcurrentAllowNeverExceedsLimit(t *testing.T) {
	s, _ := newTestStore(time.Minute, 100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if s.Allow("shared").Allowed {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if admitted != 100 {
		t.Fatalf("admitted = %d, want exactly 100", admitted)
	}
}
