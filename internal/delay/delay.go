// Package delay provides a thread-safe bounded random source used to
// jitter simulated response latency.
package delay

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Source draws bounded random integers from a mutex-guarded generator.
// A Source owns its lock from construction and is safe for concurrent
// use by any number of in-flight requests.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Source seeded from the current time.
func New() *Source {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a deterministic Source. Useful in tests.
func NewWithSeed(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a random integer in [min, max). If max <= min it
// returns min. The lock is held only for the draw, never across any
// sleep.
func (s *Source) Next(min, max int) int {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min)
}

// Sleep blocks for a random duration in [min, max) or until ctx is
// cancelled, whichever comes first. A non-positive duration returns
// immediately.
func (s *Source) Sleep(ctx context.Context, min, max time.Duration) error {
	d := time.Duration(s.Next(int(min), int(max)))
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
