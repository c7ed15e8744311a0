// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Manual returns a ManualClock initialized to the given time. Sleeps
// and After waits complete instantly, advancing the clock by the
// requested duration and recording it, so a sequential run that would
// pause for real in production finishes immediately in tests while
// the test can still assert exactly which pauses were requested.
func Manual(initial time.Time) *ManualClock {
	return &ManualClock{current: initial}
}

// ManualClock is a deterministic Clock for tests. It is safe for
// concurrent use, although the sequential engine never shares it
// across goroutines.
type ManualClock struct {
	mu      sync.Mutex
	current time.Time
	sleeps  []time.Duration
}

// Now returns the current fake time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Sleep advances the clock by d and records the pause.
func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(d)
}

// After advances the clock by d, records the pause, and returns a
// channel that already holds the new current time.
func (c *ManualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(d)
	ch := make(chan time.Time, 1)
	ch <- c.current
	return ch
}

func (c *ManualClock) record(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.current = c.current.Add(d)
	c.sleeps = append(c.sleeps, d)
}

// Sleeps returns every pause requested so far, in order.
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// Slept returns the total duration of all recorded pauses.
func (c *ManualClock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.sleeps {
		total += d
	}
	return total
}
