package audit

import "sync/atomic"

// Clock is a monotonic logical clock for decision ordering. Each call
// to Next returns a unique, strictly increasing sequence number.
//
// Safe for concurrent use, though the CLI paths that feed it are
// single-threaded.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
