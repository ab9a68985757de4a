package clock

import (
	"sync/atomic"
	"time"
)

// Clock is the monotonic millisecond time source shared by every cooldown check.
type Clock interface {
	NowMillis() int64
}

// System measures time from its creation using the monotonic clock reading
// carried by time.Time, so wall clock adjustments never move it backwards.
type System struct {
	start time.Time
}

// NewSystem creates a clock whose zero is now.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// NowMillis returns milliseconds elapsed since the clock was created.
func (s *System) NowMillis() int64 {
	return time.Since(s.start).Milliseconds()
}

// Manual is a clock advanced explicitly by the caller.
// Safe for concurrent use.
type Manual struct {
	now atomic.Int64
}

// NewManual creates a manual clock set to start.
func NewManual(start int64) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

// NowMillis returns the current manual time.
func (m *Manual) NowMillis() int64 {
	return m.now.Load()
}

// Advance moves the clock forward by d milliseconds and returns the new time.
func (m *Manual) Advance(d int64) int64 {
	return m.now.Add(d)
}

// Set jumps the clock to t.
func (m *Manual) Set(t int64) {
	m.now.Store(t)
}
