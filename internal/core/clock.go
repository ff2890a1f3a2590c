package core

import "time"

// maxFrameTime caps a single frame's contribution to the accumulator so a
// long stall does not trigger a burst of catch-up steps.
const maxFrameTime = 250 * time.Millisecond

// Clock converts wall-clock frame times into a whole number of fixed
// simulation steps. The platform calls Advance once per rendered frame and
// runs the returned number of steps of length Step().
type Clock struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	started     bool
}

// NewClock creates a clock for the given tick rate (ticks per second).
// A non-positive rate falls back to 60.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{step: time.Second / time.Duration(tickRate)}
}

// Step returns the fixed step duration.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Advance records a frame at now and returns how many fixed steps are due.
// The first call only establishes the reference time.
func (c *Clock) Advance(now time.Time) int {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}

	frame := now.Sub(c.last)
	c.last = now
	if frame < 0 {
		frame = 0
	}
	if frame > maxFrameTime {
		frame = maxFrameTime
	}

	c.accumulator += frame
	steps := 0
	for c.accumulator >= c.step {
		c.accumulator -= c.step
		steps++
	}
	return steps
}

// Reset forgets the reference time and any accumulated remainder.
func (c *Clock) Reset() {
	c.started = false
	c.accumulator = 0
}
