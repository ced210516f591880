package core

import "time"

// Clock turns wall-clock ticks into frame deltas. It starts uninitialized; the
// first tick yields a zero delta and records the time, later ticks yield the
// seconds elapsed since the previous one.
type Clock struct {
	last    time.Time
	running bool
}

func (c *Clock) Running() bool { return c.running }

// Tick records now and returns the delta in seconds. Time going backwards
// yields zero.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.running {
		c.running = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset returns the clock to the uninitialized state.
func (c *Clock) Reset() {
	c.running = false
	c.last = time.Time{}
}
