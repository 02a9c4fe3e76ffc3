package sim

import "time"

// Clock turns a wall-clock source into per-tick delta-times.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool

	// MaxStep caps a single delta so a stalled host cannot tunnel entities
	// through each other. Zero disables the cap.
	MaxStep time.Duration
}

func NewClock(maxStep time.Duration) *Clock {
	return NewClockFunc(time.Now, maxStep)
}

func NewClockFunc(now func() time.Time, maxStep time.Duration) *Clock {
	return &Clock{now: now, MaxStep: maxStep}
}

// Tick returns the time since the previous tick. The first tick after
// construction or Reset returns zero.
func (c *Clock) Tick() time.Duration {
	now := c.now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxStep > 0 && dt > c.MaxStep {
		dt = c.MaxStep
	}
	return dt
}

func (c *Clock) Reset() {
	c.started = false
}
