package game

import "time"

// Clock supplies the elapsed seconds for the next tick.
type Clock interface {
	Delta() float64
}

// FixedClock always reports the same step.
type FixedClock struct {
	Step float64
}

func (c FixedClock) Delta() float64 { return c.Step }

// WallClock reports real elapsed time since the previous call, capped at
// MaxStep so a stall does not turn into one huge tick. The first call
// returns 0.
type WallClock struct {
	MaxStep float64

	last time.Time
	now  func() time.Time
}

// NewWallClock creates a WallClock reading time.Now.
func NewWallClock(maxStep float64) *WallClock {
	return &WallClock{MaxStep: maxStep, now: time.Now}
}

func (c *WallClock) Delta() float64 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	d := t.Sub(c.last).Seconds()
	c.last = t
	if d < 0 {
		return 0
	}
	if c.MaxStep > 0 && d > c.MaxStep {
		return c.MaxStep
	}
	return d
}
