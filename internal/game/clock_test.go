package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	c := FixedClock{Step: 0.25}
	assert.Equal(t, 0.25, c.Delta())
	assert.Equal(t, 0.25, c.Delta())
}

func TestWallClock_FirstCallZeroThenCapped(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	c := NewWallClock(0.1)
	c.now = func() time.Time { return now }

	assert.Equal(t, 0.0, c.Delta(), "first call has no previous reading")

	now = now.Add(50 * time.Millisecond)
	assert.InDelta(t, 0.05, c.Delta(), 1e-9)

	now = now.Add(3 * time.Second)
	assert.Equal(t, 0.1, c.Delta(), "a stall is capped at MaxStep")

	now = now.Add(-time.Second)
	assert.Equal(t, 0.0, c.Delta(), "clock going backwards yields no time")
}
