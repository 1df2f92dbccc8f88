package game

// TimerMode selects whether a Timer fires once or keeps cycling.
type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// timerEpsilon absorbs float drift from summing many small tick deltas, so a
// 2s timer fed twenty 0.1s ticks completes on the twentieth.
const timerEpsilon = 1e-9

// Timer counts elapsed seconds against a fixed duration.
// A Once timer stays finished until Reset; a Repeating timer wraps and
// carries any overshoot into its next cycle.
type Timer struct {
	duration     float64
	elapsed      float64
	mode         TimerMode
	finished     bool
	justFinished bool
}

// NewTimer creates a stopped-at-zero timer of the given duration in seconds.
func NewTimer(duration float64, mode TimerMode) Timer {
	if duration < 0 {
		duration = 0
	}
	return Timer{duration: duration, mode: mode}
}

// Tick advances the timer by dt seconds. JustFinished reports whether this
// call completed a cycle.
func (t *Timer) Tick(dt float64) {
	t.justFinished = false
	if dt < 0 {
		dt = 0
	}
	if t.mode == TimerOnce && t.finished {
		return
	}
	t.elapsed += dt
	if t.elapsed+timerEpsilon < t.duration {
		return
	}
	t.justFinished = true
	switch t.mode {
	case TimerRepeating:
		if t.duration <= 0 {
			t.elapsed = 0
			return
		}
		for t.elapsed+timerEpsilon >= t.duration {
			t.elapsed -= t.duration
		}
		if t.elapsed < 0 {
			t.elapsed = 0
		}
	default:
		t.elapsed = t.duration
		t.finished = true
	}
}

// JustFinished reports whether the most recent Tick completed the timer.
func (t *Timer) JustFinished() bool { return t.justFinished }

// Finished reports whether a Once timer has completed. Repeating timers are
// never in a finished state between ticks.
func (t *Timer) Finished() bool { return t.finished }

// Reset rewinds the timer to zero elapsed.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
}

// Duration returns the configured cycle length in seconds.
func (t *Timer) Duration() float64 { return t.duration }

// Elapsed returns seconds elapsed in the current cycle.
func (t *Timer) Elapsed() float64 { return t.elapsed }

// Remaining returns seconds left in the current cycle, never negative.
func (t *Timer) Remaining() float64 {
	r := t.duration - t.elapsed
	if r < 0 {
		return 0
	}
	return r
}

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}
	return clampf(t.elapsed/t.duration, 0, 1)
}
