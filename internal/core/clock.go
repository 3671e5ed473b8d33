package core

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when a clock is built with a non-positive
// nominal tick interval.
var ErrInvalidInterval = errors.New("nominal tick interval must be positive")

// DefaultTickInterval is the nominal duration every per-tick rate constant is
// expressed against (50 ticks per second).
const DefaultTickInterval = 20 * time.Millisecond

// TimeFactor returns elapsed / nominal. Every per-tick delta in the simulation
// is multiplied by this value so motion does not depend on the real tick rate.
func TimeFactor(elapsed, nominal time.Duration) float64 {
	if nominal <= 0 || elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(nominal)
}

// Tick is the read-only view of the clock handed to each component.
type Tick struct {
	Seq     uint64
	Now     time.Duration
	Elapsed time.Duration
	Factor  float64
}

// Seconds returns the real elapsed duration of the tick in seconds.
func (t Tick) Seconds() float64 { return t.Elapsed.Seconds() }

// Clock accumulates simulated time one tick at a time.
type Clock struct {
	nominal time.Duration
	now     time.Duration
	seq     uint64
	last    Tick
}

// NewClock builds a clock around the given nominal tick interval.
func NewClock(nominal time.Duration) (*Clock, error) {
	if nominal <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Clock{nominal: nominal}, nil
}

// Nominal reports the nominal tick interval.
func (c *Clock) Nominal() time.Duration { return c.nominal }

// Advance moves simulated time forward by elapsed and returns the new tick.
// Negative durations are treated as zero.
func (c *Clock) Advance(elapsed time.Duration) Tick {
	if elapsed < 0 {
		elapsed = 0
	}
	c.now += elapsed
	c.seq++
	c.last = Tick{
		Seq:     c.seq,
		Now:     c.now,
		Elapsed: elapsed,
		Factor:  TimeFactor(elapsed, c.nominal),
	}
	return c.last
}

// Last returns the most recent tick.
func (c *Clock) Last() Tick { return c.last }

// Now returns the accumulated simulated time.
func (c *Clock) Now() time.Duration { return c.now }

// Reset rewinds the clock to zero.
func (c *Clock) Reset() {
	c.now = 0
	c.seq = 0
	c.last = Tick{}
}

// Deadline is a one-shot timestamp checked against simulated time. The zero
// value is disarmed.
type Deadline struct {
	at    time.Duration
	armed bool
}

// Arm schedules the deadline d after now, replacing any previous schedule.
func (d *Deadline) Arm(now, after time.Duration) {
	d.at = now + after
	d.armed = true
}

// Armed reports whether the deadline is pending.
func (d Deadline) Armed() bool { return d.armed }

// At reports the scheduled time. Meaningless when disarmed.
func (d Deadline) At() time.Duration { return d.at }

// Due reports whether the deadline is armed and has been reached.
func (d Deadline) Due(now time.Duration) bool {
	return d.armed && now >= d.at
}

// Blocking reports whether the deadline is armed and still in the future.
func (d Deadline) Blocking(now time.Duration) bool {
	return d.armed && now < d.at
}

// Fire disarms the deadline if it is due and reports whether it fired.
func (d *Deadline) Fire(now time.Duration) bool {
	if !d.Due(now) {
		return false
	}
	d.armed = false
	return true
}

// Clear disarms the deadline.
func (d *Deadline) Clear() {
	d.armed = false
}
