package core

import "time"

// maxFrameElapsed caps a single measured frame so a stalled window (dragging,
// breakpoints) does not launch projectiles through the terrain.
const maxFrameElapsed = 250 * time.Millisecond

// FrameTimer measures the real time that passed between successive ticks of
// the host loop.
type FrameTimer struct {
	now     func() time.Time
	last    time.Time
	nominal time.Duration
}

// NewFrameTimer constructs a timer. The first measurement reports the nominal
// interval because there is no previous frame to compare against.
func NewFrameTimer(nominal time.Duration) *FrameTimer {
	if nominal <= 0 {
		nominal = DefaultTickInterval
	}
	return &FrameTimer{now: time.Now, nominal: nominal}
}

// SetNow overrides the time source, used by tests.
func (f *FrameTimer) SetNow(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	f.now = now
	f.last = time.Time{}
}

// Elapsed returns the time since the previous call, clamped to
// [0, maxFrameElapsed].
func (f *FrameTimer) Elapsed() time.Duration {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
		return f.nominal
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta < 0 {
		return 0
	}
	if delta > maxFrameElapsed {
		return maxFrameElapsed
	}
	return delta
}

// Restart forgets the previous frame, e.g. after unpausing.
func (f *FrameTimer) Restart() {
	f.last = time.Time{}
}
