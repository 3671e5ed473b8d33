// Package wind holds the shared horizontal wind velocity. It is a step
// function: a fresh uniform integer is drawn every interval with no blending.
package wind

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"balloon-artillery/internal/core"
)

// ErrInvalidConfig is returned for a negative bound or a non-positive interval.
var ErrInvalidConfig = errors.New("wind: invalid config")

// Source draws integers in [0, n). *core.RNG and *rand.Rand satisfy it.
type Source interface {
	IntN(n int) int
}

// Config bounds the wind and sets its cadence.
type Config struct {
	MaxVelocity int           `mapstructure:"max_velocity"`
	Interval    time.Duration `mapstructure:"interval"`
}

// DefaultConfig returns the standard ±11 wind changing every two seconds.
func DefaultConfig() Config {
	return Config{MaxVelocity: 11, Interval: 2 * time.Second}
}

// Model is the wind state. Negative velocity blows left.
type Model struct {
	cfg      Config
	src      Source
	log      zerolog.Logger
	velocity int
	next     core.Deadline
}

// New validates cfg and returns a calm model that changes on its first Step.
func New(cfg Config, src Source, log zerolog.Logger) (*Model, error) {
	if cfg.MaxVelocity < 0 || cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: max=%d interval=%v", ErrInvalidConfig, cfg.MaxVelocity, cfg.Interval)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidConfig)
	}
	return &Model{cfg: cfg, src: src, log: log.With().Str("component", "wind").Logger()}, nil
}

// Velocity returns the current wind.
func (m *Model) Velocity() int { return m.velocity }

// Config returns the bounds and cadence.
func (m *Model) Config() Config { return m.cfg }

// Step draws a new velocity when the previous one has been held for the full
// interval. It reports whether the wind changed this tick.
func (m *Model) Step(tick core.Tick) bool {
	if m.next.Blocking(tick.Now) {
		return false
	}
	prev := m.velocity
	m.velocity = m.src.IntN(2*m.cfg.MaxVelocity+1) - m.cfg.MaxVelocity
	m.next.Arm(tick.Now, m.cfg.Interval)
	m.log.Debug().Int("from", prev).Int("to", m.velocity).Msg("wind changed")
	return true
}

// Reset calms the wind and schedules a change on the next Step.
func (m *Model) Reset() {
	m.velocity = 0
	m.next.Clear()
}
