package balloon

import (
	"time"

	"balloon-artillery/internal/core"
	"balloon-artillery/internal/geom"
	"balloon-artillery/internal/terrain"
)

// Source draws uniform samples in [0, 1).
type Source interface {
	Float64() float64
}

// SpawnConfig sets the release cadence and how far in from the water edges
// balloons may appear, as a fraction of the inner mountain width.
type SpawnConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Inset    float64       `mapstructure:"inset"`
}

// DefaultSpawnConfig releases one balloon per second from the middle of the
// lake.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{Interval: time.Second, Inset: 0.9}
}

// Spawner decides when and where the next balloon rises out of the water.
type Spawner struct {
	interval time.Duration
	minX     float64
	maxX     float64
	y        float64
	src      Source
	next     core.Deadline
}

// NewSpawner places the spawn band over the lake described by g.
func NewSpawner(cfg SpawnConfig, g terrain.Geometry, src Source) *Spawner {
	inset := float64(g.InnerMountainWidth) * cfg.Inset
	return &Spawner{
		interval: cfg.Interval,
		minX:     float64(g.WaterLeftX) + inset,
		maxX:     float64(g.WaterRightX) - inset,
		y:        float64(g.WaterTopY),
		src:      src,
	}
}

// Band returns the horizontal spawn range and the spawn height.
func (s *Spawner) Band() (minX, maxX, y float64) { return s.minX, s.maxX, s.y }

// Step returns a spawn point when the interval since the last release has
// passed. The first call always releases.
func (s *Spawner) Step(tick core.Tick) (geom.Vec2, bool) {
	if s.next.Blocking(tick.Now) {
		return geom.Vec2{}, false
	}
	s.next.Arm(tick.Now, s.interval)
	x := s.minX + s.src.Float64()*(s.maxX-s.minX)
	return geom.V(x, s.y), true
}

// Reset makes the next Step release immediately.
func (s *Spawner) Reset() { s.next.Clear() }
