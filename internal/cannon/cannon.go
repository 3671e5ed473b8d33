// Package cannon models the two player-controlled cannons: which one is
// selected, where each barrel points and how hard it fires.
package cannon

import (
	"time"

	"balloon-artillery/internal/core"
	"balloon-artillery/internal/geom"
	"balloon-artillery/internal/projectile"
)

// Side identifies a cannon.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Input is one tick of discrete control signals.
type Input struct {
	SwitchCannon     bool
	Fire             bool
	ElevateUp        bool
	ElevateDown      bool
	IncreaseVelocity bool
	DecreaseVelocity bool
}

// Any reports whether any signal is set.
func (in Input) Any() bool {
	return in.SwitchCannon || in.Fire || in.ElevateUp || in.ElevateDown || in.IncreaseVelocity || in.DecreaseVelocity
}

// Config holds the battery layout and control tunables.
type Config struct {
	LeftPivot    geom.Vec2 `mapstructure:"-"`
	RightPivot   geom.Vec2 `mapstructure:"-"`
	BarrelLength float64   `mapstructure:"barrel_length"`

	InitialElevation float64 `mapstructure:"initial_elevation"`
	MinElevation     float64 `mapstructure:"min_elevation"`
	MaxElevation     float64 `mapstructure:"max_elevation"`
	// ElevationRate is degrees per nominal tick.
	ElevationRate float64 `mapstructure:"elevation_rate"`

	InitialVelocity int `mapstructure:"initial_velocity"`
	MinVelocity     int `mapstructure:"min_velocity"`
	MaxVelocity     int `mapstructure:"max_velocity"`

	SwitchDelay   time.Duration `mapstructure:"switch_delay"`
	FireDelay     time.Duration `mapstructure:"fire_delay"`
	VelocityDelay time.Duration `mapstructure:"velocity_delay"`
}

// DefaultConfig returns the standard battery.
func DefaultConfig() Config {
	return Config{
		LeftPivot:        geom.V(35, 165),
		RightPivot:       geom.V(1060, 165),
		BarrelLength:     50,
		InitialElevation: 45,
		MinElevation:     0,
		MaxElevation:     90,
		ElevationRate:    0.5,
		InitialVelocity:  15,
		MinVelocity:      5,
		MaxVelocity:      30,
		SwitchDelay:      200 * time.Millisecond,
		FireDelay:        400 * time.Millisecond,
		VelocityDelay:    150 * time.Millisecond,
	}
}

// Cannon is the state of one barrel.
type Cannon struct {
	Side           Side
	Pivot          geom.Vec2
	Elevation      float64
	MuzzleVelocity int
}

// FiringAngle converts elevation into a world angle. The right cannon faces
// left, so its shots leave at 180 - elevation.
func (c Cannon) FiringAngle() float64 {
	if c.Side == Right {
		return 180 - c.Elevation
	}
	return c.Elevation
}

// Battery owns both cannons and the input cooldowns.
type Battery struct {
	cfg      Config
	cannons  [2]Cannon
	selected Side

	switchCD   core.Deadline
	fireCD     core.Deadline
	velocityCD core.Deadline
}

// NewBattery returns a battery with both cannons at their initial settings.
func NewBattery(cfg Config) *Battery {
	b := &Battery{cfg: cfg}
	b.Reset()
	return b
}

// Reset restores the initial settings and clears every cooldown.
func (b *Battery) Reset() {
	b.cannons[Left] = Cannon{Side: Left, Pivot: b.cfg.LeftPivot, Elevation: b.cfg.InitialElevation, MuzzleVelocity: b.cfg.InitialVelocity}
	b.cannons[Right] = Cannon{Side: Right, Pivot: b.cfg.RightPivot, Elevation: b.cfg.InitialElevation, MuzzleVelocity: b.cfg.InitialVelocity}
	b.selected = Left
	b.switchCD.Clear()
	b.fireCD.Clear()
	b.velocityCD.Clear()
}

// Config returns the battery configuration.
func (b *Battery) Config() Config { return b.cfg }

// Selected returns the side currently under control.
func (b *Battery) Selected() Side { return b.selected }

// Cannon returns a copy of one cannon's state.
func (b *Battery) Cannon(s Side) Cannon { return b.cannons[s] }

// Apply processes one tick of input. It returns a launch when the selected
// cannon fires.
func (b *Battery) Apply(in Input, tick core.Tick) (projectile.Launch, bool) {
	now := tick.Now

	if in.SwitchCannon && !b.switchCD.Blocking(now) {
		b.selected = 1 - b.selected
		b.switchCD.Arm(now, b.cfg.SwitchDelay)
	}

	var launch projectile.Launch
	fired := false
	if in.Fire && !b.fireCD.Blocking(now) {
		launch = b.launch()
		fired = true
		b.fireCD.Arm(now, b.cfg.FireDelay)
	}

	c := &b.cannons[b.selected]
	step := b.cfg.ElevationRate * tick.Factor
	switch {
	case in.ElevateUp:
		c.Elevation = min(c.Elevation+step, b.cfg.MaxElevation)
	case in.ElevateDown:
		c.Elevation = max(c.Elevation-step, b.cfg.MinElevation)
	}

	if (in.IncreaseVelocity || in.DecreaseVelocity) && !b.velocityCD.Blocking(now) {
		if in.IncreaseVelocity {
			c.MuzzleVelocity = min(c.MuzzleVelocity+1, b.cfg.MaxVelocity)
		} else {
			c.MuzzleVelocity = max(c.MuzzleVelocity-1, b.cfg.MinVelocity)
		}
		b.velocityCD.Arm(now, b.cfg.VelocityDelay)
	}
	return launch, fired
}

func (b *Battery) launch() projectile.Launch {
	c := b.cannons[b.selected]
	return projectile.Launch{
		Cannon:         int(c.Side),
		Pivot:          c.Pivot,
		AngleDeg:       c.FiringAngle(),
		MuzzleVelocity: float64(c.MuzzleVelocity),
		BarrelLength:   b.cfg.BarrelLength,
	}
}
