// Package projectile flies cannonballs under gravity, bounces them off the
// terrain and retires them once they settle, splash or leave the play area.
package projectile

import (
	"math"
	"time"

	"balloon-artillery/internal/core"
	"balloon-artillery/internal/geom"
)

// State is the lifecycle stage of a projectile.
type State uint8

const (
	Flying State = iota
	// Bouncing is Flying with the post-bounce grace period still running.
	Bouncing
	// Settling projectiles no longer move and are destroyed once their settle
	// deadline passes.
	Settling
	Destroyed
)

func (s State) String() string {
	switch s {
	case Flying:
		return "flying"
	case Bouncing:
		return "bouncing"
	case Settling:
		return "settling"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Reason records why a projectile was destroyed.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonWater
	ReasonSettled
	// ReasonRemoved covers destruction requested from outside the simulator.
	ReasonRemoved
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOutOfBounds:
		return "out_of_bounds"
	case ReasonWater:
		return "water"
	case ReasonSettled:
		return "settled"
	case ReasonRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Params are the per-nominal-tick ballistic constants.
type Params struct {
	Gravity        float64 `mapstructure:"gravity"`
	VelocityFactor float64 `mapstructure:"velocity_factor"`
	Restitution    float64 `mapstructure:"restitution"`

	BounceDelay time.Duration `mapstructure:"bounce_delay"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`

	// A bounce that sheds less than StagnationThreshold*(1+timeFactor) of
	// speed counts as stagnant; StagnationLimit stagnant bounces settle the
	// projectile.
	StagnationThreshold float64 `mapstructure:"stagnation_threshold"`
	StagnationLimit     int     `mapstructure:"stagnation_limit"`

	CollisionRadius int `mapstructure:"collision_radius"`
}

// DefaultParams returns the standard cannonball tuning.
func DefaultParams() Params {
	return Params{
		Gravity:             0.15,
		VelocityFactor:      0.51,
		Restitution:         0.75,
		BounceDelay:         40 * time.Millisecond,
		SettleDelay:         2 * time.Second,
		StagnationThreshold: 0.20,
		StagnationLimit:     3,
		CollisionRadius:     7,
	}
}

// Launch describes one shot leaving a barrel.
type Launch struct {
	Cannon         int
	Pivot          geom.Vec2
	AngleDeg       float64
	MuzzleVelocity float64
	BarrelLength   float64
}

// Projectile is one cannonball. Fields are owned by the Simulator; callers
// read them through the accessors.
type Projectile struct {
	pos    geom.Vec2
	vel    geom.Vec2
	angle  float64
	cannon int

	state  State
	reason Reason

	grace  core.Deadline
	settle core.Deadline

	stagnant int
	bounces  int
	born     time.Duration
}

// New places a projectile at the barrel mouth with the launch velocity split
// along the barrel angle.
func New(l Launch, p Params, now time.Duration) *Projectile {
	rad := l.AngleDeg * math.Pi / 180
	dir := geom.V(math.Cos(rad), math.Sin(rad))
	speed := l.MuzzleVelocity * p.VelocityFactor
	return &Projectile{
		pos:    l.Pivot.Add(dir.Scale(l.BarrelLength)),
		vel:    dir.Scale(speed),
		angle:  l.AngleDeg,
		cannon: l.Cannon,
		born:   now,
	}
}

func (p *Projectile) Position() geom.Vec2 { return p.pos }
func (p *Projectile) Velocity() geom.Vec2 { return p.vel }
func (p *Projectile) Angle() float64      { return p.angle }
func (p *Projectile) Cannon() int         { return p.cannon }
func (p *Projectile) State() State        { return p.state }
func (p *Projectile) Reason() Reason      { return p.reason }
func (p *Projectile) Bounces() int        { return p.bounces }
func (p *Projectile) Stagnant() int       { return p.stagnant }

// Born is the simulated time the projectile was fired.
func (p *Projectile) Born() time.Duration { return p.born }

// Speed is the net velocity magnitude.
func (p *Projectile) Speed() float64 { return p.vel.Len() }

// Live reports whether the projectile has not been destroyed.
func (p *Projectile) Live() bool { return p.state != Destroyed }

func (p *Projectile) integrate(gravity, factor float64) {
	p.vel.Y -= gravity * factor
	p.pos.X += p.vel.X * factor
	p.pos.Y += p.vel.Y * factor
}

// samples returns the center and the four axis-aligned rim points. Positions
// truncate toward zero.
func (p *Projectile) samples(radius int) [5][2]int {
	cx, cy := int(p.pos.X), int(p.pos.Y)
	return [5][2]int{
		{cx, cy},
		{cx - radius, cy},
		{cx + radius, cy},
		{cx, cy + radius},
		{cx, cy - radius},
	}
}
