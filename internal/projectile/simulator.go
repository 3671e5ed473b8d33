package projectile

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"balloon-artillery/internal/arena"
	"balloon-artillery/internal/core"
	"balloon-artillery/internal/geom"
	"balloon-artillery/internal/terrain"
)

// Ground answers the collision queries a projectile needs. *terrain.Terrain
// implements it.
type Ground interface {
	GroundContains(x, y int) bool
	WaterContains(x, y int) bool
	SurfaceAt(x int) terrain.Surface
}

// Bounds is the play area a projectile may occupy. There is no ceiling.
type Bounds struct {
	MinX, MaxX, MinY float64
}

// EventKind tags what happened to a projectile during a tick.
type EventKind uint8

const (
	EventFired EventKind = iota
	EventBounced
	EventSettled
	EventDestroyed
)

func (k EventKind) String() string {
	switch k {
	case EventFired:
		return "fired"
	case EventBounced:
		return "bounced"
	case EventSettled:
		return "settled"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event is reported by Step for every state change.
type Event struct {
	ID     arena.ID
	Kind   EventKind
	Reason Reason
	Pos    geom.Vec2

	// SpeedBefore and SpeedAfter bracket a bounce.
	SpeedBefore float64
	SpeedAfter  float64
}

// Simulator owns the registry of live projectiles.
type Simulator struct {
	params Params
	ground Ground
	bounds Bounds
	log    zerolog.Logger

	live   *arena.Arena[Projectile]
	events []Event
}

// NewSimulator builds an empty simulator over ground.
func NewSimulator(params Params, ground Ground, bounds Bounds, log zerolog.Logger) *Simulator {
	return &Simulator{
		params: params,
		ground: ground,
		bounds: bounds,
		log:    log.With().Str("component", "projectile").Logger(),
		live:   arena.New[Projectile](),
	}
}

// Params returns the active tuning.
func (s *Simulator) Params() Params { return s.params }

// Fire spawns a projectile for l at simulated time now.
func (s *Simulator) Fire(l Launch, now time.Duration) arena.ID {
	p := New(l, s.params, now)
	id := s.live.Spawn(p)
	s.log.Debug().
		Uint64("id", uint64(id)).
		Int("cannon", l.Cannon).
		Float64("angle", l.AngleDeg).
		Float64("muzzle_velocity", l.MuzzleVelocity).
		Msg("fired")
	return id
}

// Get returns a live projectile.
func (s *Simulator) Get(id arena.ID) (*Projectile, bool) { return s.live.Get(id) }

// Len returns the number of live projectiles.
func (s *Simulator) Len() int { return s.live.Len() }

// Each visits every live projectile.
func (s *Simulator) Each(fn func(id arena.ID, p *Projectile)) { s.live.Each(fn) }

// Destroy removes id immediately. Repeated calls are no-ops.
func (s *Simulator) Destroy(id arena.ID) bool {
	p, ok := s.live.Get(id)
	if !ok {
		return false
	}
	s.destroy(id, p, ReasonRemoved)
	return true
}

// Compact prunes destroyed projectiles from the registry.
func (s *Simulator) Compact() int { return s.live.Compact() }

// Clear drops every projectile.
func (s *Simulator) Clear() { s.live.Clear() }

// Step advances every live projectile by one tick and returns the state
// changes it caused. The returned slice is reused by the next call.
func (s *Simulator) Step(tick core.Tick) []Event {
	s.events = s.events[:0]
	s.live.Each(func(id arena.ID, p *Projectile) {
		s.advance(id, p, tick)
	})
	return s.events
}

func (s *Simulator) advance(id arena.ID, p *Projectile, tick core.Tick) {
	now := tick.Now
	switch p.state {
	case Destroyed:
		return
	case Settling:
		if p.settle.Fire(now) {
			s.destroy(id, p, ReasonSettled)
			return
		}
	case Bouncing:
		if p.grace.Fire(now) {
			p.state = Flying
		}
	}

	if p.state != Settling {
		p.integrate(s.params.Gravity, tick.Factor)
	}
	if s.outOfBounds(p.pos) {
		s.destroy(id, p, ReasonOutOfBounds)
		return
	}

	pts := p.samples(s.params.CollisionRadius)
	if s.hits(pts, s.ground.WaterContains) {
		s.destroy(id, p, ReasonWater)
		return
	}
	if p.state == Flying && s.hits(pts, s.ground.GroundContains) {
		s.bounce(id, p, pts[0][0], tick)
	}
}

func (s *Simulator) outOfBounds(pos geom.Vec2) bool {
	r := float64(s.params.CollisionRadius)
	return pos.X > s.bounds.MaxX+r || pos.X < s.bounds.MinX-r || pos.Y < s.bounds.MinY-r
}

// hits reports whether any sample lies inside the layer. Samples outside the
// layer's columns are skipped rather than ending the scan.
func (s *Simulator) hits(pts [5][2]int, contains func(x, y int) bool) bool {
	for _, pt := range pts {
		if contains(pt[0], pt[1]) {
			return true
		}
	}
	return false
}

func (s *Simulator) bounce(id arena.ID, p *Projectile, x int, tick core.Tick) {
	before := p.vel.Len()
	p.vel = p.vel.Scale(s.params.Restitution)
	after := p.vel.Len()

	if before-after < s.params.StagnationThreshold*(1+tick.Factor) {
		p.stagnant++
	}
	if p.stagnant >= s.params.StagnationLimit {
		p.state = Settling
		p.grace.Clear()
		p.settle.Arm(tick.Now, s.params.SettleDelay)
		s.emit(Event{ID: id, Kind: EventSettled, Pos: p.pos, SpeedBefore: before, SpeedAfter: after})
		s.log.Debug().Uint64("id", uint64(id)).Int("bounces", p.bounces).Msg("settled")
		return
	}

	// Both slope branches send the ball upward. The falling side is kept
	// upward too so the ball stays in play.
	switch s.ground.SurfaceAt(x) {
	case terrain.SurfaceFlat:
		p.vel.Y = math.Abs(p.vel.Y)
	case terrain.SurfaceRising:
		p.vel.Y = math.Abs(p.vel.Y)
		p.vel.X = -math.Abs(p.vel.X)
	case terrain.SurfaceFalling:
		p.vel.Y = math.Abs(p.vel.Y)
		p.vel.X = math.Abs(p.vel.X)
	}

	p.bounces++
	p.state = Bouncing
	p.grace.Arm(tick.Now, s.params.BounceDelay)
	s.emit(Event{ID: id, Kind: EventBounced, Pos: p.pos, SpeedBefore: before, SpeedAfter: after})
}

func (s *Simulator) destroy(id arena.ID, p *Projectile, reason Reason) {
	if !s.live.Destroy(id) {
		return
	}
	p.state = Destroyed
	p.reason = reason
	p.grace.Clear()
	p.settle.Clear()
	s.emit(Event{ID: id, Kind: EventDestroyed, Reason: reason, Pos: p.pos})
	s.log.Debug().
		Uint64("id", uint64(id)).
		Stringer("reason", reason).
		Int("bounces", p.bounces).
		Msg("destroyed")
}

func (s *Simulator) emit(e Event) { s.events = append(s.events, e) }
