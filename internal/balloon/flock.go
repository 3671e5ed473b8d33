package balloon

import (
	"time"

	"github.com/rs/zerolog"

	"balloon-artillery/internal/arena"
	"balloon-artillery/internal/core"
	"balloon-artillery/internal/geom"
)

// LineKind selects which polyline of a balloon a sink update refers to.
type LineKind uint8

const (
	LineBody LineKind = iota
	LineString
)

func (k LineKind) String() string {
	if k == LineString {
		return "string"
	}
	return "body"
}

// LineSink receives balloon outlines for drawing. Body outlines are closed
// loops; strings are open.
type LineSink interface {
	SetLinePoints(id arena.ID, kind LineKind, pts []geom.Vec2)
	DropLines(id arena.ID)
}

// Fate is how a balloon left the flock.
type Fate uint8

const (
	Alive Fate = iota
	Popped
	Escaped
)

func (f Fate) String() string {
	switch f {
	case Popped:
		return "popped"
	case Escaped:
		return "escaped"
	default:
		return "alive"
	}
}

// Env is everything a balloon reads during a tick.
type Env struct {
	Tick core.Tick
	// DT is the Verlet step in seconds.
	DT float64

	Wind      int
	WindFloor float64
	Bounds    Bounds

	// Projectiles must only hold live projectiles.
	Projectiles []Projectile
}

// NewEnv fills DT from the tick factor and the nominal interval.
func NewEnv(tick core.Tick, nominal time.Duration) Env {
	return Env{Tick: tick, DT: tick.Factor * nominal.Seconds()}
}

// Event reports a balloon entering or leaving the flock.
type Event struct {
	ID   arena.ID
	Fate Fate
	Pos  geom.Vec2
}

// Flock owns every live balloon.
type Flock struct {
	params Params
	log    zerolog.Logger
	live   *arena.Arena[Balloon]
	events []Event
}

// NewFlock returns an empty flock whose balloons share params.
func NewFlock(params Params, log zerolog.Logger) *Flock {
	return &Flock{
		params: params,
		log:    log.With().Str("component", "balloon").Logger(),
		live:   arena.New[Balloon](),
	}
}

// Params returns the shared balloon constants.
func (f *Flock) Params() Params { return f.params }

// Spawn releases a balloon whose bottom vertex is at at.
func (f *Flock) Spawn(at geom.Vec2) arena.ID {
	id := f.live.Spawn(New(f.params, at))
	f.log.Debug().Uint64("id", uint64(id)).Float64("x", at.X).Float64("y", at.Y).Msg("spawned")
	return id
}

// Get returns a live balloon.
func (f *Flock) Get(id arena.ID) (*Balloon, bool) { return f.live.Get(id) }

// Len returns the number of live balloons.
func (f *Flock) Len() int { return f.live.Len() }

// Each visits every live balloon.
func (f *Flock) Each(fn func(id arena.ID, b *Balloon)) { f.live.Each(fn) }

// Compact prunes popped and escaped balloons.
func (f *Flock) Compact() int { return f.live.Compact() }

// Clear drops every balloon.
func (f *Flock) Clear() { f.live.Clear() }

// Step moves every balloon, then retires the ones that escaped or were hit.
// String collisions are resolved for survivors. The returned slice is reused
// by the next call.
func (f *Flock) Step(env *Env) []Event {
	f.events = f.events[:0]
	f.live.Each(func(id arena.ID, b *Balloon) {
		b.Move(env.Tick.Factor, env.DT, env.Wind, env.WindFloor)
		fate := Alive
		switch {
		case b.Escaped(env.Bounds):
			fate = Escaped
		case b.HitBy(env.Projectiles):
			fate = Popped
		}
		if fate != Alive {
			f.live.Destroy(id)
			f.events = append(f.events, Event{ID: id, Fate: fate, Pos: b.center})
			f.log.Debug().Uint64("id", uint64(id)).Stringer("fate", fate).Msg("retired")
			return
		}
		b.PushString(env.Projectiles)
	})
	return f.events
}

// Emit sends the outline of every live balloon to sink.
func (f *Flock) Emit(sink LineSink) {
	if sink == nil {
		return
	}
	f.live.Each(func(id arena.ID, b *Balloon) {
		body, str := b.body, b.str
		sink.SetLinePoints(id, LineBody, body[:])
		sink.SetLinePoints(id, LineString, str[:])
	})
}
