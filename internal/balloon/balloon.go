// Package balloon simulates the rising target balloons: a hexagonal body and
// a hanging string made of point masses, advanced with Verlet integration and
// held in shape by iterated distance constraints.
package balloon

import (
	"math"

	"balloon-artillery/internal/geom"
)

const (
	// BodyPoints is the hexagon vertex count.
	BodyPoints = 6
	// StringPoints is the number of string vertices, including the one tied
	// to the body.
	StringPoints = 8

	// ConnectionIndex is the body vertex the string hangs from and the
	// string's anchor.
	ConnectionIndex = 0
	// TopIndex is the body vertex opposite the connection.
	TopIndex = 3

	lowerLeftIndex  = 1
	lowerRightIndex = 5
)

// Params are the balloon geometry and motion constants. Rates are per
// nominal tick.
type Params struct {
	BodySegment   float64 `mapstructure:"body_segment"`
	StringSegment float64 `mapstructure:"string_segment"`
	Iterations    int     `mapstructure:"iterations"`

	RiseRate   float64 `mapstructure:"rise_rate"`
	WindFactor float64 `mapstructure:"wind_factor"`

	// CenterTolerance is the fraction of BodySegment a vertex may drift from
	// its center distance before the center link pulls it back.
	CenterTolerance float64 `mapstructure:"center_tolerance"`
	// StringClearance keeps the hanging string below the lower body vertices.
	StringClearance float64 `mapstructure:"string_clearance"`

	CollisionRadius float64 `mapstructure:"collision_radius"`
	CollisionBuffer float64 `mapstructure:"collision_buffer"`
	PushFactor      float64 `mapstructure:"push_factor"`

	// Gravity is the Verlet acceleration in units per second squared.
	Gravity geom.Vec2 `mapstructure:"-"`
}

// DefaultParams returns the standard balloon.
func DefaultParams() Params {
	return Params{
		BodySegment:     10,
		StringSegment:   6,
		Iterations:      10,
		RiseRate:        2.5,
		WindFactor:      0.75,
		CenterTolerance: 0.2,
		StringClearance: 5,
		CollisionRadius: 7,
		CollisionBuffer: 1.5,
		PushFactor:      2,
		Gravity:         geom.V(0, -5),
	}
}

// Extent is how far the balloon reaches below its center, used to pad the
// escape bounds.
func (p Params) Extent() float64 {
	return p.BodySegment + StringPoints*p.StringSegment
}

// inradius is the distance from the hexagon center to an edge midpoint.
func (p Params) inradius() float64 {
	return p.BodySegment * math.Cos(math.Pi/6)
}

// Balloon is one body-and-string particle system. The fixed array sizes keep
// current and previous positions the same length by construction.
type Balloon struct {
	params Params

	body     [BodyPoints]geom.Vec2
	prevBody [BodyPoints]geom.Vec2
	str      [StringPoints]geom.Vec2
	prevStr  [StringPoints]geom.Vec2
	center   geom.Vec2
}

// New lays out a regular hexagon whose bottom vertex sits at at, with the
// string hanging straight down from it. The balloon starts at rest.
func New(p Params, at geom.Vec2) *Balloon {
	b := &Balloon{params: p}
	b.Place(at)
	return b
}

// Place resets the layout around at.
func (b *Balloon) Place(at geom.Vec2) {
	seg := b.params.BodySegment
	dx := seg * math.Cos(math.Pi/6)
	dy := seg * math.Sin(math.Pi/6)

	b.body[0] = at
	b.body[1] = b.body[0].Add(geom.V(-dx, dy))
	b.body[2] = b.body[1].Add(geom.V(0, seg))
	b.body[3] = b.body[2].Add(geom.V(dx, dy))
	b.body[4] = b.body[3].Add(geom.V(dx, -dy))
	b.body[5] = b.body[4].Add(geom.V(0, -seg))
	b.center = at.Add(geom.V(0, dy+seg/2))

	for i := range b.str {
		b.str[i] = at.Add(geom.V(0, -float64(i)*b.params.StringSegment))
	}
	b.prevBody = b.body
	b.prevStr = b.str
}

// Params returns the constants the balloon was built with.
func (b *Balloon) Params() Params { return b.params }

// Body returns the hexagon vertices.
func (b *Balloon) Body() [BodyPoints]geom.Vec2 { return b.body }

// Strand returns the string vertices, anchor first.
func (b *Balloon) Strand() [StringPoints]geom.Vec2 { return b.str }

// Center returns the buoyant center the body is tethered to.
func (b *Balloon) Center() geom.Vec2 { return b.center }

// Move runs one tick of motion: Verlet integration, constraint relaxation,
// rise, then wind drift. factor scales per-tick rates; dt is the Verlet step
// in seconds.
func (b *Balloon) Move(factor, dt float64, wind int, windFloor float64) {
	integrate(b.body[:], b.prevBody[:], b.params.Gravity.Scale(dt))
	integrate(b.str[:], b.prevStr[:], b.params.Gravity.Scale(dt))

	for range b.params.Iterations {
		b.relax()
	}

	b.center.Y += factor * b.params.RiseRate
	b.drift(factor, wind, windFloor)
}

// integrate advances every point except the anchor at index 0, which only
// constraints move.
func integrate(cur, prev []geom.Vec2, accel geom.Vec2) {
	for i := 1; i < len(cur); i++ {
		vel := cur[i].Sub(prev[i])
		prev[i] = cur[i]
		cur[i] = cur[i].Add(vel).Add(accel)
	}
}

// relax applies one pass of every constraint. The connection is always last
// so the string anchor ends each pass on the body.
func (b *Balloon) relax() {
	b.constrainStringLength()
	b.constrainStringHeight()
	b.constrainEdges()
	b.constrainCenterLinks()
	b.str[ConnectionIndex] = b.body[ConnectionIndex]
}

func (b *Balloon) constrainStringLength() {
	want := b.params.StringSegment
	for i := 0; i < StringPoints-1; i++ {
		j := i + 1
		d := b.str[j].Sub(b.str[i])
		dir, ok := d.Normalized()
		if !ok {
			continue
		}
		err := d.Len() - want
		if err == 0 {
			continue
		}
		if i == ConnectionIndex {
			b.str[j] = b.str[j].Sub(dir.Scale(err))
			continue
		}
		half := dir.Scale(0.5 * err)
		b.str[i] = b.str[i].Add(half)
		b.str[j] = b.str[j].Sub(half)
	}
}

func (b *Balloon) constrainStringHeight() {
	left, right := b.body[lowerLeftIndex].Y, b.body[lowerRightIndex].Y
	ceiling := min(left, right) - b.params.StringClearance
	for i := 1; i < StringPoints; i++ {
		if b.str[i].Y > left || b.str[i].Y > right {
			b.str[i].Y = ceiling
		}
	}
}

func (b *Balloon) constrainEdges() {
	want := b.params.BodySegment
	for i := 0; i < BodyPoints; i++ {
		j := (i + 1) % BodyPoints
		d := b.body[j].Sub(b.body[i])
		dir, ok := d.Normalized()
		if !ok {
			continue
		}
		err := d.Len() - want
		if err == 0 {
			continue
		}
		half := dir.Scale(0.5 * err)
		b.body[i] = b.body[i].Add(half)
		b.body[j] = b.body[j].Sub(half)
	}
}

// constrainCenterLinks pulls a vertex, never the center, back to BodySegment
// from the center once it strays past the tolerance.
func (b *Balloon) constrainCenterLinks() {
	want := b.params.BodySegment
	limit := want * b.params.CenterTolerance
	for i := range b.body {
		d := b.center.Sub(b.body[i])
		err := d.Len() - want
		if math.Abs(err) <= limit {
			continue
		}
		dir, ok := d.Normalized()
		if !ok {
			continue
		}
		b.body[i] = b.body[i].Add(dir.Scale(err))
	}
}

// drift pushes the balloon sideways once its center clears windFloor. The two
// vertices on the upwind side move fastest, the downwind pair slowest.
func (b *Balloon) drift(factor float64, wind int, windFloor float64) {
	if b.center.Y <= windFloor {
		return
	}
	lead, trail := [2]int{1, 2}, [2]int{4, 5}
	if wind > 0 {
		lead, trail = trail, lead
	}
	step := factor * float64(wind) * b.params.WindFactor
	for _, i := range lead {
		b.body[i].X += step * 1.5
	}
	for _, i := range trail {
		b.body[i].X += step / 4
	}
	b.center.X += step
}
