// Package geom provides the small 2D vector type shared by the physics
// packages. World coordinates are y-up: larger Y is higher on screen.
package geom

import "math"

// Vec2 is a 2D point or displacement.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Len returns the Euclidean length.
func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }

// Dist returns the distance between a and b.
func (a Vec2) Dist(b Vec2) float64 { return a.Sub(b).Len() }

// Normalized returns the unit vector along a. ok is false for zero-length or
// non-finite input, in which case callers skip whatever correction they were
// about to apply.
func (a Vec2) Normalized() (Vec2, bool) {
	l := a.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}, false
	}
	return Vec2{a.X / l, a.Y / l}, true
}
