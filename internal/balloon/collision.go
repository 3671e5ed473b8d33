package balloon

import "balloon-artillery/internal/geom"

// Projectile is the read-only view of a live cannonball a balloon collides
// with. *projectile.Projectile implements it.
type Projectile interface {
	Position() geom.Vec2
	Velocity() geom.Vec2
}

// Bounds is the region a balloon may occupy before it counts as escaped.
// There is no floor; balloons only ever rise.
type Bounds struct {
	MinX, MaxX, MaxY float64
}

// Escaped reports whether the center has left bounds padded by the balloon's
// own extent.
func (b *Balloon) Escaped(bounds Bounds) bool {
	off := b.params.Extent()
	c := b.center
	return c.X > bounds.MaxX+off || c.X < bounds.MinX-off || c.Y > bounds.MaxY+off
}

// HitBy reports whether any projectile touches the body: inside the inscribed
// circle grown by the collision reach, or within reach of a vertex.
func (b *Balloon) HitBy(projectiles []Projectile) bool {
	reach := b.params.CollisionRadius + b.params.CollisionBuffer
	inner := reach + b.params.inradius()
	for _, p := range projectiles {
		pos := p.Position()
		if pos.Dist(b.center) < inner {
			return true
		}
		for _, v := range b.body {
			if pos.Dist(v) <= reach {
				return true
			}
		}
	}
	return false
}

// PushString shoves string vertices out of the way of passing projectiles.
// A touched vertex and every vertex below it move sideways in the direction
// of travel and always upward, by PushFactor times the penetration depth.
// It reports whether anything moved.
func (b *Balloon) PushString(projectiles []Projectile) bool {
	reach := b.params.CollisionRadius + b.params.CollisionBuffer
	moved := false
	for _, p := range projectiles {
		pos := p.Position()
		dir := -1.0
		if p.Velocity().X > 0 {
			dir = 1
		}
		for i := 1; i < StringPoints; i++ {
			dist := pos.Dist(b.str[i])
			if dist > reach {
				continue
			}
			push := b.params.PushFactor * (reach - dist)
			for j := i; j < StringPoints; j++ {
				b.str[j].X += push * dir
				b.str[j].Y += push
			}
			moved = true
		}
	}
	return moved
}
