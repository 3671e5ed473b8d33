// Package render turns world state into pixels. The scene bookkeeping is
// headless; drawing lives behind the ebiten build tag.
package render

import (
	"image/color"
	"slices"

	"balloon-artillery/internal/arena"
	"balloon-artillery/internal/balloon"
	"balloon-artillery/internal/geom"
	"balloon-artillery/internal/terrain"
)

// Outline is the last known shape of one balloon.
type Outline struct {
	Body   []geom.Vec2
	String []geom.Vec2
}

// Scene collects what the world pushes to its sink between frames: whether
// the terrain raster changed and the outline of every live balloon.
type Scene struct {
	w, h    int
	pixels  []byte
	dirty   bool
	painted int

	outlines map[arena.ID]*Outline
	order    []arena.ID
}

// NewScene returns an empty scene for a w by h tile raster.
func NewScene(w, h int) *Scene {
	return &Scene{
		w:        w,
		h:        h,
		pixels:   make([]byte, 4*w*h),
		dirty:    true,
		outlines: make(map[arena.ID]*Outline),
	}
}

// PaintCell marks the terrain raster as changed.
func (s *Scene) PaintCell(layer terrain.Layer, x, y int) {
	s.dirty = true
	s.painted++
}

// SetLinePoints stores a copy of pts as the body or string of balloon id.
func (s *Scene) SetLinePoints(id arena.ID, kind balloon.LineKind, pts []geom.Vec2) {
	o, ok := s.outlines[id]
	if !ok {
		o = &Outline{}
		s.outlines[id] = o
		s.order = append(s.order, id)
	}
	switch kind {
	case balloon.LineString:
		o.String = append(o.String[:0], pts...)
	default:
		o.Body = append(o.Body[:0], pts...)
	}
}

// DropLines forgets balloon id.
func (s *Scene) DropLines(id arena.ID) {
	if _, ok := s.outlines[id]; !ok {
		return
	}
	delete(s.outlines, id)
	s.order = slices.DeleteFunc(s.order, func(v arena.ID) bool { return v == id })
}

// Painted is the number of terrain cells received since construction.
func (s *Scene) Painted() int { return s.painted }

// Outlines visits balloons in the order they first appeared.
func (s *Scene) Outlines(fn func(id arena.ID, o *Outline)) {
	for _, id := range s.order {
		fn(id, s.outlines[id])
	}
}

// Len is the number of balloons on screen.
func (s *Scene) Len() int { return len(s.order) }

// Pixels refreshes the RGBA buffer from cells when the terrain changed since
// the last call. It reports whether the buffer was rewritten.
func (s *Scene) Pixels(cells []uint8, palette []color.RGBA) ([]byte, bool) {
	if !s.dirty || len(cells) != s.w*s.h {
		return s.pixels, false
	}
	fillPaletteRGBA(s.pixels, cells, palette)
	s.dirty = false
	return s.pixels, true
}

// ToScreen maps a y-up world point onto the y-down tile rows of the scene,
// where cell y sits at row h-1-y, scaled by scale.
func (s *Scene) ToScreen(p geom.Vec2, scale float64) (float32, float32) {
	return float32(p.X * scale), float32((float64(s.h-1) - p.Y) * scale)
}
