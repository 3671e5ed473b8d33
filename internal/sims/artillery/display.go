package artillery

import (
	"image/color"

	"balloon-artillery/internal/terrain"
)

// Tile values stored in Cells.
const (
	TileSky uint8 = iota
	TileGround
	TileWater
)

var artilleryPalette = []color.RGBA{
	TileSky:    {R: 135, G: 196, B: 235, A: 255},
	TileGround: {R: 92, G: 74, B: 52, A: 255},
	TileWater:  {R: 40, G: 92, B: 170, A: 255},
}

// Palette exposes the tile colors indexed by Cells values.
func (w *World) Palette() []color.RGBA {
	return artilleryPalette
}

// tilePainter rasterises terrain into the world grid and forwards every
// cell it receives to the attached sink. Ground stays in front of water in
// the grid only; the sink sees both layers in full.
type tilePainter struct{ w *World }

func (w *World) painter() terrain.Painter { return tilePainter{w: w} }

func (p tilePainter) PaintCell(layer terrain.Layer, x, y int) {
	if p.w.sink != nil {
		p.w.sink.PaintCell(layer, x, y)
	}
	g := p.w.tiles
	row := g.H - 1 - y
	if !g.In(x, row) {
		return
	}
	switch layer {
	case terrain.LayerGround:
		g.Set(x, row, TileGround)
	case terrain.LayerWater:
		if g.At(x, row) == TileSky {
			g.Set(x, row, TileWater)
		}
	}
}

// replay repaints every filled cell of both profiles of t into p.
func replay(t *terrain.Terrain, p terrain.Painter) {
	for x, h := range t.Ground.Heights() {
		for y := 0; y < h; y++ {
			p.PaintCell(terrain.LayerGround, x, y)
		}
	}
	off := t.Water.Offset()
	for i, h := range t.Water.Heights() {
		for y := 0; y < h; y++ {
			p.PaintCell(terrain.LayerWater, off+i, y)
		}
	}
}
