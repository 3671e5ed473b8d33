// Package terrain builds the two-mountain height profile, roughens it with
// noise and answers per-column collision queries.
package terrain

import (
	"fmt"
	"math"

	"balloon-artillery/internal/noise"
)

// Layer identifies which tile layer a painted cell belongs to.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerGround
	LayerWater
)

// Painter receives one call per filled terrain cell during generation.
type Painter interface {
	PaintCell(layer Layer, x, y int)
}

// Surface classifies a ground column for bounce response.
type Surface uint8

const (
	// SurfaceFlat covers both platforms and the valley floor.
	SurfaceFlat Surface = iota
	// SurfaceRising is the part of a mountain that climbs left to right.
	SurfaceRising
	// SurfaceFalling is the part of a mountain that descends left to right.
	SurfaceFalling
)

func (s Surface) String() string {
	switch s {
	case SurfaceFlat:
		return "flat"
	case SurfaceRising:
		return "rising"
	case SurfaceFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// HeightProfile is an immutable per-column height array starting at column
// Offset.
type HeightProfile struct {
	offset  int
	heights []int
}

// NewHeightProfile copies heights into a profile whose first column is offset.
func NewHeightProfile(offset int, heights []int) HeightProfile {
	return HeightProfile{offset: offset, heights: append([]int(nil), heights...)}
}

// Offset is the world column of index 0.
func (h HeightProfile) Offset() int { return h.offset }

// Len is the number of columns.
func (h HeightProfile) Len() int { return len(h.heights) }

// Heights returns a copy of the per-column heights.
func (h HeightProfile) Heights() []int { return append([]int(nil), h.heights...) }

// At returns the height of world column x. ok is false outside the profile.
func (h HeightProfile) At(x int) (height int, ok bool) {
	i := x - h.offset
	if i < 0 || i >= len(h.heights) {
		return 0, false
	}
	return h.heights[i], true
}

// Contains reports whether (x, y) is at or below the surface of column x.
// Columns outside the profile never collide.
func (h HeightProfile) Contains(x, y int) bool {
	top, ok := h.At(x)
	return ok && y <= top
}

// Max returns the tallest column, or 0 for an empty profile.
func (h HeightProfile) Max() int {
	m := 0
	for _, v := range h.heights {
		if v > m {
			m = v
		}
	}
	return m
}

// Terrain is the generated ground and water plus the layout it came from.
type Terrain struct {
	Geometry Geometry
	Base     []int
	Ground   HeightProfile
	Water    HeightProfile

	// MaxMountainHeightWithNoise is the tallest generated ground column.
	MaxMountainHeightWithNoise int
}

// GroundContains reports a ground hit at (x, y).
func (t *Terrain) GroundContains(x, y int) bool { return t.Ground.Contains(x, y) }

// WaterContains reports a water hit at (x, y).
func (t *Terrain) WaterContains(x, y int) bool { return t.Water.Contains(x, y) }

// SurfaceAt classifies column x for bounce response.
func (t *Terrain) SurfaceAt(x int) Surface { return t.Geometry.SurfaceAt(x) }

// SurfaceAt classifies column x against the section boundaries. Exact
// boundary columns fall through to the falling branch, matching the strict
// comparisons of the layout.
func (g Geometry) SurfaceAt(x int) Surface {
	if x < g.Platform1RightX || x > g.Platform2LeftX || (x > g.ValleyLeftX && x < g.ValleyRightX) {
		return SurfaceFlat
	}
	if (x > g.Platform1RightX && x < g.Mountain1TopX) || (x > g.ValleyRightX && x < g.Mountain2TopX) {
		return SurfaceRising
	}
	return SurfaceFalling
}

// BaseHeights lays out the seven noise-free sections: platform, outer rise,
// inner fall, valley, inner rise, outer fall, platform. Ramps clamp to their
// target height instead of overshooting.
func BaseHeights(g Geometry) []int {
	out := make([]int, 0, g.TotalWidth)
	flat := func(w, h int) {
		for x := 0; x < w; x++ {
			out = append(out, h)
		}
	}
	ramp := func(w, from, to, slope int) {
		for x := 0; x < w; x++ {
			h := from + slope*x
			if (slope > 0 && h >= to) || (slope < 0 && h <= to) {
				h = to
			}
			out = append(out, h)
		}
	}

	flat(g.PlatformWidth, g.PlatformHeight)
	ramp(g.OuterMountainWidth, g.PlatformHeight, g.MaxHeight, 1)
	ramp(g.InnerMountainWidth, g.MaxHeight, g.MinHeight, -2)
	flat(g.ValleyWidth, g.MinHeight)
	ramp(g.InnerMountainWidth, g.MinHeight, g.MaxHeight, 2)
	ramp(g.OuterMountainWidth, g.MaxHeight, g.PlatformHeight, -1)
	flat(g.PlatformWidth, g.PlatformHeight)
	return out
}

// Generate builds the ground and water profiles. gen is reset between the two
// layers so their noise is independent. painter may be nil.
func Generate(cfg Config, gen *noise.Perlin1D, painter Painter) (*Terrain, error) {
	g, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, fmt.Errorf("terrain: nil noise generator")
	}
	if cfg.GroundSmoothness <= 0 || cfg.WaterSmoothness <= 0 {
		return nil, fmt.Errorf("%w: smoothness must be positive", ErrInvalidGeometry)
	}

	s := cfg.ScaleFactor
	flatAmp := cfg.FlatNoiseHeight * s
	slightAmp := cfg.SlightlySteepNoiseHeight * s
	steepAmp := cfg.VerySteepNoiseHeight * s
	waterAmp := cfg.WaterNoiseHeight * s

	base := BaseHeights(g)
	ground := make([]int, len(base))
	maxHeight := 0
	for x, h := range base {
		amp := steepAmp
		if x > 0 {
			switch d := absInt(h - base[x-1]); d {
			case 0:
				amp = flatAmp
			case 1:
				amp = slightAmp
			}
		}
		col := h + noiseHeight(amp, gen.At(float64(x)/cfg.GroundSmoothness))
		if col < 0 {
			col = 0
		}
		if col > maxHeight {
			maxHeight = col
		}
		ground[x] = col
		paintColumn(painter, LayerGround, x, col)
	}

	gen.Reset()
	water := make([]int, 0, g.WaterRightX-g.WaterLeftX)
	for x := g.WaterLeftX; x < g.WaterRightX; x++ {
		col := g.WaterTopY + noiseHeight(waterAmp, gen.At(float64(x)/cfg.WaterSmoothness))
		if col < 0 {
			col = 0
		}
		water = append(water, col)
		paintColumn(painter, LayerWater, x, col)
	}

	return &Terrain{
		Geometry:                   g,
		Base:                       base,
		Ground:                     HeightProfile{offset: 0, heights: ground},
		Water:                      HeightProfile{offset: g.WaterLeftX, heights: water},
		MaxMountainHeightWithNoise: maxHeight,
	}, nil
}

// noiseHeight rounds half to even so generated columns match the reference
// layouts bit for bit.
func noiseHeight(amplitude, n float64) int {
	return int(math.RoundToEven(amplitude * n))
}

func paintColumn(p Painter, layer Layer, x, height int) {
	if p == nil {
		return
	}
	for y := 0; y < height; y++ {
		p.PaintCell(layer, x, y)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
