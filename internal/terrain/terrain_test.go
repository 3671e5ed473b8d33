package terrain

import (
	"errors"
	"slices"
	"testing"

	"balloon-artillery/internal/noise"
	"balloon-artillery/pkg/core"

	"pgregory.net/rapid"
)

type cellCounter struct {
	ground, water int
	maxX          int
}

func (c *cellCounter) PaintCell(layer Layer, x, _ int) {
	switch layer {
	case LayerGround:
		c.ground++
	case LayerWater:
		c.water++
	}
	if x > c.maxX {
		c.maxX = x
	}
}

func generator(t testing.TB, seed int64, cfg Config) *noise.Perlin1D {
	t.Helper()
	gen, err := noise.New(core.NewRNG(seed), cfg.NoiseSamples, cfg.NoiseOctaves)
	if err != nil {
		t.Fatalf("noise.New: %v", err)
	}
	return gen
}

func flatConfig() Config {
	cfg := DefaultConfig()
	cfg.FlatNoiseHeight = 0
	cfg.SlightlySteepNoiseHeight = 0
	cfg.VerySteepNoiseHeight = 0
	cfg.WaterNoiseHeight = 0
	return cfg
}

func TestDefaultGeometry(t *testing.T) {
	g, err := DefaultConfig().Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if g.TotalWidth != 1094 {
		t.Fatalf("expected total width 1094, got %d", g.TotalWidth)
	}
	if g.WaterLeftX != 327 || g.WaterRightX != 767 {
		t.Fatalf("unexpected water span [%d,%d)", g.WaterLeftX, g.WaterRightX)
	}
	if g.WaterTopY != 101 {
		t.Fatalf("expected water top 101, got %d", g.WaterTopY)
	}
	if g.Mountain1TopX != 327 || g.Mountain2TopX != 767 {
		t.Fatalf("unexpected peaks %d %d", g.Mountain1TopX, g.Mountain2TopX)
	}
	if g.MaxHeightWithNoise != 325 {
		t.Fatalf("expected max height with noise 325, got %d", g.MaxHeightWithNoise)
	}
}

func TestGeometryRejectsInvalidLayouts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ValleyWidth = 0
	if _, err := cfg.Geometry(); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry for zero valley, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.MinHeight = cfg.MaxHeight + 1
	if _, err := cfg.Geometry(); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry for inverted heights, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.ScaleFactor = 0
	if _, err := cfg.Geometry(); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry for zero scale, got %v", err)
	}
}

func TestBaseProfileIsPiecewiseLinear(t *testing.T) {
	cfg := flatConfig()
	g, err := cfg.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	terr, err := Generate(cfg, generator(t, 1, cfg), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(terr.Ground.Heights(), terr.Base) {
		t.Fatal("with zero noise amplitude the ground must equal the base profile")
	}

	want := func(x int) int {
		clamp := func(v, lo, hi int) int { return max(lo, min(hi, v)) }
		switch {
		case x < g.PlatformWidth:
			return g.PlatformHeight
		case x < g.Mountain1TopX:
			return clamp(g.PlatformHeight+(x-g.PlatformWidth), g.PlatformHeight, g.MaxHeight)
		case x < g.ValleyLeftX:
			return clamp(g.MaxHeight-2*(x-g.Mountain1TopX), g.MinHeight, g.MaxHeight)
		case x < g.ValleyRightX:
			return g.MinHeight
		case x < g.Mountain2TopX:
			return clamp(g.MinHeight+2*(x-g.ValleyRightX), g.MinHeight, g.MaxHeight)
		case x < g.Platform2LeftX:
			return clamp(g.MaxHeight-(x-g.Mountain2TopX), g.PlatformHeight, g.MaxHeight)
		default:
			return g.PlatformHeight
		}
	}
	for x, h := range terr.Base {
		if h != want(x) {
			t.Fatalf("base[%d] = %d, want %d", x, h, want(x))
		}
	}

	for x := g.WaterLeftX; x < g.WaterRightX; x++ {
		h, ok := terr.Water.At(x)
		if !ok || h != g.WaterTopY {
			t.Fatalf("water at %d = %d (ok=%v), want %d", x, h, ok, g.WaterTopY)
		}
	}
}

func TestGeneratePaintsEveryFilledCell(t *testing.T) {
	cfg := DefaultConfig()
	var painter cellCounter
	terr, err := Generate(cfg, generator(t, 99, cfg), &painter)
	if err != nil {
		t.Fatal(err)
	}
	wantGround, wantWater := 0, 0
	for _, h := range terr.Ground.Heights() {
		wantGround += h
	}
	for _, h := range terr.Water.Heights() {
		wantWater += h
	}
	if painter.ground != wantGround || painter.water != wantWater {
		t.Fatalf("painted %d/%d cells, want %d/%d", painter.ground, painter.water, wantGround, wantWater)
	}
	if painter.maxX != terr.Geometry.TotalWidth-1 {
		t.Fatalf("rightmost painted column %d, want %d", painter.maxX, terr.Geometry.TotalWidth-1)
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()
	a, err := Generate(cfg, generator(t, 5, cfg), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(cfg, generator(t, 5, cfg), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Ground.Heights(), b.Ground.Heights()) || !slices.Equal(a.Water.Heights(), b.Water.Heights()) {
		t.Fatal("same seed must produce the same terrain")
	}
	c, err := Generate(cfg, generator(t, 6, cfg), nil)
	if err != nil {
		t.Fatal(err)
	}
	if slices.Equal(a.Ground.Heights(), c.Ground.Heights()) {
		t.Fatal("different seeds should produce different ground")
	}
}

func TestHeightProfileOutOfRangeNeverCollides(t *testing.T) {
	p := NewHeightProfile(10, []int{5, 6, 7})
	if p.Contains(9, -100) || p.Contains(13, -100) {
		t.Fatal("columns outside the profile must not collide")
	}
	if !p.Contains(11, 6) || p.Contains(11, 7) {
		t.Fatal("a point collides when at or below the column height")
	}
}

func TestSurfaceClassification(t *testing.T) {
	g, err := DefaultConfig().Geometry()
	if err != nil {
		t.Fatal(err)
	}
	cases := map[int]Surface{
		10:                    SurfaceFlat,
		g.Platform1RightX + 5: SurfaceRising,
		g.Mountain1TopX + 5:   SurfaceFalling,
		g.ValleyLeftX + 5:     SurfaceFlat,
		g.ValleyRightX + 5:    SurfaceRising,
		g.Mountain2TopX + 5:   SurfaceFalling,
		g.Platform2LeftX + 5:  SurfaceFlat,
	}
	for x, want := range cases {
		if got := g.SurfaceAt(x); got != want {
			t.Fatalf("SurfaceAt(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestTerrainInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := DefaultConfig()
		cfg.ScaleFactor = rapid.Float64Range(0.25, 2).Draw(rt, "scale")
		cfg.NoiseSamples = rapid.IntRange(16, 4096).Draw(rt, "samples")
		seed := rapid.Int64().Draw(rt, "seed")

		gen, err := noise.New(core.NewRNG(seed), cfg.NoiseSamples, cfg.NoiseOctaves)
		if err != nil {
			rt.Fatalf("noise.New: %v", err)
		}
		terr, err := Generate(cfg, gen, nil)
		if err != nil {
			rt.Skip(err.Error())
		}
		if terr.Ground.Len() != terr.Geometry.TotalWidth {
			rt.Fatalf("ground length %d, want %d", terr.Ground.Len(), terr.Geometry.TotalWidth)
		}
		if terr.Water.Len() != terr.Geometry.WaterRightX-terr.Geometry.WaterLeftX {
			rt.Fatalf("water length %d mismatch", terr.Water.Len())
		}
		for x, h := range terr.Ground.Heights() {
			if h < 0 || h < terr.Base[x] {
				rt.Fatalf("ground[%d] = %d below base %d", x, h, terr.Base[x])
			}
		}
		if terr.MaxMountainHeightWithNoise != terr.Ground.Max() {
			rt.Fatalf("max mountain height %d, profile max %d", terr.MaxMountainHeightWithNoise, terr.Ground.Max())
		}
		if terr.MaxMountainHeightWithNoise > terr.Geometry.MaxHeightWithNoise+1 {
			rt.Fatalf("noisy peak %d exceeds bound %d", terr.MaxMountainHeightWithNoise, terr.Geometry.MaxHeightWithNoise)
		}
	})
}
