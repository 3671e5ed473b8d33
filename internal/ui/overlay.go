//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"balloon-artillery/internal/arena"
	"balloon-artillery/internal/balloon"
	"balloon-artillery/internal/projectile"
	"balloon-artillery/internal/sims/artillery"
)

// Overlay draws optional debugging visuals on top of the playfield.
type Overlay struct {
	world *artillery.World
	scale int

	showWind   bool
	showShots  bool
	showBounds bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(world *artillery.World, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{world: world, scale: scale}
}

// Update toggles layers: 1 wind, 2 shot velocities, 3 balloon bounds.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showWind = !o.showWind
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showShots = !o.showShots
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showBounds = !o.showBounds
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showWind {
		o.drawWind(screen)
	}
	if o.showShots {
		o.drawShots(screen)
	}
	if o.showBounds {
		o.drawBalloonCenters(screen)
	}
}

// drawWind marks the height above which wind acts and an arrow for its
// strength.
func (o *Overlay) drawWind(screen *ebiten.Image) {
	size := o.world.Size()
	s := float64(o.scale)
	floor := float64(o.world.Terrain().MaxMountainHeightWithNoise)
	y := float32((float64(size.H) - floor) * s)
	vector.StrokeLine(screen, 0, y, float32(float64(size.W)*s), y, 1, color.RGBA{R: 90, G: 130, B: 170, A: 160}, false)

	v := float64(o.world.Wind().Velocity())
	maxV := float64(o.world.Config().Wind.MaxVelocity)
	if maxV <= 0 || v == 0 {
		return
	}
	cx := float64(size.W) * s / 2
	cy := 24.0
	length := 80 * s * clamp01(math.Abs(v)/maxV)
	dir := math.Copysign(1, v)
	tipX := cx + dir*length/2
	col := interpolateColor(math.Abs(v) / maxV)
	o.arrow(screen, cx-dir*length/2, cy, tipX, cy, 2*s, col)
}

func (o *Overlay) drawShots(screen *ebiten.Image) {
	size := o.world.Size()
	s := float64(o.scale)
	o.world.Projectiles().Each(func(_ arena.ID, p *projectile.Projectile) {
		pos, vel := p.Position(), p.Velocity()
		x0 := pos.X * s
		y0 := (float64(size.H) - pos.Y) * s
		x1 := x0 + vel.X*4*s
		y1 := y0 - vel.Y*4*s
		col := color.RGBA{R: 250, G: 220, B: 60, A: 220}
		if p.State() == projectile.Settling {
			col = color.RGBA{R: 200, G: 80, B: 60, A: 220}
		}
		o.arrow(screen, x0, y0, x1, y1, s, col)
	})
}

func (o *Overlay) drawBalloonCenters(screen *ebiten.Image) {
	size := o.world.Size()
	s := float64(o.scale)
	o.world.Balloons().Each(func(_ arena.ID, b *balloon.Balloon) {
		c := b.Center()
		x := float32(c.X * s)
		y := float32((float64(size.H) - c.Y) * s)
		r := float32(b.Params().Extent() * s)
		vector.StrokeCircle(screen, x, y, r, 1, color.RGBA{R: 120, G: 200, B: 120, A: 140}, true)
	})
}

func (o *Overlay) arrow(screen *ebiten.Image, x0, y0, x1, y1, thickness float64, col color.RGBA) {
	const headAngle = math.Pi / 6
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	head := math.Min(length*0.3, 9*float64(o.scale))
	angle := math.Atan2(dy, dx)
	w := float32(thickness)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), w, col, true)
	for _, a := range []float64{angle + headAngle, angle - headAngle} {
		hx := x1 - math.Cos(a)*head
		hy := y1 - math.Sin(a)*head
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(hx), float32(hy), w, col, true)
	}
}

func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 70*t))
	g := uint8(math.Round(170 + 70*t))
	b := uint8(math.Round(230 + 20*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
