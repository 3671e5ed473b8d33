//go:build ebiten

package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"balloon-artillery/internal/arena"
	"balloon-artillery/internal/cannon"
	"balloon-artillery/internal/geom"
	"balloon-artillery/internal/projectile"
)

var (
	balloonColor    = color.RGBA{R: 220, G: 40, B: 60, A: 255}
	stringColor     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	projectileColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	barrelColor     = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	selectedColor   = color.RGBA{R: 250, G: 200, B: 40, A: 255}
)

// GridPainter draws a scene onto an ebiten screen.
type GridPainter struct {
	scene *Scene
	img   *ebiten.Image
}

// NewGridPainter allocates the terrain image backing scene.
func NewGridPainter(scene *Scene) *GridPainter {
	return &GridPainter{scene: scene, img: ebiten.NewImage(scene.w, scene.h)}
}

// Blit uploads the terrain when it changed and draws it scaled.
func (p *GridPainter) Blit(screen *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if pix, changed := p.scene.Pixels(cells, palette); changed {
		p.img.WritePixels(pix)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}

// DrawBalloons strokes every outline in the scene.
func (p *GridPainter) DrawBalloons(screen *ebiten.Image, scale int) {
	s := float64(scale)
	p.scene.Outlines(func(_ arena.ID, o *Outline) {
		p.polyline(screen, o.String, false, s, stringColor)
		p.polyline(screen, o.Body, true, s, balloonColor)
	})
}

// DrawProjectiles fills one circle per live projectile.
func (p *GridPainter) DrawProjectiles(screen *ebiten.Image, shots *projectile.Simulator, scale int) {
	s := float64(scale)
	r := float32(float64(shots.Params().CollisionRadius) * s)
	shots.Each(func(_ arena.ID, pr *projectile.Projectile) {
		x, y := p.scene.ToScreen(pr.Position(), s)
		vector.DrawFilledCircle(screen, x, y, r, projectileColor, true)
	})
}

// DrawCannons draws both barrels, highlighting the selected one.
func (p *GridPainter) DrawCannons(screen *ebiten.Image, b *cannon.Battery, scale int) {
	s := float64(scale)
	length := b.Config().BarrelLength
	for _, side := range []cannon.Side{cannon.Left, cannon.Right} {
		c := b.Cannon(side)
		rad := c.FiringAngle() * math.Pi / 180
		mouth := c.Pivot.Add(geom.V(math.Cos(rad), math.Sin(rad)).Scale(length))
		x0, y0 := p.scene.ToScreen(c.Pivot, s)
		x1, y1 := p.scene.ToScreen(mouth, s)
		col := barrelColor
		if side == b.Selected() {
			col = selectedColor
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, float32(6*s), col, true)
	}
}

func (p *GridPainter) polyline(screen *ebiten.Image, pts []geom.Vec2, closed bool, scale float64, col color.Color) {
	n := len(pts)
	if n < 2 {
		return
	}
	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		x0, y0 := p.scene.ToScreen(pts[i], scale)
		x1, y1 := p.scene.ToScreen(pts[(i+1)%n], scale)
		vector.StrokeLine(screen, x0, y0, x1, y1, float32(1.5*scale), col, true)
	}
}
