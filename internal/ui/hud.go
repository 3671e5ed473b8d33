//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"balloon-artillery/internal/core"
	"balloon-artillery/internal/sims/artillery"
)

// HUD renders game status and the parameter panel to the right of the
// playfield.
type HUD struct {
	world      *artillery.World
	width      int
	panel      *ebiten.Image
	lastHeight int

	lines    []string
	snapshot core.ParameterSnapshot
}

// NewHUD constructs a HUD for world with the given panel width.
func NewHUD(world *artillery.World, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{world: world, width: width}
}

// Width is the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached status and parameters.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	h.lines = StatusLines(h.world.Status())
	h.snapshot = h.world.Parameters()
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.world.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	title := fmt.Sprintf("Artillery  seed %d", h.world.Seed())
	text.Draw(h.panel, title, face, panelPadding, y, headerColor)
	y += infoSpacing
	for _, line := range h.lines {
		text.Draw(h.panel, line, face, panelPadding, y, valueColor)
		y += lineHeight
	}
	for _, group := range h.snapshot.Groups {
		y += lineHeight
		text.Draw(h.panel, group.Name, face, panelPadding, y, headerColor)
		for _, p := range group.Params {
			y += lineHeight
			if y > height-panelPadding {
				break
			}
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, valueColor)
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 16
	headerBaseline = 18
	infoSpacing    = 24
)
