//go:build ebiten

package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"balloon-artillery/internal/core"
	"balloon-artillery/internal/render"
	"balloon-artillery/internal/sims/artillery"
	"balloon-artillery/internal/ui"
)

// Game adapts the artillery world to the ebiten.Game interface.
type Game struct {
	world   *artillery.World
	scene   *render.Scene
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FrameTimer
	log     zerolog.Logger

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for world, attaching the scene as its sink and the
// keyboard as its input source.
func New(world *artillery.World, cfg *Config, log zerolog.Logger) *Game {
	size := world.Size()
	scene := render.NewScene(size.W, size.H)
	world.SetSink(scene)
	world.SetInput(Keyboard{})
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		world:   world,
		scene:   scene,
		painter: render.NewGridPainter(scene),
		hud:     ui.NewHUD(world, cfg.HUDWidth),
		overlay: ui.NewOverlay(world, scale),
		timer:   core.NewFrameTimer(world.Config().TickInterval),
		log:     log,
		scale:   scale,
		seed:    world.Seed(),
	}
}

// Reset starts a new game with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.timer.Restart()
	g.tickOnce = false
	g.log.Info().Int64("seed", seed).Str("run", g.world.RunID().String()).Msg("game reset")
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.timer.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()

	switch {
	case !g.paused:
		g.world.Step(g.timer.Elapsed())
	case g.tickOnce:
		g.world.Step(g.world.Clock().Nominal())
	}
	g.tickOnce = false
	g.hud.Update()
	return nil
}

// Draw renders the current world state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.Cells(), g.world.Palette(), g.scale)
	g.painter.DrawCannons(screen, g.world.Battery(), g.scale)
	g.painter.DrawBalloons(screen, g.scale)
	g.painter.DrawProjectiles(screen, g.world.Projectiles(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.world.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
