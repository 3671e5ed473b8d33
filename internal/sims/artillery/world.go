// Package artillery wires terrain, cannons, projectiles, balloons and wind
// into one tick-driven world.
package artillery

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"balloon-artillery/internal/arena"
	"balloon-artillery/internal/balloon"
	"balloon-artillery/internal/cannon"
	"balloon-artillery/internal/core"
	"balloon-artillery/internal/noise"
	"balloon-artillery/internal/projectile"
	"balloon-artillery/internal/terrain"
	"balloon-artillery/internal/wind"
	pcore "balloon-artillery/pkg/core"
)

// Random stream keys. Each subsystem draws from its own stream so extra draws
// in one never change another.
const (
	streamNoise uint64 = iota + 1
	streamWind
	streamSpawn
)

// Sink receives everything the world draws: terrain cells once per Reset and
// balloon outlines every tick.
type Sink interface {
	terrain.Painter
	balloon.LineSink
}

// InputSource is polled once per Step for cannon controls.
type InputSource interface {
	Poll() cannon.Input
}

// Option configures a World at construction.
type Option func(*World)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(w *World) { w.baseLog = log }
}

// WithSink attaches a rendering sink.
func WithSink(s Sink) Option {
	return func(w *World) { w.sink = s }
}

// WithInput attaches an input source polled by Step.
func WithInput(in InputSource) Option {
	return func(w *World) { w.input = in }
}

// World owns the whole simulation state for one game.
type World struct {
	cfg  Config
	geom terrain.Geometry

	baseLog zerolog.Logger
	log     zerolog.Logger
	runID   uuid.UUID
	seed    int64

	sink  Sink
	input InputSource

	clock   *core.Clock
	tiles   *core.ByteGrid
	terrain *terrain.Terrain
	wind    *wind.Model
	battery *cannon.Battery
	shots   *projectile.Simulator
	flock   *balloon.Flock
	spawner *balloon.Spawner

	targets []balloon.Projectile

	fired   int
	popped  int
	escaped int
}

// New returns a world with the default configuration.
func New(opts ...Option) (*World, error) {
	return NewWithConfig(DefaultConfig(), opts...)
}

// NewWithConfig validates cfg and builds a world ready to Step.
func NewWithConfig(cfg Config, opts ...Option) (*World, error) {
	g, err := cfg.Terrain.Geometry()
	if err != nil {
		return nil, fmt.Errorf("artillery: %w", err)
	}
	if cfg.AreaMaxY <= 0 {
		return nil, fmt.Errorf("artillery: area max y must be positive, got %v", cfg.AreaMaxY)
	}
	clock, err := core.NewClock(cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("artillery: %w", err)
	}
	if _, err := wind.New(cfg.Wind, pcore.NewRNG(0), zerolog.Nop()); err != nil {
		return nil, fmt.Errorf("artillery: %w", err)
	}
	if _, err := noise.New(pcore.NewRNG(0), cfg.Terrain.NoiseSamples, cfg.Terrain.NoiseOctaves); err != nil {
		return nil, fmt.Errorf("artillery: %w", err)
	}
	// Balloons and cannonballs share one collision radius.
	cfg.Balloon.CollisionRadius = float64(cfg.Projectile.CollisionRadius)

	w := &World{
		cfg:     cfg,
		geom:    g,
		baseLog: zerolog.Nop(),
		clock:   clock,
		tiles:   core.NewByteGrid(g.TotalWidth, int(cfg.AreaMaxY)),
		battery: cannon.NewBattery(cfg.Cannon),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.reset(cfg.Seed); err != nil {
		return nil, err
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "artillery" }

// Size reports the tile raster dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.tiles.W, H: w.tiles.H} }

// Cells exposes the terrain tile raster, row 0 at the top of the screen.
func (w *World) Cells() []uint8 { return w.tiles.Cells() }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// RunID identifies the current game in logs.
func (w *World) RunID() uuid.UUID { return w.runID }

// Seed returns the seed of the current game.
func (w *World) Seed() int64 { return w.seed }

// Terrain returns the generated terrain.
func (w *World) Terrain() *terrain.Terrain { return w.terrain }

// Battery returns the cannons.
func (w *World) Battery() *cannon.Battery { return w.battery }

// Projectiles returns the live projectile registry.
func (w *World) Projectiles() *projectile.Simulator { return w.shots }

// Balloons returns the live balloon registry.
func (w *World) Balloons() *balloon.Flock { return w.flock }

// Wind returns the wind model.
func (w *World) Wind() *wind.Model { return w.wind }

// Clock returns the simulation clock.
func (w *World) Clock() *core.Clock { return w.clock }

// SetSink replaces the rendering sink and repaints the terrain into it.
func (w *World) SetSink(s Sink) {
	w.sink = s
	if s == nil || w.terrain == nil {
		return
	}
	replay(w.terrain, s)
	w.flock.Emit(s)
}

// SetInput replaces the input source polled by Step.
func (w *World) SetInput(in InputSource) { w.input = in }

// Reset starts a new game. A zero seed reuses the configured seed.
func (w *World) Reset(seed int64) {
	if err := w.reset(seed); err != nil {
		w.log.Error().Err(err).Msg("reset failed")
	}
}

func (w *World) reset(seed int64) error {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	if w.flock != nil && w.sink != nil {
		w.flock.Each(func(id arena.ID, _ *balloon.Balloon) { w.sink.DropLines(id) })
	}
	w.runID = uuid.New()
	w.log = w.baseLog.With().Str("run", w.runID.String()).Int64("seed", effective).Logger()

	rng := pcore.NewRNG(effective)
	gen, err := noise.New(rng.Derive(streamNoise), w.cfg.Terrain.NoiseSamples, w.cfg.Terrain.NoiseOctaves)
	if err != nil {
		return fmt.Errorf("artillery: %w", err)
	}
	w.tiles.Clear()
	terr, err := terrain.Generate(w.cfg.Terrain, gen, w.painter())
	if err != nil {
		return fmt.Errorf("artillery: %w", err)
	}
	w.terrain = terr

	wm, err := wind.New(w.cfg.Wind, rng.Derive(streamWind), w.log)
	if err != nil {
		return fmt.Errorf("artillery: %w", err)
	}
	w.wind = wm

	bounds := projectile.Bounds{MinX: 0, MaxX: float64(w.geom.TotalWidth), MinY: 0}
	w.shots = projectile.NewSimulator(w.cfg.Projectile, terr, bounds, w.log)
	w.flock = balloon.NewFlock(w.cfg.Balloon, w.log)
	w.spawner = balloon.NewSpawner(w.cfg.Spawn, w.geom, rng.Derive(streamSpawn))
	w.battery.Reset()
	w.clock.Reset()
	w.targets = w.targets[:0]
	w.fired, w.popped, w.escaped = 0, 0, 0

	w.log.Info().
		Int("width", w.geom.TotalWidth).
		Int("max_mountain_height", terr.MaxMountainHeightWithNoise).
		Msg("terrain generated")
	return nil
}

// Step advances one tick of elapsed real time, polling the input source if
// one is attached.
func (w *World) Step(elapsed time.Duration) {
	var in cannon.Input
	if w.input != nil {
		in = w.input.Poll()
	}
	w.StepInput(elapsed, in)
}

// StepInput advances one tick with explicit input. Within a tick the order is
// fixed: clock, wind, cannons, projectiles, balloons, sink.
func (w *World) StepInput(elapsed time.Duration, in cannon.Input) {
	tick := w.clock.Advance(elapsed)

	w.wind.Step(tick)

	if launch, ok := w.battery.Apply(in, tick); ok {
		w.shots.Fire(launch, tick.Now)
		w.fired++
	}
	w.shots.Step(tick)
	w.shots.Compact()

	if at, ok := w.spawner.Step(tick); ok {
		w.flock.Spawn(at)
	}

	env := balloon.NewEnv(tick, w.clock.Nominal())
	env.Wind = w.wind.Velocity()
	env.WindFloor = float64(w.terrain.MaxMountainHeightWithNoise)
	env.Bounds = balloon.Bounds{MinX: 0, MaxX: float64(w.geom.TotalWidth), MaxY: w.cfg.AreaMaxY}
	env.Projectiles = w.liveTargets()

	for _, ev := range w.flock.Step(&env) {
		switch ev.Fate {
		case balloon.Popped:
			w.popped++
		case balloon.Escaped:
			w.escaped++
		}
		if w.sink != nil {
			w.sink.DropLines(ev.ID)
		}
	}
	w.flock.Compact()
	w.flock.Emit(w.sink)
}

func (w *World) liveTargets() []balloon.Projectile {
	w.targets = w.targets[:0]
	w.shots.Each(func(_ arena.ID, p *projectile.Projectile) {
		w.targets = append(w.targets, p)
	})
	return w.targets
}

// Status summarises the game for the HUD.
type Status struct {
	Seq      uint64
	Now      time.Duration
	Selected cannon.Side
	Left     cannon.Cannon
	Right    cannon.Cannon
	Wind     int

	Projectiles int
	Balloons    int
	Fired       int
	Popped      int
	Escaped     int
}

// Status reports the current game state.
func (w *World) Status() Status {
	last := w.clock.Last()
	return Status{
		Seq:         last.Seq,
		Now:         last.Now,
		Selected:    w.battery.Selected(),
		Left:        w.battery.Cannon(cannon.Left),
		Right:       w.battery.Cannon(cannon.Right),
		Wind:        w.wind.Velocity(),
		Projectiles: w.shots.Len(),
		Balloons:    w.flock.Len(),
		Fired:       w.fired,
		Popped:      w.popped,
		Escaped:     w.escaped,
	}
}

func init() {
	core.Register("artillery", func(cfg map[string]string) (core.Sim, error) {
		w, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
