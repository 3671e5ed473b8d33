package projectile

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"

	"balloon-artillery/internal/arena"
	"balloon-artillery/internal/core"
	"balloon-artillery/internal/geom"
	"balloon-artillery/internal/noise"
	"balloon-artillery/internal/terrain"
	pcore "balloon-artillery/pkg/core"
)

// stubGround is solid at or below groundTop and wet at or below waterTop
// across [0, width).
type stubGround struct {
	width     int
	groundTop int
	waterTop  int
	surface   terrain.Surface
}

func (g stubGround) in(x int) bool { return x >= 0 && x < g.width }

func (g stubGround) GroundContains(x, y int) bool { return g.in(x) && y <= g.groundTop }
func (g stubGround) WaterContains(x, y int) bool  { return g.in(x) && y <= g.waterTop }
func (g stubGround) SurfaceAt(int) terrain.Surface  { return g.surface }

// openGround never collides.
func openGround() stubGround { return stubGround{width: 1094, groundTop: -1 << 30, waterTop: -1 << 30} }

func testBounds() Bounds { return Bounds{MinX: 0, MaxX: 1094, MinY: 0} }

type harness struct {
	t     *testing.T
	sim   *Simulator
	clock *core.Clock
}

func newHarness(t *testing.T, ground Ground) *harness {
	t.Helper()
	clock, err := core.NewClock(core.DefaultTickInterval)
	if err != nil {
		t.Fatal(err)
	}
	return &harness{
		t:     t,
		sim:   NewSimulator(DefaultParams(), ground, testBounds(), zerolog.Nop()),
		clock: clock,
	}
}

func (h *harness) step() (core.Tick, []Event) {
	tick := h.clock.Advance(core.DefaultTickInterval)
	evs := h.sim.Step(tick)
	out := append([]Event(nil), evs...)
	h.sim.Compact()
	return tick, out
}

func TestLaunchPlacesBallAtBarrelMouth(t *testing.T) {
	p := New(Launch{Pivot: geom.V(35, 165), AngleDeg: 90, MuzzleVelocity: 10, BarrelLength: 50}, DefaultParams(), 0)
	if math.Abs(p.Position().X-35) > 1e-9 || math.Abs(p.Position().Y-215) > 1e-9 {
		t.Fatalf("unexpected launch position %+v", p.Position())
	}
	if math.Abs(p.Velocity().Y-5.1) > 1e-9 || math.Abs(p.Velocity().X) > 1e-9 {
		t.Fatalf("unexpected launch velocity %+v", p.Velocity())
	}
	if p.Angle() != 90 || p.State() != Flying {
		t.Fatalf("fresh projectile should fly at the launch angle, got %v %v", p.Angle(), p.State())
	}
}

func TestZeroVelocityFallsOutOfBottom(t *testing.T) {
	h := newHarness(t, openGround())
	id := h.sim.Fire(Launch{Pivot: geom.V(500, 100), BarrelLength: 50}, 0)
	p, ok := h.sim.Get(id)
	if !ok {
		t.Fatal("fired projectile must be live")
	}

	lastY := p.Position().Y
	for i := 0; i < 1000; i++ {
		_, evs := h.step()
		if p.Position().X != 550 {
			t.Fatalf("zero-velocity projectile drifted to x=%f", p.Position().X)
		}
		if p.Position().Y >= lastY {
			t.Fatalf("projectile must keep falling, y went %f -> %f", lastY, p.Position().Y)
		}
		lastY = p.Position().Y
		for _, e := range evs {
			if e.Kind == EventBounced {
				t.Fatal("no bounce expected without ground")
			}
		}
		if !p.Live() {
			break
		}
	}
	if p.Live() {
		t.Fatal("projectile never left the play area")
	}
	if p.Reason() != ReasonOutOfBounds {
		t.Fatalf("expected out-of-bounds exit, got %v", p.Reason())
	}
	if p.Position().Y >= -float64(DefaultParams().CollisionRadius) {
		t.Fatalf("exit must happen below the inflated bottom edge, y=%f", p.Position().Y)
	}
	if h.sim.Len() != 0 {
		t.Fatalf("registry should be empty, has %d", h.sim.Len())
	}
}

func TestBouncesDecayIntoSettleThenSingleDestroy(t *testing.T) {
	h := newHarness(t, stubGround{width: 1094, groundTop: 0, waterTop: -1 << 30, surface: terrain.SurfaceFlat})
	id := h.sim.Fire(Launch{Pivot: geom.V(500, 0), AngleDeg: 90, BarrelLength: 50}, 0)
	p, _ := h.sim.Get(id)
	params := h.sim.Params()

	var (
		bounces   int
		settled   int
		destroyed int
		settledAt time.Duration
		frozen    geom.Vec2
	)
	for i := 0; i < 5000 && destroyed == 0; i++ {
		tick, evs := h.step()
		for _, e := range evs {
			switch e.Kind {
			case EventBounced:
				bounces++
				if e.SpeedAfter >= e.SpeedBefore {
					t.Fatalf("bounce %d did not lose speed: %f -> %f", bounces, e.SpeedBefore, e.SpeedAfter)
				}
				if p.Velocity().Y < 0 {
					t.Fatal("a flat bounce must send the ball upward")
				}
			case EventSettled:
				settled++
				settledAt = tick.Now
				frozen = p.Position()
				if p.State() != Settling {
					t.Fatalf("expected Settling, got %v", p.State())
				}
				if p.Stagnant() != params.StagnationLimit {
					t.Fatalf("settled after %d stagnant bounces, want %d", p.Stagnant(), params.StagnationLimit)
				}
			case EventDestroyed:
				destroyed++
				if e.Reason != ReasonSettled {
					t.Fatalf("expected settle expiry, got %v", e.Reason)
				}
				if tick.Now-settledAt != params.SettleDelay {
					t.Fatalf("destroyed %v after settling, want %v", tick.Now-settledAt, params.SettleDelay)
				}
			}
		}
		if settled > 0 && p.Position() != frozen {
			t.Fatal("a settling projectile must not move")
		}
	}
	if bounces == 0 {
		t.Fatal("expected at least one bounce before settling")
	}
	if settled != 1 || destroyed != 1 {
		t.Fatalf("settled=%d destroyed=%d, want exactly one each", settled, destroyed)
	}

	for i := 0; i < 200; i++ {
		if _, evs := h.step(); len(evs) != 0 {
			t.Fatalf("destroyed projectile kept producing events: %+v", evs)
		}
	}
}

func TestWaterDestroysWithoutBounce(t *testing.T) {
	h := newHarness(t, stubGround{width: 1094, groundTop: 5, waterTop: 10})
	id := h.sim.Fire(Launch{Pivot: geom.V(400, 0), AngleDeg: 90, BarrelLength: 50}, 0)
	p, _ := h.sim.Get(id)
	for i := 0; i < 500 && p.Live(); i++ {
		_, evs := h.step()
		for _, e := range evs {
			if e.Kind == EventBounced {
				t.Fatal("water contact must not bounce")
			}
		}
	}
	if p.Reason() != ReasonWater {
		t.Fatalf("expected water destruction, got %v", p.Reason())
	}
	if p.Bounces() != 0 {
		t.Fatalf("expected no bounces, got %d", p.Bounces())
	}
}

func TestGracePeriodSuppressesRebounce(t *testing.T) {
	h := newHarness(t, stubGround{width: 1094, groundTop: 1000, waterTop: -1 << 30})
	h.sim.Fire(Launch{Pivot: geom.V(500, 100), MuzzleVelocity: 10}, 0)

	var bouncedOn []uint64
	for i := 0; i < 3; i++ {
		tick, evs := h.step()
		for _, e := range evs {
			if e.Kind == EventBounced {
				bouncedOn = append(bouncedOn, tick.Seq)
			}
		}
	}
	// 20ms ticks against a 40ms grace: bounce, suppressed, bounce.
	if len(bouncedOn) != 2 || bouncedOn[0] != 1 || bouncedOn[1] != 3 {
		t.Fatalf("expected bounces on ticks 1 and 3, got %v", bouncedOn)
	}
}

func TestSlopeBounceDirection(t *testing.T) {
	cases := []struct {
		surface terrain.Surface
		wantVX  float64
	}{
		{terrain.SurfaceRising, -1},
		{terrain.SurfaceFalling, 1},
	}
	for _, tc := range cases {
		t.Run(tc.surface.String(), func(t *testing.T) {
			h := newHarness(t, stubGround{width: 1094, groundTop: 1000, waterTop: -1 << 30, surface: tc.surface})
			// Come in right-and-down onto a rising slope, left-and-down onto a falling one.
			angle := 225.0
			if tc.wantVX < 0 {
				angle = -45
			}
			id := h.sim.Fire(Launch{Pivot: geom.V(500, 100), AngleDeg: angle, MuzzleVelocity: 10}, 0)
			p, _ := h.sim.Get(id)
			h.step()
			if p.Bounces() != 1 {
				t.Fatalf("expected one bounce, got %d", p.Bounces())
			}
			if math.Signbit(p.Velocity().X) != math.Signbit(tc.wantVX) {
				t.Fatalf("vx=%f has the wrong sign for %v", p.Velocity().X, tc.surface)
			}
			if p.Velocity().Y <= 0 {
				t.Fatalf("mountain bounces go upward, vy=%f", p.Velocity().Y)
			}
		})
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	h := newHarness(t, openGround())
	id := h.sim.Fire(Launch{Pivot: geom.V(500, 300), MuzzleVelocity: 10}, 0)
	if !h.sim.Destroy(id) {
		t.Fatal("first destroy must succeed")
	}
	if h.sim.Destroy(id) {
		t.Fatal("second destroy must be a no-op")
	}
	if _, evs := h.step(); len(evs) != 0 {
		t.Fatalf("removed projectile must not be stepped, got %+v", evs)
	}
	if h.sim.Destroy(arena.ID(9999)) {
		t.Fatal("unknown ids must be ignored")
	}
}

func TestEveryShotEndsExactlyOnce(t *testing.T) {
	cfg := terrain.DefaultConfig()
	gen, err := noise.New(pcore.NewRNG(11), cfg.NoiseSamples, cfg.NoiseOctaves)
	if err != nil {
		t.Fatal(err)
	}
	terr, err := terrain.Generate(cfg, gen, nil)
	if err != nil {
		t.Fatal(err)
	}
	bounds := Bounds{MinX: 0, MaxX: float64(terr.Geometry.TotalWidth), MinY: 0}

	rapid.Check(t, func(rt *rapid.T) {
		angle := rapid.Float64Range(0, 90).Draw(rt, "angle")
		velocity := rapid.IntRange(5, 30).Draw(rt, "velocity")

		clock, _ := core.NewClock(core.DefaultTickInterval)
		sim := NewSimulator(DefaultParams(), terr, bounds, zerolog.Nop())
		sim.Fire(Launch{Pivot: geom.V(35, 165), AngleDeg: angle, MuzzleVelocity: float64(velocity), BarrelLength: 50}, 0)

		destroyed := 0
		for i := 0; i < 20000 && sim.Len() > 0; i++ {
			for _, e := range sim.Step(clock.Advance(core.DefaultTickInterval)) {
				if e.Kind == EventDestroyed {
					destroyed++
				}
			}
			sim.Compact()
		}
		if destroyed != 1 {
			rt.Fatalf("expected exactly one destruction, got %d", destroyed)
		}
	})
}
