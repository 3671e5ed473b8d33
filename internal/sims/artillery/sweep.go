package artillery

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"balloon-artillery/internal/cannon"
	"balloon-artillery/internal/core"
	"balloon-artillery/internal/projectile"
	"balloon-artillery/internal/terrain"
)

// ShotCandidate is one left-cannon setting to evaluate.
type ShotCandidate struct {
	MuzzleVelocity int
	Elevation      float64
	Restitution    float64
}

// ShotResult describes how a single shot ended.
type ShotResult struct {
	Candidate ShotCandidate
	// LandingX is where the shot was destroyed, or its position when the
	// tick cap ran out.
	LandingX float64
	Bounces  int
	// SettleTicks is the tick the shot settled on, 0 if it never did.
	SettleTicks int
	Ticks       int
	Reason      projectile.Reason
	Finished    bool
}

// ShotGrid returns the cartesian product of the given settings.
func ShotGrid(velocities []int, elevations, restitutions []float64) []ShotCandidate {
	out := make([]ShotCandidate, 0, len(velocities)*len(elevations)*len(restitutions))
	for _, v := range velocities {
		for _, e := range elevations {
			for _, r := range restitutions {
				out = append(out, ShotCandidate{MuzzleVelocity: v, Elevation: e, Restitution: r})
			}
		}
	}
	return out
}

// FlyShot fires one shot from the left cannon over terr and steps it at the
// nominal tick until it is destroyed or maxTicks pass.
func FlyShot(cfg Config, terr *terrain.Terrain, c ShotCandidate, maxTicks int) (ShotResult, error) {
	clock, err := core.NewClock(cfg.TickInterval)
	if err != nil {
		return ShotResult{}, fmt.Errorf("artillery: %w", err)
	}
	cc := cfg.Cannon
	cc.InitialVelocity = c.MuzzleVelocity
	cc.InitialElevation = c.Elevation
	pp := cfg.Projectile
	pp.Restitution = c.Restitution

	bounds := projectile.Bounds{MinX: 0, MaxX: float64(terr.Geometry.TotalWidth), MinY: 0}
	shots := projectile.NewSimulator(pp, terr, bounds, zerolog.Nop())
	battery := cannon.NewBattery(cc)

	res := ShotResult{Candidate: c}
	tick := clock.Advance(cfg.TickInterval)
	launch, ok := battery.Apply(cannon.Input{Fire: true}, tick)
	if !ok {
		return res, fmt.Errorf("artillery: cannon refused to fire")
	}
	id := shots.Fire(launch, tick.Now)

	for i := 0; i < maxTicks; i++ {
		if i > 0 {
			tick = clock.Advance(cfg.TickInterval)
		}
		res.Ticks = int(tick.Seq)
		for _, ev := range shots.Step(tick) {
			if ev.ID != id {
				continue
			}
			switch ev.Kind {
			case projectile.EventBounced:
				res.Bounces++
			case projectile.EventSettled:
				res.SettleTicks = int(tick.Seq)
			case projectile.EventDestroyed:
				res.LandingX = ev.Pos.X
				res.Reason = ev.Reason
				res.Finished = true
				return res, nil
			}
		}
	}
	if p, ok := shots.Get(id); ok {
		res.LandingX = p.Position().X
	}
	return res, nil
}

// BounceSweep generates the terrain of cfg once and flies every candidate
// over it, at most workers at a time. Results keep the candidate order.
func BounceSweep(ctx context.Context, cfg Config, candidates []ShotCandidate, workers, maxTicks int) ([]ShotResult, error) {
	w, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	terr := w.Terrain()

	results := make([]ShotResult, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := FlyShot(cfg, terr, c, maxTicks)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
