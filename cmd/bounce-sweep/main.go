package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"balloon-artillery/internal/config"
	"balloon-artillery/internal/logging"
	"balloon-artillery/internal/sims/artillery"
)

func main() {
	configPath := flag.String("config", "", "game config file (json, yaml or toml)")
	seed := flag.Int64("seed", 0, "terrain seed, 0 keeps the configured seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel shot evaluations")
	maxTicks := flag.Int("max-ticks", 5000, "tick cap per shot")
	velocities := flag.String("velocities", "5,10,15,20,25,30", "comma separated muzzle velocities")
	elevations := flag.String("elevations", "15,30,45,60,75", "comma separated elevations in degrees")
	restitutions := flag.String("restitutions", "0.75", "comma separated restitution coefficients")
	logLevel := flag.String("log-level", "info", "trace, debug, info, warn or error")
	flag.Parse()

	log := logging.Console(*logLevel, nil).With().Str("run", uuid.NewString()).Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	vs, err := parseInts(*velocities)
	if err != nil {
		log.Fatal().Err(err).Msg("parse velocities")
	}
	es, err := parseFloats(*elevations)
	if err != nil {
		log.Fatal().Err(err).Msg("parse elevations")
	}
	rs, err := parseFloats(*restitutions)
	if err != nil {
		log.Fatal().Err(err).Msg("parse restitutions")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	candidates := artillery.ShotGrid(vs, es, rs)
	log.Info().Int64("seed", cfg.Seed).Int("candidates", len(candidates)).Int("workers", *workers).Msg("sweep started")

	results, err := artillery.BounceSweep(ctx, cfg, candidates, *workers, *maxTicks)
	if err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}

	fmt.Printf("%8s %9s %11s %9s %7s %7s %7s  %s\n", "velocity", "elevation", "restitution", "landing x", "bounces", "settle", "ticks", "reason")
	for _, r := range results {
		reason := r.Reason.String()
		if !r.Finished {
			reason = "tick cap"
		}
		fmt.Printf("%8d %9.1f %11.2f %9.1f %7d %7d %7d  %s\n",
			r.Candidate.MuzzleVelocity, r.Candidate.Elevation, r.Candidate.Restitution,
			r.LandingX, r.Bounces, r.SettleTicks, r.Ticks, reason)
	}
	log.Info().Msg("sweep finished")
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(list string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
