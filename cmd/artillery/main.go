//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"balloon-artillery/internal/app"
	"balloon-artillery/internal/config"
	"balloon-artillery/internal/logging"
	"balloon-artillery/internal/sims/artillery"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log := logging.Console(cfg.LogLevel, nil)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal().Err(err).Msg("open log file")
		}
		defer f.Close()
		log = logging.Console(cfg.LogLevel, f)
	}

	gameCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.Seed != 0 {
		gameCfg.Seed = cfg.Seed
	}

	world, err := artillery.NewWithConfig(gameCfg, artillery.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("build world")
	}

	game := app.New(world, cfg, log)
	size := world.Size()

	ebiten.SetWindowTitle("Balloon Artillery")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("run game")
	}
}
