package app

import "flag"

// Config represents the command-line parameters for the game.
type Config struct {
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
	LogLevel   string
	LogFile    string
	HUDWidth   int
}

// NewConfig returns a Config populated with sensible defaults. A zero seed
// keeps the seed from the loaded configuration.
func NewConfig() *Config {
	return &Config{Scale: 1, TPS: 50, LogLevel: "info", HUDWidth: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "game config file (json, yaml or toml)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the first game, 0 keeps the configured seed")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "mirror logs into this file")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels, 0 hides it")
}
