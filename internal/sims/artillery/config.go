package artillery

import (
	"strconv"
	"time"

	"balloon-artillery/internal/balloon"
	"balloon-artillery/internal/cannon"
	"balloon-artillery/internal/core"
	"balloon-artillery/internal/projectile"
	"balloon-artillery/internal/terrain"
	"balloon-artillery/internal/wind"
)

// Config aggregates every tunable of the artillery world.
type Config struct {
	Seed int64 `mapstructure:"seed"`

	// TickInterval is the nominal tick all per-tick rates are expressed in.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// AreaMaxY is the top of the play area. Balloons escape above it.
	AreaMaxY float64 `mapstructure:"area_max_y"`

	Terrain    terrain.Config      `mapstructure:"terrain"`
	Projectile projectile.Params   `mapstructure:"projectile"`
	Cannon     cannon.Config       `mapstructure:"cannon"`
	Balloon    balloon.Params      `mapstructure:"balloon"`
	Spawn      balloon.SpawnConfig `mapstructure:"spawn"`
	Wind       wind.Config         `mapstructure:"wind"`
}

// DefaultConfig returns the standard game.
func DefaultConfig() Config {
	return Config{
		Seed:         1337,
		TickInterval: core.DefaultTickInterval,
		AreaMaxY:     615,
		Terrain:      terrain.DefaultConfig(),
		Projectile:   projectile.DefaultParams(),
		Cannon:       cannon.DefaultConfig(),
		Balloon:      balloon.DefaultParams(),
		Spawn:        balloon.DefaultSpawnConfig(),
		Wind:         wind.DefaultConfig(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed or out-of-range values keep the default.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["tick_interval"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			c.TickInterval = parsed
		}
	}
	if v, ok := cfg["scale_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Terrain.ScaleFactor = parsed
		}
	}
	if v, ok := cfg["noise_octaves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Terrain.NoiseOctaves = parsed
		}
	}
	if v, ok := cfg["gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Projectile.Gravity = parsed
		}
	}
	if v, ok := cfg["restitution"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			c.Projectile.Restitution = parsed
		}
	}
	if v, ok := cfg["muzzle_velocity"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= c.Cannon.MinVelocity && parsed <= c.Cannon.MaxVelocity {
			c.Cannon.InitialVelocity = parsed
		}
	}
	if v, ok := cfg["wind_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Wind.MaxVelocity = parsed
		}
	}
	if v, ok := cfg["rise_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Balloon.RiseRate = parsed
		}
	}
	if v, ok := cfg["spawn_interval"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			c.Spawn.Interval = parsed
		}
	}
	return c
}
