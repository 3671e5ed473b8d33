// Package config loads the artillery game configuration from an optional
// file and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"balloon-artillery/internal/sims/artillery"
)

// EnvPrefix namespaces environment overrides, e.g. ARTILLERY_WIND_MAX_VELOCITY.
const EnvPrefix = "ARTILLERY"

// Load resolves the game configuration. Defaults come from
// artillery.DefaultConfig, the file at path overrides them and ARTILLERY_*
// environment variables override both. An empty path skips the file; a path
// that cannot be read is an error. The format follows the file extension.
func Load(path string) (artillery.Config, error) {
	v := viper.New()
	setDefaults(v, artillery.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return artillery.Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := artillery.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return artillery.Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides resolve even
// when no file mentions them.
func setDefaults(v *viper.Viper, d artillery.Config) {
	v.SetDefault("seed", d.Seed)
	v.SetDefault("tick_interval", d.TickInterval)
	v.SetDefault("area_max_y", d.AreaMaxY)

	t := d.Terrain
	v.SetDefault("terrain.scale_factor", t.ScaleFactor)
	v.SetDefault("terrain.platform_width", t.PlatformWidth)
	v.SetDefault("terrain.outer_mountain_width", t.OuterMountainWidth)
	v.SetDefault("terrain.inner_mountain_width", t.InnerMountainWidth)
	v.SetDefault("terrain.valley_width", t.ValleyWidth)
	v.SetDefault("terrain.max_height", t.MaxHeight)
	v.SetDefault("terrain.platform_height", t.PlatformHeight)
	v.SetDefault("terrain.min_height", t.MinHeight)
	v.SetDefault("terrain.water_top_fraction", t.WaterTopFraction)
	v.SetDefault("terrain.noise_samples", t.NoiseSamples)
	v.SetDefault("terrain.noise_octaves", t.NoiseOctaves)
	v.SetDefault("terrain.ground_smoothness", t.GroundSmoothness)
	v.SetDefault("terrain.water_smoothness", t.WaterSmoothness)
	v.SetDefault("terrain.flat_noise_height", t.FlatNoiseHeight)
	v.SetDefault("terrain.slightly_steep_noise_height", t.SlightlySteepNoiseHeight)
	v.SetDefault("terrain.very_steep_noise_height", t.VerySteepNoiseHeight)
	v.SetDefault("terrain.water_noise_height", t.WaterNoiseHeight)

	p := d.Projectile
	v.SetDefault("projectile.gravity", p.Gravity)
	v.SetDefault("projectile.velocity_factor", p.VelocityFactor)
	v.SetDefault("projectile.restitution", p.Restitution)
	v.SetDefault("projectile.bounce_delay", p.BounceDelay)
	v.SetDefault("projectile.settle_delay", p.SettleDelay)
	v.SetDefault("projectile.stagnation_threshold", p.StagnationThreshold)
	v.SetDefault("projectile.stagnation_limit", p.StagnationLimit)
	v.SetDefault("projectile.collision_radius", p.CollisionRadius)

	c := d.Cannon
	v.SetDefault("cannon.barrel_length", c.BarrelLength)
	v.SetDefault("cannon.initial_elevation", c.InitialElevation)
	v.SetDefault("cannon.min_elevation", c.MinElevation)
	v.SetDefault("cannon.max_elevation", c.MaxElevation)
	v.SetDefault("cannon.elevation_rate", c.ElevationRate)
	v.SetDefault("cannon.initial_velocity", c.InitialVelocity)
	v.SetDefault("cannon.min_velocity", c.MinVelocity)
	v.SetDefault("cannon.max_velocity", c.MaxVelocity)
	v.SetDefault("cannon.switch_delay", c.SwitchDelay)
	v.SetDefault("cannon.fire_delay", c.FireDelay)
	v.SetDefault("cannon.velocity_delay", c.VelocityDelay)

	// balloon.collision_radius is always taken from the projectile.
	b := d.Balloon
	v.SetDefault("balloon.body_segment", b.BodySegment)
	v.SetDefault("balloon.string_segment", b.StringSegment)
	v.SetDefault("balloon.iterations", b.Iterations)
	v.SetDefault("balloon.rise_rate", b.RiseRate)
	v.SetDefault("balloon.wind_factor", b.WindFactor)
	v.SetDefault("balloon.center_tolerance", b.CenterTolerance)
	v.SetDefault("balloon.string_clearance", b.StringClearance)
	v.SetDefault("balloon.collision_buffer", b.CollisionBuffer)
	v.SetDefault("balloon.push_factor", b.PushFactor)

	v.SetDefault("spawn.interval", d.Spawn.Interval)
	v.SetDefault("spawn.inset", d.Spawn.Inset)

	v.SetDefault("wind.max_velocity", d.Wind.MaxVelocity)
	v.SetDefault("wind.interval", d.Wind.Interval)
}
