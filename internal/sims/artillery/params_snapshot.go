package artillery

import "balloon-artillery/internal/core"

// Parameters lists the tunables of the current game for the overlay.
func (w *World) Parameters() core.ParameterSnapshot {
	cfg := w.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.Int64Param("seed", "Seed", w.seed),
				core.DurationParam("tick_interval", "Tick interval", cfg.TickInterval),
				core.IntParam("width", "Width", w.geom.TotalWidth),
				core.FloatParam("area_max_y", "Ceiling", cfg.AreaMaxY),
			},
		},
		{
			Name:    "Terrain",
			Summary: "Two mountains around a lake, roughened with Perlin noise.",
			Params: []core.Parameter{
				core.FloatParam("scale_factor", "Scale factor", cfg.Terrain.ScaleFactor),
				core.IntParam("noise_octaves", "Noise octaves", cfg.Terrain.NoiseOctaves),
				core.IntParam("max_mountain_height", "Tallest column", w.terrain.MaxMountainHeightWithNoise),
				core.IntParam("water_top_y", "Water level", w.geom.WaterTopY),
			},
		},
		{
			Name: "Projectiles",
			Params: []core.Parameter{
				core.FloatParam("gravity", "Gravity", cfg.Projectile.Gravity),
				core.FloatParam("restitution", "Restitution", cfg.Projectile.Restitution),
				core.DurationParam("settle_delay", "Settle delay", cfg.Projectile.SettleDelay),
				core.IntParam("collision_radius", "Collision radius", cfg.Projectile.CollisionRadius),
			},
		},
		{
			Name: "Cannons",
			Params: []core.Parameter{
				core.IntParam("muzzle_velocity", "Initial muzzle velocity", cfg.Cannon.InitialVelocity),
				core.FloatParam("elevation", "Initial elevation", cfg.Cannon.InitialElevation),
				core.DurationParam("fire_delay", "Fire cooldown", cfg.Cannon.FireDelay),
			},
		},
		{
			Name: "Balloons",
			Params: []core.Parameter{
				core.FloatParam("rise_rate", "Rise rate", cfg.Balloon.RiseRate),
				core.FloatParam("wind_factor", "Wind factor", cfg.Balloon.WindFactor),
				core.IntParam("iterations", "Relaxation passes", cfg.Balloon.Iterations),
				core.DurationParam("spawn_interval", "Spawn interval", cfg.Spawn.Interval),
			},
		},
		{
			Name: "Wind",
			Params: []core.Parameter{
				core.IntParam("wind_max", "Max wind", cfg.Wind.MaxVelocity),
				core.DurationParam("wind_interval", "Change interval", cfg.Wind.Interval),
			},
		},
	}}
}
