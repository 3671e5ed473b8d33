package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balloon-artillery/internal/sims/artillery"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, artillery.DefaultConfig(), cfg)
}

func TestLoad_JSONFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artillery.json")
	body := `{
		"seed": 99,
		"tick_interval": "25ms",
		"projectile": { "restitution": 0.5, "settle_delay": "3s" },
		"wind": { "max_velocity": 4 }
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	def := artillery.DefaultConfig()
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 25*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 0.5, cfg.Projectile.Restitution)
	assert.Equal(t, 3*time.Second, cfg.Projectile.SettleDelay)
	assert.Equal(t, 4, cfg.Wind.MaxVelocity)

	// Untouched keys keep their defaults, including ones no file can set.
	assert.Equal(t, def.Projectile.Gravity, cfg.Projectile.Gravity)
	assert.Equal(t, def.Cannon.LeftPivot, cfg.Cannon.LeftPivot)
	assert.Equal(t, def.Balloon.Gravity, cfg.Balloon.Gravity)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artillery.yaml")
	body := "terrain:\n  scale_factor: 0.5\nspawn:\n  interval: 500ms\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Terrain.ScaleFactor)
	assert.Equal(t, 500*time.Millisecond, cfg.Spawn.Interval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artillery.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"wind": {"max_velocity": 4}}`), 0o644))

	t.Setenv("ARTILLERY_WIND_MAX_VELOCITY", "7")
	t.Setenv("ARTILLERY_CANNON_FIRE_DELAY", "1s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Wind.MaxVelocity)
	assert.Equal(t, time.Second, cfg.Cannon.FireDelay)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_ResultBuildsAWorld(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	w, err := artillery.NewWithConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "artillery", w.Name())
}
