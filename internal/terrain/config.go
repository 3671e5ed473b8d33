package terrain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry reports a terrain configuration that cannot produce a
// profile (non-positive widths, inverted heights).
var ErrInvalidGeometry = errors.New("terrain: invalid geometry")

// Config holds the unscaled section sizes and the noise tunables.
type Config struct {
	ScaleFactor float64 `mapstructure:"scale_factor"`

	PlatformWidth      int `mapstructure:"platform_width"`
	OuterMountainWidth int `mapstructure:"outer_mountain_width"`
	InnerMountainWidth int `mapstructure:"inner_mountain_width"`
	ValleyWidth        int `mapstructure:"valley_width"`

	MaxHeight      int `mapstructure:"max_height"`
	PlatformHeight int `mapstructure:"platform_height"`
	MinHeight      int `mapstructure:"min_height"`

	// WaterTopFraction positions the water baseline relative to the platform.
	WaterTopFraction float64 `mapstructure:"water_top_fraction"`

	NoiseSamples int `mapstructure:"noise_samples"`
	NoiseOctaves int `mapstructure:"noise_octaves"`

	GroundSmoothness float64 `mapstructure:"ground_smoothness"`
	WaterSmoothness  float64 `mapstructure:"water_smoothness"`

	FlatNoiseHeight          float64 `mapstructure:"flat_noise_height"`
	SlightlySteepNoiseHeight float64 `mapstructure:"slightly_steep_noise_height"`
	VerySteepNoiseHeight     float64 `mapstructure:"very_steep_noise_height"`
	WaterNoiseHeight         float64 `mapstructure:"water_noise_height"`
}

// DefaultConfig returns the standard two-mountain layout.
func DefaultConfig() Config {
	return Config{
		ScaleFactor:              1,
		PlatformWidth:            187,
		OuterMountainWidth:       140,
		InnerMountainWidth:       120,
		ValleyWidth:              200,
		MaxHeight:                275,
		PlatformHeight:           135,
		MinHeight:                40,
		WaterTopFraction:         0.75,
		NoiseSamples:             10000,
		NoiseOctaves:             4,
		GroundSmoothness:         5 * math.Pi,
		WaterSmoothness:          14 * math.Pi,
		FlatNoiseHeight:          30,
		SlightlySteepNoiseHeight: 40,
		VerySteepNoiseHeight:     50,
		WaterNoiseHeight:         50,
	}
}

// Geometry is the scaled layout plus every boundary derived from it.
type Geometry struct {
	PlatformWidth      int
	OuterMountainWidth int
	InnerMountainWidth int
	ValleyWidth        int

	MaxHeight      int
	PlatformHeight int
	MinHeight      int

	TotalWidth  int
	WaterLeftX  int
	WaterRightX int
	WaterTopY   int

	// Section boundaries used to classify bounce surfaces.
	Platform1RightX int
	Platform2LeftX  int
	ValleyLeftX     int
	ValleyRightX    int
	Mountain1TopX   int
	Mountain2TopX   int

	// MaxHeightWithNoise bounds the tallest possible noisy column.
	MaxHeightWithNoise int
}

// Geometry applies the scale factor and derives the section boundaries.
func (c Config) Geometry() (Geometry, error) {
	s := c.ScaleFactor
	if s <= 0 {
		return Geometry{}, fmt.Errorf("%w: scale factor %v", ErrInvalidGeometry, s)
	}
	scale := func(v int) int { return int(float64(v) * s) }
	g := Geometry{
		PlatformWidth:      scale(c.PlatformWidth),
		OuterMountainWidth: scale(c.OuterMountainWidth),
		InnerMountainWidth: scale(c.InnerMountainWidth),
		ValleyWidth:        scale(c.ValleyWidth),
		MaxHeight:          scale(c.MaxHeight),
		PlatformHeight:     scale(c.PlatformHeight),
		MinHeight:          scale(c.MinHeight),
	}
	switch {
	case g.PlatformWidth <= 0, g.OuterMountainWidth <= 0, g.InnerMountainWidth <= 0, g.ValleyWidth <= 0:
		return Geometry{}, fmt.Errorf("%w: section widths must be positive", ErrInvalidGeometry)
	case g.MinHeight < 0 || g.MinHeight > g.PlatformHeight || g.PlatformHeight > g.MaxHeight:
		return Geometry{}, fmt.Errorf("%w: heights must satisfy 0 <= min <= platform <= max", ErrInvalidGeometry)
	}

	g.WaterLeftX = g.PlatformWidth + g.OuterMountainWidth
	g.WaterRightX = g.WaterLeftX + 2*g.InnerMountainWidth + g.ValleyWidth
	g.TotalWidth = g.WaterRightX + g.OuterMountainWidth + g.PlatformWidth
	g.WaterTopY = int(float64(g.PlatformHeight) * c.WaterTopFraction)

	g.Platform1RightX = g.PlatformWidth
	g.Platform2LeftX = g.WaterRightX + g.OuterMountainWidth
	g.ValleyLeftX = g.WaterLeftX + g.InnerMountainWidth
	g.ValleyRightX = g.WaterRightX - g.InnerMountainWidth
	g.Mountain1TopX = g.Platform1RightX + g.OuterMountainWidth
	g.Mountain2TopX = g.Mountain1TopX + 2*g.InnerMountainWidth + g.ValleyWidth

	g.MaxHeightWithNoise = g.MaxHeight + int(c.VerySteepNoiseHeight*s)
	return g, nil
}
