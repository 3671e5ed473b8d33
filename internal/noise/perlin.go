// Package noise implements 1D value noise summed over octaves, the layered
// "Perlin" profile used to roughen the terrain.
package noise

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSize is returned for a sample series with fewer than one entry.
	ErrInvalidSize = errors.New("noise: sample series size must be positive")
	// ErrInvalidOctaves is returned when fewer than one octave is requested.
	ErrInvalidOctaves = errors.New("noise: octave count must be positive")
)

// Source provides uniform samples in [0, 1). *rand.Rand and *core.RNG both
// satisfy it.
type Source interface {
	Float64() float64
}

// Perlin1D is a periodic 1D noise function over a fixed series of random
// samples.
type Perlin1D struct {
	src     Source
	samples []float64
	octaves int
}

// New draws size samples from src and returns a generator summing octaves
// layers.
func New(src Source, size, octaves int) (*Perlin1D, error) {
	if src == nil {
		return nil, errors.New("noise: nil random source")
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if octaves <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOctaves, octaves)
	}
	p := &Perlin1D{src: src, samples: make([]float64, size), octaves: octaves}
	p.Reset()
	return p, nil
}

// Reset redraws the whole sample series so subsequent output is independent of
// what came before.
func (p *Perlin1D) Reset() {
	for i := range p.samples {
		p.samples[i] = p.src.Float64()
	}
}

// Size returns the sample series length, which is also the period.
func (p *Perlin1D) Size() int { return len(p.samples) }

// Octaves returns the number of summed layers.
func (p *Perlin1D) Octaves() int { return p.octaves }

// Base evaluates a single layer: cosine interpolation between neighbouring
// samples, wrapping modulo the series size.
func (p *Perlin1D) Base(x float64) float64 {
	n := len(p.samples)
	fl := math.Floor(x)
	a := x - fl
	i := int(math.Mod(fl, float64(n)))
	if i < 0 {
		i += n
	}
	j := i + 1
	if j == n {
		j = 0
	}
	return cerp(p.samples[i], p.samples[j], a)
}

// At sums the configured octaves: layer k contributes Base(x*2^k)/2^k. The
// result stays in [0, 1) because the amplitudes sum to 1 - 2^-octaves.
func (p *Perlin1D) At(x float64) float64 {
	v := 0.0
	freq := 1.0
	for k := 1; k <= p.octaves; k++ {
		freq *= 2
		v += p.Base(x*freq) / freq
	}
	return v
}

func cerp(a, b, t float64) float64 {
	g := (1 - math.Cos(math.Pi*t)) / 2
	return (1-g)*a + g*b
}
