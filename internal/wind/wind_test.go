package wind

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"

	"balloon-artillery/internal/core"
	pcore "balloon-artillery/pkg/core"
)

type fixedSource struct{ draws []int }

func (f *fixedSource) IntN(n int) int {
	v := f.draws[0] % n
	f.draws = f.draws[1:]
	return v
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Config{MaxVelocity: -1, Interval: time.Second}, pcore.NewRNG(1), zerolog.Nop()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := New(Config{MaxVelocity: 3}, pcore.NewRNG(1), zerolog.Nop()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero interval, got %v", err)
	}
	if _, err := New(DefaultConfig(), nil, zerolog.Nop()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for nil source, got %v", err)
	}
}

func TestChangesOnFirstTickThenEveryInterval(t *testing.T) {
	src := &fixedSource{draws: []int{0, 22, 11, 5}}
	m, err := New(DefaultConfig(), src, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	clock, _ := core.NewClock(core.DefaultTickInterval)

	var changedAt []uint64
	var values []int
	for i := 0; i < 201; i++ { // 4.02s
		tick := clock.Advance(core.DefaultTickInterval)
		if m.Step(tick) {
			changedAt = append(changedAt, tick.Seq)
			values = append(values, m.Velocity())
		}
	}
	if len(changedAt) != 3 || changedAt[0] != 1 || changedAt[1] != 101 || changedAt[2] != 201 {
		t.Fatalf("unexpected change ticks %v", changedAt)
	}
	want := []int{-11, 11, 0}
	for i, v := range want {
		if values[i] != v {
			t.Fatalf("change %d: velocity %d, want %d", i, values[i], v)
		}
	}
}

func TestResetCalmsAndRearms(t *testing.T) {
	m, _ := New(DefaultConfig(), pcore.NewRNG(3), zerolog.Nop())
	m.Step(core.Tick{Now: time.Second})
	m.Reset()
	if m.Velocity() != 0 {
		t.Fatal("Reset must calm the wind")
	}
	if !m.Step(core.Tick{Now: time.Second + time.Millisecond}) {
		t.Fatal("first Step after Reset must draw a new velocity")
	}
}

func TestVelocityStaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxV := rapid.IntRange(0, 50).Draw(rt, "max")
		seed := rapid.Int64().Draw(rt, "seed")
		m, err := New(Config{MaxVelocity: maxV, Interval: 20 * time.Millisecond}, pcore.NewRNG(seed), zerolog.Nop())
		if err != nil {
			rt.Fatal(err)
		}
		clock, _ := core.NewClock(core.DefaultTickInterval)
		for i := 0; i < 100; i++ {
			m.Step(clock.Advance(core.DefaultTickInterval))
			if v := m.Velocity(); v < -maxV || v > maxV {
				rt.Fatalf("velocity %d outside ±%d", v, maxV)
			}
		}
	})
}
