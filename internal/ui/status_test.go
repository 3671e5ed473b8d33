package ui

import (
	"testing"

	"balloon-artillery/internal/cannon"
	"balloon-artillery/internal/sims/artillery"
)

func TestStatusLinesMarkSelectedCannon(t *testing.T) {
	st := artillery.Status{
		Selected: cannon.Right,
		Left:     cannon.Cannon{Side: cannon.Left, MuzzleVelocity: 15, Elevation: 45},
		Right:    cannon.Cannon{Side: cannon.Right, MuzzleVelocity: 22, Elevation: 30},
		Wind:     -4,
		Popped:   2,
	}
	lines := StatusLines(st)
	want := []string{
		"Left muzzle velocity = 15",
		"Right muzzle velocity = 22 *",
		"Wind velocity = -4",
		"Elevation = 45.0 / 30.0",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if lines[5] != "Balloons 0  popped 2  escaped 0" {
		t.Fatalf("unexpected balloon line %q", lines[5])
	}
}
