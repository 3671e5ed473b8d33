package ui

import (
	"fmt"

	"balloon-artillery/internal/cannon"
	"balloon-artillery/internal/sims/artillery"
)

// StatusLines formats the game status for the HUD. The selected cannon is
// marked with a trailing star.
func StatusLines(st artillery.Status) []string {
	mark := func(s cannon.Side) string {
		if s == st.Selected {
			return " *"
		}
		return ""
	}
	return []string{
		fmt.Sprintf("Left muzzle velocity = %d%s", st.Left.MuzzleVelocity, mark(cannon.Left)),
		fmt.Sprintf("Right muzzle velocity = %d%s", st.Right.MuzzleVelocity, mark(cannon.Right)),
		fmt.Sprintf("Wind velocity = %d", st.Wind),
		fmt.Sprintf("Elevation = %.1f / %.1f", st.Left.Elevation, st.Right.Elevation),
		fmt.Sprintf("Shots %d  in flight %d", st.Fired, st.Projectiles),
		fmt.Sprintf("Balloons %d  popped %d  escaped %d", st.Balloons, st.Popped, st.Escaped),
	}
}
