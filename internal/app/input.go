//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"balloon-artillery/internal/cannon"
)

// Keyboard reads held keys: Tab switches cannon, Space fires, Up and Down
// elevate, Right and Left change muzzle velocity. Cooldowns in the battery
// turn held keys into repeats.
type Keyboard struct{}

// Poll samples the keyboard for one tick.
func (Keyboard) Poll() cannon.Input {
	return cannon.Input{
		SwitchCannon:     ebiten.IsKeyPressed(ebiten.KeyTab),
		Fire:             ebiten.IsKeyPressed(ebiten.KeySpace),
		ElevateUp:        ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ElevateDown:      ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		IncreaseVelocity: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		DecreaseVelocity: ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
	}
}
