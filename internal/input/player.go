// Package input turns key presses and pose samples into lateral moves of the player log.
package input

import (
	"tilt-maze/internal/mathx"
	"tilt-maze/internal/physics"
)

// Lateral bounds of the player.
const (
	MinX float32 = -5
	MaxX float32 = 5
)

// Player is the controllable log resting on the seesaw. Only its x position is driven by input.
type Player struct {
	Body *physics.Body
	Min  float32
	Max  float32
}

// NewPlayer wraps body with the default lateral range.
func NewPlayer(body *physics.Body) *Player {
	return &Player{Body: body, Min: MinX, Max: MaxX}
}

// X returns the current lateral position.
func (p *Player) X() float32 {
	return p.Body.Position.X
}

// SetX moves the player to x, clamped to the lateral range.
func (p *Player) SetX(x float32) {
	p.Body.Position.X = mathx.Clamp(x, p.Min, p.Max)
}

// HoldLateral undoes the lateral part of a physics step: the x velocity is dropped and any
// drift past the lateral range is clamped back.
func (p *Player) HoldLateral() {
	p.Body.Velocity.X = 0
	p.SetX(p.Body.Position.X)
}
