package game

import (
	"tilt-maze/internal/mathx"
	"tilt-maze/internal/physics"
)

// Mirror is a static body that takes its orientation from Source every frame. Its position is
// fixed at setup.
type Mirror struct {
	Body   *physics.Body
	Source *physics.Body
}

// Sync copies the source orientation as axis and angle.
func (m Mirror) Sync() {
	axis, angle := m.Source.Orientation.ToAxisAngle()
	m.Body.Orientation = mathx.FromAxisAngle(axis, angle)
}
