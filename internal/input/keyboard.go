package input

// Key codes understood by the keyboard adapter. Render surfaces translate their native key
// events into these.
const (
	KeyCodeLeft  = 37
	KeyCodeRight = 39
)

// StepSize is how far one key press moves the player.
const StepSize float32 = 1

// Keyboard moves the player one step per key event. A move is rejected, not clamped, when the
// player already sits at the boundary in that direction.
type Keyboard struct {
	Step float32
}

// NewKeyboard returns a keyboard adapter with the default step.
func NewKeyboard() Keyboard {
	return Keyboard{Step: StepSize}
}

// HandleKey applies code to p and reports whether the player moved.
func (k Keyboard) HandleKey(p *Player, code int) bool {
	switch code {
	case KeyCodeLeft:
		if p.X() > p.Min {
			p.Body.Position.X -= k.Step
			return true
		}
	case KeyCodeRight:
		if p.X() < p.Max {
			p.Body.Position.X += k.Step
			return true
		}
	}
	return false
}
