package game

import (
	"tilt-maze/internal/input"
	"tilt-maze/internal/pose"
)

// TimeStep is the fixed physics step per tick, independent of frame time.
const TimeStep float32 = 1.0 / 60

// Stepper advances the simulation.
type Stepper interface {
	Step(dt float32)
}

// Surface draws the session once per tick.
type Surface interface {
	Render(s *Session)
}

// Loop runs one frame of the game per Tick.
type Loop struct {
	Session *Session
	Stepper Stepper
	Surface Surface

	Keyboard input.Keyboard
	Mapper   input.PoseMapper
	// Poses, if set, is read once per tick before the physics step.
	Poses *pose.Slot
}

// NewLoop returns a loop stepping the session's own world.
func NewLoop(s *Session, surface Surface) *Loop {
	return &Loop{
		Session:  s,
		Stepper:  s.World,
		Surface:  surface,
		Keyboard: input.NewKeyboard(),
		Mapper:   input.NewPoseMapper(0),
	}
}

// Tick applies the newest pose sample, steps physics by TimeStep, syncs mirrors, zeroes the
// player's lateral velocity and renders once.
func (l *Loop) Tick() {
	if l.Poses != nil {
		if p, ok := l.Poses.Take(); ok {
			l.Mapper.Apply(l.Session.Player, p)
		}
	}
	l.Stepper.Step(TimeStep)
	l.Session.SyncMirrors()
	l.Session.Player.HoldLateral()
	l.Session.Ticks++
	l.Surface.Render(l.Session)
}

// HandleKey forwards a key event to the keyboard adapter.
func (l *Loop) HandleKey(code int) bool {
	return l.Keyboard.HandleKey(l.Session.Player, code)
}
