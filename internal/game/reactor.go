package game

import (
	"fmt"

	"tilt-maze/internal/physics"
)

// Material tags that end a session.
const (
	TagGround = "ground"
	TagGoal   = "goal"
)

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Message is the text shown to the player for o.
func (o Outcome) Message() string {
	switch o {
	case OutcomeWin:
		return "Game Clear"
	case OutcomeLoss:
		return "Game Over"
	}
	return ""
}

// State is the session state. Ended is absorbing.
type State int

const (
	StatePlaying State = iota
	StateEnded
)

func (s State) String() string {
	if s == StateEnded {
		return "ended"
	}
	return "playing"
}

// Reactor watches the ball's collisions and ends the session on the first ground or goal hit.
type Reactor struct {
	GroundTag string
	GoalTag   string

	state   State
	outcome Outcome

	onEnd     []func(Outcome)
	onContact []func(tag string)
}

// NewReactor returns a reactor in the Playing state using the default tags.
func NewReactor() *Reactor {
	return &Reactor{GroundTag: TagGround, GoalTag: TagGoal}
}

// Attach subscribes the reactor to ball's collisions.
func (r *Reactor) Attach(ball *physics.Body) {
	ball.OnCollide(func(ev physics.CollideEvent) {
		r.React(ev.Target.MaterialName())
	})
}

// OnEnd registers fn to run once when the session ends.
func (r *Reactor) OnEnd(fn func(Outcome)) {
	r.onEnd = append(r.onEnd, fn)
}

// OnContact registers fn to run for every contact, terminal or not.
func (r *Reactor) OnContact(fn func(tag string)) {
	r.onContact = append(r.onContact, fn)
}

// React handles one contact with a body tagged tag and reports whether it ended the session.
func (r *Reactor) React(tag string) bool {
	for _, fn := range r.onContact {
		fn(tag)
	}
	if r.state == StateEnded {
		return false
	}
	switch tag {
	case r.GroundTag:
		r.end(OutcomeLoss)
	case r.GoalTag:
		r.end(OutcomeWin)
	default:
		return false
	}
	return true
}

func (r *Reactor) end(o Outcome) {
	r.state, r.outcome = StateEnded, o
	for _, fn := range r.onEnd {
		fn(o)
	}
}

func (r *Reactor) State() State {
	return r.state
}

func (r *Reactor) Outcome() Outcome {
	return r.outcome
}

func (r *Reactor) Ended() bool {
	return r.state == StateEnded
}
