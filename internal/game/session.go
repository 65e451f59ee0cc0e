// Package game holds one play session and the per-frame loop that drives it.
package game

import (
	"fmt"

	"tilt-maze/internal/bodymesh"
	"tilt-maze/internal/input"
	"tilt-maze/internal/physics"
	"tilt-maze/internal/stage"
)

// Session is the state of one game: the world, the stage bodies, the player and the reactor.
// It is passed explicitly to the loop, the input adapters and the render surfaces.
type Session struct {
	World   *physics.World
	Stage   *stage.Stage
	Player  *input.Player
	Mirrors []Mirror
	Reactor *Reactor
	Meshes  []bodymesh.Mesh

	// Debug selects wireframe rendering, the debug camera and keyboard control.
	Debug bool
	// Ticks counts completed loop ticks.
	Ticks uint64
}

// NewSession builds the stage d into a fresh world. A body with a shape no mesh can be built
// for fails setup.
func NewSession(d stage.Def) (*Session, error) {
	w := physics.NewWorld()
	st, err := stage.Build(d, w)
	if err != nil {
		return nil, fmt.Errorf("game: build stage: %w", err)
	}

	s := &Session{
		World:   w,
		Stage:   st,
		Player:  input.NewPlayer(st.Player),
		Reactor: NewReactor(),
	}
	for _, mp := range st.Mirrors {
		s.Mirrors = append(s.Mirrors, Mirror{Body: mp.Mirror, Source: mp.Source})
	}
	for _, b := range st.Bodies {
		m, err := bodymesh.Build(b, st.Colors[b])
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		s.Meshes = append(s.Meshes, m)
	}
	s.Reactor.Attach(st.Ball)
	return s, nil
}

// SyncMirrors copies every mirror's source orientation.
func (s *Session) SyncMirrors() {
	for _, m := range s.Mirrors {
		m.Sync()
	}
}

// Status is a one-line summary for the console and overlays.
func (s *Session) Status() string {
	st := s.Reactor.State().String()
	if s.Reactor.Ended() {
		st += " (" + s.Reactor.Outcome().String() + ")"
	}
	ball := s.Stage.Ball.Position
	return fmt.Sprintf("tick %d, %s, player x %.2f, ball (%.1f, %.1f, %.1f)",
		s.Ticks, st, s.Player.X(), ball.X, ball.Y, ball.Z)
}
