package game

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilt-maze/internal/mathx"
	"tilt-maze/internal/physics"
	"tilt-maze/internal/pose"
	"tilt-maze/internal/stage"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	d, err := stage.Default()
	require.NoError(t, err)
	s, err := NewSession(d)
	require.NoError(t, err)
	return s
}

// recorder is a Stepper and Surface that logs calls in order.
type recorder struct {
	session *Session
	calls   []string
	dts     []float32
	// tilt is applied to the seesaw on every step.
	tilt     mathx.Quat
	stepX    []float32
	rendered []renderView
}

type renderView struct {
	seesaw  mathx.Quat
	mirrors []mathx.Quat
	playerV float32
}

func (r *recorder) Step(dt float32) {
	r.calls = append(r.calls, "step")
	r.dts = append(r.dts, dt)
	r.stepX = append(r.stepX, r.session.Player.X())
	seesaw := r.session.Stage.Seesaw
	seesaw.Orientation = r.tilt.Mul(seesaw.Orientation).Normalize()
	r.session.Player.Body.Velocity.X = 3
}

func (r *recorder) Render(s *Session) {
	r.calls = append(r.calls, "render")
	v := renderView{seesaw: s.Stage.Seesaw.Orientation, playerV: s.Player.Body.Velocity.X}
	for _, m := range s.Mirrors {
		v.mirrors = append(v.mirrors, m.Body.Orientation)
	}
	r.rendered = append(r.rendered, v)
}

func assertSameRotation(t *testing.T, want, got mathx.Quat) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6)
	assert.InDelta(t, want.Y, got.Y, 1e-6)
	assert.InDelta(t, want.Z, got.Z, 1e-6)
	assert.InDelta(t, want.W, got.W, 1e-6)
}

func TestTickOrder(t *testing.T) {
	s := newTestSession(t)
	rec := &recorder{session: s, tilt: mathx.FromAxisAngle(mathx.V3(0, 0, 1), 0.01)}
	l := NewLoop(s, rec)
	l.Stepper = rec

	for _i := 0; _i < 5; _i++ {
		l.Tick()
	}

	assert.Equal(t, []string{
		"step", "render", "step", "render", "step", "render", "step", "render", "step", "render",
	}, rec.calls)
	assert.Equal(t, uint64(5), s.Ticks)
	for _, v := range rec.rendered {
		assert.Zero(t, v.playerV, "lateral velocity is cleared before render")
		require.Len(t, v.mirrors, 4)
		for _, m := range v.mirrors {
			assertSameRotation(t, v.seesaw, m)
		}
	}
}

func TestFixedTimeStep(t *testing.T) {
	s := newTestSession(t)
	rec := &recorder{session: s, tilt: mathx.Identity()}
	l := NewLoop(s, rec)
	l.Stepper = rec

	for _, wait := range []time.Duration{0, 3 * time.Millisecond, 0, 20 * time.Millisecond} {
		time.Sleep(wait)
		l.Tick()
	}
	require.Len(t, rec.dts, 4)
	for _, dt := range rec.dts {
		assert.Equal(t, float32(1.0/60), dt)
	}
}

func TestPoseAppliedBeforeStep(t *testing.T) {
	s := newTestSession(t)
	rec := &recorder{session: s, tilt: mathx.Identity()}
	l := NewLoop(s, rec)
	l.Stepper = rec
	l.Poses = &pose.Slot{}

	l.Poses.Put(1, pose.Pose{Keypoints: []pose.Keypoint{
		{Part: pose.PartLeftHip, Position: pose.Position{X: 100}},
		{Part: pose.PartRightHip, Position: pose.Position{X: 140}},
	}})
	l.Tick()
	require.Len(t, rec.stepX, 1)
	assert.InDelta(t, 1.875, rec.stepX[0], 1e-6)

	// A sample without hips leaves the player where it is.
	l.Poses.Put(2, pose.Pose{Keypoints: []pose.Keypoint{{Part: "nose", Position: pose.Position{X: 10}}}})
	l.Tick()
	assert.InDelta(t, 1.875, rec.stepX[1], 1e-6)

	// Nothing new in the slot.
	l.Tick()
	assert.InDelta(t, 1.875, rec.stepX[2], 1e-6)
}

func TestMirrorsTrackSeesawInRealWorld(t *testing.T) {
	s := newTestSession(t)
	l := NewLoop(s, &recorder{session: s})

	start := map[string]mathx.Vec3{}
	for _, m := range s.Mirrors {
		start[m.Body.Name] = m.Body.Position
	}
	for i := 0; i < 240; i++ {
		if i%30 == 0 {
			l.HandleKey(39)
		}
		l.Tick()
		for _, m := range s.Mirrors {
			assertSameRotation(t, m.Source.Orientation, m.Body.Orientation)
		}
	}
	assert.Greater(t, s.Player.X(), float32(0))
	assert.Less(t, s.Stage.Ball.Position.Y, float32(40))
	for _, m := range s.Mirrors {
		assert.Equal(t, start[m.Body.Name], m.Body.Position, "mirrors only rotate")
	}
}

func TestPlayerStaysInRangeOnTiltedSeesaw(t *testing.T) {
	s := newTestSession(t)
	l := NewLoop(s, &recorder{session: s})
	for _i := 0; _i < 5; _i++ {
		l.HandleKey(39)
	}
	for i := 0; i < 1200; i++ {
		l.Tick()
		x := s.Player.X()
		require.GreaterOrEqual(t, x, float32(-5), "tick %d", i)
		require.LessOrEqual(t, x, float32(5), "tick %d", i)
	}
}

func TestMirrorSync(t *testing.T) {
	src := physics.NewBody("seesaw", 1, nil)
	dst := physics.NewBody("bar", 0, nil)
	dst.Position = mathx.V3(0, 35, 0.5)
	m := Mirror{Body: dst, Source: src}

	src.Orientation = mathx.FromAxisAngle(mathx.V3(0, 0, 1), -0.3)
	m.Sync()
	assertSameRotation(t, src.Orientation, dst.Orientation)
	assert.Equal(t, mathx.V3(0, 35, 0.5), dst.Position)

	for _, a := range []float32{1e-4, 3e-4, 1e-3} {
		src.Orientation = mathx.FromAxisAngle(mathx.V3(0, 0, 1), a)
		m.Sync()
		assert.InDelta(t, src.Orientation.Z, dst.Orientation.Z, 1e-7, "tilt %g", a)
		assert.InDelta(t, src.Orientation.W, dst.Orientation.W, 1e-7, "tilt %g", a)
	}

	src.Orientation = mathx.Identity()
	m.Sync()
	assert.Equal(t, mathx.Identity(), dst.Orientation)
}

func TestReactorTransitions(t *testing.T) {
	cases := []struct {
		tag     string
		state   State
		outcome Outcome
	}{
		{TagGround, StateEnded, OutcomeLoss},
		{TagGoal, StateEnded, OutcomeWin},
		{"bar", StatePlaying, OutcomeNone},
		{"seesaw", StatePlaying, OutcomeNone},
		{"", StatePlaying, OutcomeNone},
	}
	for _, c := range cases {
		t.Run(c.tag, func(t *testing.T) {
			r := NewReactor()
			r.React(c.tag)
			assert.Equal(t, c.state, r.State())
			assert.Equal(t, c.outcome, r.Outcome())
		})
	}
}

func TestReactorEndedIsAbsorbing(t *testing.T) {
	r := NewReactor()
	var ends []Outcome
	var contacts []string
	r.OnEnd(func(o Outcome) { ends = append(ends, o) })
	r.OnContact(func(tag string) { contacts = append(contacts, tag) })

	assert.False(t, r.React("bar"))
	assert.True(t, r.React(TagGround))
	assert.False(t, r.React(TagGoal))
	assert.False(t, r.React(TagGround))

	assert.Equal(t, []Outcome{OutcomeLoss}, ends)
	assert.Equal(t, OutcomeLoss, r.Outcome())
	assert.Equal(t, []string{"bar", TagGround, TagGoal, TagGround}, contacts)
}

func TestReactorAttachedToBall(t *testing.T) {
	w := physics.NewWorld()
	w.SetGravity(mathx.V3(0, -10, 0))

	ground := physics.NewBody("ground", 0, &physics.Material{Name: TagGround})
	ground.AddShape(physics.Plane(), mathx.Vec3{})
	ground.Orientation = mathx.FromAxisAngle(mathx.V3(1, 0, 0), -math32.Pi/2)
	w.AddBody(ground)

	ball := physics.NewBody("ball", 10, &physics.Material{Name: "ball"})
	ball.AddShape(physics.Sphere(1), mathx.Vec3{})
	ball.Position = mathx.V3(0, 3, 0)
	w.AddBody(ball)

	r := NewReactor()
	r.Attach(ball)
	for _i := 0; _i < 120; _i++ {
		w.Step(TimeStep)
	}
	assert.True(t, r.Ended())
	assert.Equal(t, OutcomeLoss, r.Outcome())
	assert.Equal(t, "Game Over", r.Outcome().Message())
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "win", OutcomeWin.String())
	assert.Equal(t, "Game Clear", OutcomeWin.Message())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
	assert.Equal(t, "", OutcomeNone.Message())
	assert.Equal(t, "playing", StatePlaying.String())
}

func TestSessionStatus(t *testing.T) {
	s := newTestSession(t)
	assert.Len(t, s.Meshes, len(s.Stage.Bodies))
	assert.Contains(t, s.Status(), "tick 0, playing")
	s.Reactor.React(TagGoal)
	assert.Contains(t, s.Status(), "ended (win)")
}
