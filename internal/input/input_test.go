package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilt-maze/internal/mathx"
	"tilt-maze/internal/physics"
	"tilt-maze/internal/pose"
)

func newTestPlayer(x float32) *Player {
	b := physics.NewBody("player", 10, &physics.Material{Name: "player"})
	b.Position = mathx.V3(x, 6, 0)
	return NewPlayer(b)
}

func TestKeyboardBounds(t *testing.T) {
	cases := []struct {
		name  string
		start float32
		code  int
		want  float32
		moved bool
	}{
		{"left from center", 0, KeyCodeLeft, -1, true},
		{"left near bound", -4, KeyCodeLeft, -5, true},
		{"left at bound", -5, KeyCodeLeft, -5, false},
		{"right from center", 0, KeyCodeRight, 1, true},
		{"right near bound", 4, KeyCodeRight, 5, true},
		{"right at bound", 5, KeyCodeRight, 5, false},
		{"left at right bound", 5, KeyCodeLeft, 4, true},
		{"right at left bound", -5, KeyCodeRight, -4, true},
		{"other key", 2, 38, 2, false},
	}
	kb := NewKeyboard()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPlayer(c.start)
			moved := kb.HandleKey(p, c.code)
			assert.Equal(t, c.moved, moved)
			assert.Equal(t, c.want, p.X())
		})
	}
}

func TestKeyboardSweep(t *testing.T) {
	kb := NewKeyboard()
	for start := MinX; start <= MaxX; start++ {
		p := newTestPlayer(start)
		kb.HandleKey(p, KeyCodeLeft)
		if start > MinX {
			assert.Equal(t, start-1, p.X())
		} else {
			assert.Equal(t, start, p.X())
		}

		p = newTestPlayer(start)
		kb.HandleKey(p, KeyCodeRight)
		if start < MaxX {
			assert.Equal(t, start+1, p.X())
		} else {
			assert.Equal(t, start, p.X())
		}
	}
}

func hips(left, right float32) pose.Pose {
	return pose.Pose{Keypoints: []pose.Keypoint{
		{Part: "nose", Score: 0.9, Position: pose.Position{X: 120, Y: 40}},
		{Part: pose.PartLeftHip, Score: 0.9, Position: pose.Position{X: left, Y: 180}},
		{Part: pose.PartRightHip, Score: 0.9, Position: pose.Position{X: right, Y: 180}},
	}}
}

func TestPoseMapperTarget(t *testing.T) {
	m := NewPoseMapper(0)
	x, ok := m.TargetX(hips(100, 140))
	require.True(t, ok)
	assert.InDelta(t, 1.875, x, 1e-6)

	x, ok = m.TargetX(hips(160, 160))
	require.True(t, ok)
	assert.Zero(t, x)
}

func TestPoseMapperMissingHipIsNoop(t *testing.T) {
	m := NewPoseMapper(15)
	cases := []struct {
		name string
		p    pose.Pose
	}{
		{"left zero", hips(0, 140)},
		{"right negative", hips(100, -3)},
		{"no keypoints", pose.Pose{}},
		{"left absent", pose.Pose{Keypoints: []pose.Keypoint{
			{Part: pose.PartRightHip, Position: pose.Position{X: 140}},
		}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPlayer(2)
			assert.False(t, m.Apply(p, c.p))
			assert.Equal(t, float32(2), p.X())
		})
	}
}

func TestPoseMapperApplyClamps(t *testing.T) {
	m := NewPoseMapper(15)
	p := newTestPlayer(0)
	require.True(t, m.Apply(p, hips(100, 140)))
	assert.InDelta(t, 1.875, p.X(), 1e-6)

	// Hips at the far left edge would map past the bound.
	wide := PoseMapper{FrameWidth: pose.PreviewWidth, Scale: 40}
	require.True(t, wide.Apply(p, hips(1, 1)))
	assert.Equal(t, MaxX, p.X())
}

func TestHoldLateral(t *testing.T) {
	p := newTestPlayer(0)
	p.Body.Velocity = mathx.V3(3, -2, 1)
	p.HoldLateral()
	assert.Equal(t, mathx.V3(0, -2, 1), p.Body.Velocity)
	assert.Equal(t, float32(0), p.X())

	p.Body.Position.X = 5.3
	p.HoldLateral()
	assert.Equal(t, MaxX, p.X())

	p.Body.Position.X = -7
	p.HoldLateral()
	assert.Equal(t, MinX, p.X())
}
