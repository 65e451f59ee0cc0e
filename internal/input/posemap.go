package input

import "tilt-maze/internal/pose"

// DefaultPoseScale maps a full frame width of hip travel to 15 world units.
const DefaultPoseScale float32 = 15

// PoseMapper converts the hip midpoint of a pose into a player x position.
type PoseMapper struct {
	FrameWidth float32
	Scale      float32
}

// NewPoseMapper returns a mapper for the preview frame size. scale <= 0 uses DefaultPoseScale.
func NewPoseMapper(scale float32) PoseMapper {
	if scale <= 0 {
		scale = DefaultPoseScale
	}
	return PoseMapper{FrameWidth: pose.PreviewWidth, Scale: scale}
}

// TargetX returns the player x for p. It reports false when either hip is missing or has a
// non-positive x, in which case the sample must not move the player.
func (m PoseMapper) TargetX(p pose.Pose) (float32, bool) {
	left, ok := p.Find(pose.PartLeftHip)
	if !ok || left.Position.X <= 0 {
		return 0, false
	}
	right, ok := p.Find(pose.PartRightHip)
	if !ok || right.Position.X <= 0 {
		return 0, false
	}
	mid := (left.Position.X + right.Position.X) / 2
	return (m.FrameWidth/2 - mid) / m.FrameWidth * m.Scale, true
}

// Apply moves pl to the target for p and reports whether it did.
func (m PoseMapper) Apply(pl *Player, p pose.Pose) bool {
	x, ok := m.TargetX(p)
	if !ok {
		return false
	}
	pl.SetX(x)
	return true
}
