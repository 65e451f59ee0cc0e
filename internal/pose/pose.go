// Package pose carries body-pose keypoints from an external estimator into the game.
// Estimation itself (webcam capture, model inference) happens outside this process; a Source
// hands over the estimator's latest single-person result.
package pose

import (
	"context"
	"errors"
)

// Part names used by the game.
const (
	PartLeftHip  = "leftHip"
	PartRightHip = "rightHip"
)

// PreviewWidth and PreviewHeight are the pixel size of the frames keypoints are measured in.
const (
	PreviewWidth  = 320
	PreviewHeight = 240
)

// MinDrawScore is the confidence below which keypoints are not drawn on the preview.
const MinDrawScore = 0.2

// ErrNoPose is returned by a Source that has nothing to report yet.
var ErrNoPose = errors.New("pose: no pose available")

// Position is a keypoint location in frame pixels.
type Position struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Keypoint is one detected body part.
type Keypoint struct {
	Part     string   `json:"part" yaml:"part"`
	Score    float32  `json:"score" yaml:"score"`
	Position Position `json:"position" yaml:"position"`
}

// Pose is a single-person estimation result.
type Pose struct {
	Score     float32    `json:"score" yaml:"score"`
	Keypoints []Keypoint `json:"keypoints" yaml:"keypoints"`
}

// Find returns the keypoint for part, if present.
func (p Pose) Find(part string) (Keypoint, bool) {
	for _, k := range p.Keypoints {
		if k.Part == part {
			return k, true
		}
	}
	return Keypoint{}, false
}

// Confident returns the keypoints scoring above min, in order.
func (p Pose) Confident(min float32) []Keypoint {
	var out []Keypoint
	for _, k := range p.Keypoints {
		if k.Score > min {
			out = append(out, k)
		}
	}
	return out
}

// Source produces single-pose estimates on demand.
type Source interface {
	EstimateSinglePose(ctx context.Context) (Pose, error)
}
