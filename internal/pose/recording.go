package pose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrEmptyRecording is returned when a recording holds no frames.
var ErrEmptyRecording = errors.New("pose: recording has no frames")

// Recording replays a stored pose track, one frame per request.
//
//	loop: true
//	frames:
//	  - score: 0.9
//	    keypoints:
//	      - {part: leftHip, score: 0.9, position: {x: 100, y: 180}}
//	      - {part: rightHip, score: 0.9, position: {x: 140, y: 180}}
type Recording struct {
	Loop   bool   `yaml:"loop"`
	Frames []Pose `yaml:"frames"`

	mu   sync.Mutex
	next int
}

// LoadRecording reads a recording from a YAML file.
func LoadRecording(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pose: read recording: %w", err)
	}
	r, err := ParseRecording(data)
	if err != nil {
		return nil, fmt.Errorf("pose: %s: %w", path, err)
	}
	return r, nil
}

// ParseRecording decodes a recording from YAML.
func ParseRecording(data []byte) (*Recording, error) {
	var r Recording
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse recording: %w", err)
	}
	if len(r.Frames) == 0 {
		return nil, ErrEmptyRecording
	}
	return &r, nil
}

// EstimateSinglePose returns the next frame. A finished non-looping recording reports ErrNoPose.
func (r *Recording) EstimateSinglePose(ctx context.Context) (Pose, error) {
	if err := ctx.Err(); err != nil {
		return Pose{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next >= len(r.Frames) {
		if !r.Loop || len(r.Frames) == 0 {
			return Pose{}, ErrNoPose
		}
		r.next = 0
	}
	p := r.Frames[r.next]
	r.next++
	return p, nil
}
