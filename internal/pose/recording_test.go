package pose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const track = `
loop: %s
frames:
  - score: 0.9
    keypoints:
      - {part: leftHip, score: 0.9, position: {x: 100, y: 180}}
      - {part: rightHip, score: 0.9, position: {x: 140, y: 180}}
  - score: 0.8
    keypoints:
      - {part: leftHip, score: 0.9, position: {x: 200, y: 180}}
`

func trackYAML(loop string) []byte {
	return []byte(fmt.Sprintf(track, loop))
}

func TestRecordingPlaysOnce(t *testing.T) {
	r, err := ParseRecording(trackYAML("false"))
	require.NoError(t, err)
	ctx := context.Background()

	p, err := r.EstimateSinglePose(ctx)
	require.NoError(t, err)
	k, ok := p.Find(PartLeftHip)
	require.True(t, ok)
	assert.Equal(t, float32(100), k.Position.X)

	p, err = r.EstimateSinglePose(ctx)
	require.NoError(t, err)
	assert.Equal(t, float32(0.8), p.Score)

	_, err = r.EstimateSinglePose(ctx)
	assert.ErrorIs(t, err, ErrNoPose)
}

func TestRecordingLoops(t *testing.T) {
	r, err := ParseRecording(trackYAML("true"))
	require.NoError(t, err)
	ctx := context.Background()
	var scores []float32
	for _i := 0; _i < 3; _i++ {
		p, err := r.EstimateSinglePose(ctx)
		require.NoError(t, err)
		scores = append(scores, p.Score)
	}
	assert.Equal(t, []float32{0.9, 0.8, 0.9}, scores)
}

func TestRecordingErrors(t *testing.T) {
	_, err := ParseRecording([]byte("frames: []\n"))
	assert.ErrorIs(t, err, ErrEmptyRecording)

	_, err = ParseRecording([]byte("frames: {"))
	assert.ErrorContains(t, err, "parse recording")

	_, err = LoadRecording(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read recording")
}

func TestLoadRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.yaml")
	require.NoError(t, os.WriteFile(path, trackYAML("false"), 0o644))
	r, err := LoadRecording(path)
	require.NoError(t, err)
	assert.Len(t, r.Frames, 2)
	assert.False(t, r.Loop)
}
