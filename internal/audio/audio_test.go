package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilt-maze/internal/game"
)

// drain streams s in chunks until it ends and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for _i := 0; _i < 1000; _i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer did not end")
	return nil
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := Tone(440, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)
	samples := drain(t, s)
	require.Len(t, samples, rate.N(100*time.Millisecond))
	for i, v := range samples {
		assert.LessOrEqual(t, v[0], 1.0, "sample %d", i)
		assert.GreaterOrEqual(t, v[0], -1.0, "sample %d", i)
		assert.Equal(t, v[0], v[1], "sample %d is not mono", i)
	}
	assert.NoError(t, s.Err())
}

func TestToneEnvelope(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, Tone(440, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate))

	assert.Zero(t, samples[0][0], "attack starts silent")
	peak := 0.0
	for _, v := range samples {
		peak = max(peak, v[0])
	}
	assert.Greater(t, peak, 0.9)
	last := samples[len(samples)-1][0]
	assert.Less(t, last, 0.2, "release fades out")
	assert.Greater(t, last, -0.2)
}

func TestExhaustedToneReportsDone(t *testing.T) {
	s := Tone(440, time.Millisecond, 0, 0, beep.SampleRate(8000))
	drain(t, s)
	n, ok := s.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestCue(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, o := range []game.Outcome{game.OutcomeWin, game.OutcomeLoss} {
		t.Run(o.String(), func(t *testing.T) {
			c := Cue(o, rate)
			require.NotNil(t, c)
			assert.Len(t, drain(t, c), CueLength(rate))
		})
	}
	assert.Nil(t, Cue(game.OutcomeNone, rate))
}

func TestWithVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	loud := drain(t, Tone(440, 50*time.Millisecond, 0, 0, rate))
	half := drain(t, withVolume(Tone(440, 50*time.Millisecond, 0, 0, rate), 0.5))
	silent := drain(t, withVolume(Tone(440, 50*time.Millisecond, 0, 0, rate), 0))

	require.Len(t, half, len(loud))
	for i := range loud {
		assert.InDelta(t, loud[i][0]*0.5, half[i][0], 1e-9)
		assert.Zero(t, silent[i][0])
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(0.5)
	assert.False(t, p.Play(game.OutcomeWin))
	assert.False(t, p.Play(game.OutcomeNone))
	p.Close()
}
