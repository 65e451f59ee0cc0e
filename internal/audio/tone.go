// Package audio plays the short synthesized cues that mark the end of a game.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// tone is a sine note with a linear attack and release.
type tone struct {
	freq    float64
	rate    beep.SampleRate
	total   int
	attack  int
	release int
	pos     int
	phase   float64
}

// Tone returns a streamer playing freq for d, shaped by attack and release ramps.
func Tone(freq float64, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:    freq,
		rate:    rate,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		v := math.Sin(2*math.Pi*t.phase) * t.gain()
		samples[i][0], samples[i][1] = v, v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

func (t *tone) Err() error { return nil }

// withVolume scales s by vol in [0, 1]. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}
