package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"tilt-maze/internal/game"
)

// SampleRate is the rate cues are synthesized at and the speaker is opened with.
const SampleRate = beep.SampleRate(44100)

const (
	noteLength = 140 * time.Millisecond
	lastNote   = 420 * time.Millisecond
	attack     = 5 * time.Millisecond
	release    = 60 * time.Millisecond
)

// Note frequencies (Hz).
var (
	winNotes  = []float64{523.25, 659.25, 783.99, 1046.50} // C5 E5 G5 C6
	lossNotes = []float64{392.00, 329.63, 261.63, 196.00}  // G4 E4 C4 G3
)

// Cue returns the streamer for an outcome: a rising arpeggio for a win, a falling one for a loss.
// It returns nil for game.OutcomeNone.
func Cue(o game.Outcome, rate beep.SampleRate) beep.Streamer {
	var notes []float64
	switch o {
	case game.OutcomeWin:
		notes = winNotes
	case game.OutcomeLoss:
		notes = lossNotes
	default:
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		d := noteLength
		if i == len(notes)-1 {
			d = lastNote
		}
		parts[i] = Tone(f, d, attack, release, rate)
	}
	return beep.Seq(parts...)
}

// CueLength is the number of samples Cue produces for a win or loss at rate.
func CueLength(rate beep.SampleRate) int {
	return (len(winNotes)-1)*rate.N(noteLength) + rate.N(lastNote)
}

// Player mixes cues into the speaker. Until Init succeeds every Play is a no-op, so a machine
// without an audio device runs silently.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer returns a player at volume vol in [0, 1].
func NewPlayer(vol float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: vol}
}

// Init opens the speaker and starts the mixer. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetVolume changes the volume of cues played from now on.
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	p.volume = vol
	p.mu.Unlock()
}

// Play queues the cue for o. It reports whether anything was queued.
func (p *Player) Play(o game.Outcome) bool {
	cue := Cue(o, SampleRate)
	if cue == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return false
	}
	s := withVolume(cue, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Close stops all cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
