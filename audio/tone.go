// Package audio turns simulation events into short synthesised cues. The
// simulation never calls into this package; the runner subscribes a
// CuePlayer to the session.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Note is one tone of a cue.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
}

// tone streams a single note with a linear fade-out over its last quarter.
type tone struct {
	note  Note
	rate  beep.SampleRate
	phase float64
	pos   int
	total int
	noise *rand.Rand
}

func newTone(n Note, rate beep.SampleRate, noise *rand.Rand) *tone {
	return &tone{note: n, rate: rate, total: rate.N(n.Duration), noise: noise}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	release := t.total / 4
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		var v float64
		switch t.note.Wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.noise.Float64()*2 - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		if remaining := t.total - t.pos; release > 0 && remaining < release {
			v *= float64(remaining) / float64(release)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.note.Freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// volume scales s linearly; zero or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
