package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/jinx/ecs"
)

const SampleRate = beep.SampleRate(44100)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Cues maps the events worth hearing to the notes played for them, in
// order. Events missing from the map are silent.
var Cues = map[ecs.EventType][]Note{
	ecs.EventEnemyHit:         {{Freq: 220, Duration: ms(50), Wave: WaveSquare}},
	ecs.EventEnemyKilled:      {{Freq: 330, Duration: ms(60), Wave: WaveSaw}, {Freq: 165, Duration: ms(120), Wave: WaveSaw}},
	ecs.EventCoinCollected:    {{Freq: 987.77, Duration: ms(70), Wave: WaveSquare}, {Freq: 1318.51, Duration: ms(140), Wave: WaveSquare}},
	ecs.EventHeartCollected:   {{Freq: 523.25, Duration: ms(80)}, {Freq: 659.25, Duration: ms(80)}, {Freq: 783.99, Duration: ms(160)}},
	ecs.EventPowerUpCollected: {{Freq: 440, Duration: ms(90)}, {Freq: 880, Duration: ms(180)}},
	ecs.EventPlayerHit:        {{Freq: 110, Duration: ms(250), Wave: WaveSaw}},
	ecs.EventPlayerShot:       {{Freq: 0, Duration: ms(40), Wave: WaveNoise}},
	ecs.EventShieldRaised:     {{Freq: 330, Duration: ms(120)}},
	ecs.EventGrenadeThrown:    {{Freq: 0, Duration: ms(80), Wave: WaveNoise}},
	ecs.EventBlockDestroyed:   {{Freq: 0, Duration: ms(150), Wave: WaveNoise}},
	ecs.EventJump:             {{Freq: 440, Duration: ms(40), Wave: WaveSquare}, {Freq: 660, Duration: ms(60), Wave: WaveSquare}},
	ecs.EventTierUp:           {{Freq: 523.25, Duration: ms(70)}, {Freq: 783.99, Duration: ms(70)}, {Freq: 1046.5, Duration: ms(200)}},
	ecs.EventLevelComplete:    {{Freq: 392, Duration: ms(120)}, {Freq: 523.25, Duration: ms(120)}, {Freq: 659.25, Duration: ms(300)}},
	ecs.EventGameComplete:     {{Freq: 523.25, Duration: ms(150)}, {Freq: 659.25, Duration: ms(150)}, {Freq: 783.99, Duration: ms(150)}, {Freq: 1046.5, Duration: ms(400)}},
	ecs.EventGameOver:         {{Freq: 392, Duration: ms(200), Wave: WaveSaw}, {Freq: 311.13, Duration: ms(200), Wave: WaveSaw}, {Freq: 261.63, Duration: ms(500), Wave: WaveSaw}},
}

// Cue builds the streamer for evt, or nil if evt is silent.
func Cue(evt ecs.EventType, rate beep.SampleRate, noise *rand.Rand) beep.Streamer {
	notes, ok := Cues[evt]
	if !ok || len(notes) == 0 {
		return nil
	}
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamers = append(streamers, newTone(n, rate, noise))
	}
	return beep.Seq(streamers...)
}

// CuePlayer mixes one cue per event into a single stream. Until Open is
// called the mixer is only filled, never played.
type CuePlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	volume float64
	muted  bool
	open   bool
	noise  *rand.Rand
}

func NewCuePlayer(vol float64) *CuePlayer {
	return &CuePlayer{
		mixer:  &beep.Mixer{},
		rate:   SampleRate,
		volume: vol,
		noise:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Open starts the speaker and begins playing the mixer.
func (p *CuePlayer) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(ms(50))); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.open = true
	return nil
}

func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Handle queues the cue for evt. It matches the session's subscriber
// signature.
func (p *CuePlayer) Handle(evt ecs.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.muted {
		return
	}
	s := Cue(evt.Type, p.rate, p.noise)
	if s == nil {
		return
	}
	s = volume(s, p.volume)
	if p.open {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
		return
	}
	p.mixer.Add(s)
}

// Pending is the number of cues still in the mixer.
func (p *CuePlayer) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Close stops every playing cue.
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		speaker.Clear()
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
		p.open = false
		return
	}
	p.mixer.Clear()
}
