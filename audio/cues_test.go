package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/milk9111/jinx/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, stream interface {
	Stream([][2]float64) (int, bool)
}) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := stream.Stream(buf)
		for _, s := range buf[:n] {
			require.LessOrEqual(t, s[0], 1.0)
			require.GreaterOrEqual(t, s[0], -1.0)
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("stream never ended")
	return total
}

func TestToneLength(t *testing.T) {
	noise := rand.New(rand.NewSource(1))
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		tn := newTone(Note{Freq: 440, Duration: 100 * time.Millisecond, Wave: wave}, SampleRate, noise)
		assert.Equal(t, SampleRate.N(100*time.Millisecond), drain(t, tn))
		assert.NoError(t, tn.Err())
	}
}

func TestCueIsSequenceOfNotes(t *testing.T) {
	noise := rand.New(rand.NewSource(1))
	s := Cue(ecs.EventCoinCollected, SampleRate, noise)
	require.NotNil(t, s)
	assert.Equal(t, SampleRate.N(70*time.Millisecond)+SampleRate.N(140*time.Millisecond), drain(t, s))
}

func TestSilentEvents(t *testing.T) {
	noise := rand.New(rand.NewSource(1))
	for _, evt := range []ecs.EventType{ecs.EventEnemyBulletFired, ecs.EventProjectileExpired, ecs.EventLevelLoaded} {
		assert.Nil(t, Cue(evt, SampleRate, noise), string(evt))
	}
}

func TestCuePlayerWithoutSpeaker(t *testing.T) {
	p := NewCuePlayer(0.5)
	p.Handle(ecs.Event{Type: ecs.EventPlayerHit})
	p.Handle(ecs.Event{Type: ecs.EventJump})
	p.Handle(ecs.Event{Type: ecs.EventLevelLoaded})
	assert.Equal(t, 2, p.Pending())

	p.SetMuted(true)
	p.Handle(ecs.Event{Type: ecs.EventGameOver})
	assert.Equal(t, 2, p.Pending())

	p.Close()
	assert.Zero(t, p.Pending())
}
