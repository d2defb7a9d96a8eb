package session

import (
	"math/rand"
	"testing"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/levels"
	"github.com/milk9111/jinx/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func newSession(t *testing.T) (*Session, *[]ecs.Event) {
	t.Helper()
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	table, err := firing.LoadTable()
	require.NoError(t, err)

	s, err := New(levels.Embedded(), tuning, table, rand.New(rand.NewSource(12345)))
	require.NoError(t, err)
	var events []ecs.Event
	s.Subscribe(func(evt ecs.Event) { events = append(events, evt) })
	return s, &events
}

func player(t *testing.T, s *Session) (ecs.Entity, *component.PlayerState) {
	t.Helper()
	e, st, ok := ecs.Singleton(s.World(), component.PlayerStateComponent.Kind())
	require.True(t, ok)
	return e, st
}

// teleport moves the player's body; the next physics step carries the
// transform along.
func teleport(t *testing.T, s *Session, x, y float64) {
	t.Helper()
	e, _ := player(t, s)
	ecs.Move(s.World(), e, x, y)
	s.World().PhysicsWorld().SetPosition(e, x, y)
}

func has(events []ecs.Event, typ ecs.EventType) bool {
	for _, evt := range events {
		if evt.Type == typ {
			return true
		}
	}
	return false
}

func TestStart(t *testing.T) {
	s, events := newSession(t)
	assert.Equal(t, StateLoading, s.State())
	assert.ErrorIs(t, s.Update(component.Input{}, dt), ErrNotStarted)

	require.NoError(t, s.Start(0))
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 0, s.Level())
	assert.Equal(t, 3, s.Lives())
	assert.Zero(t, s.Score())
	assert.True(t, has(*events, ecs.EventLevelLoaded))

	require.NoError(t, s.Update(component.Input{}, dt))
	assert.Equal(t, StatePlaying, s.State())
}

func TestStartFailureKeepsCurrentLevel(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.Start(0))
	w := s.World()

	err := s.Start(99)
	require.ErrorIs(t, err, levels.ErrLevelNotFound)
	assert.Same(t, w, s.World())
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 0, s.Level())
	assert.Equal(t, 3, s.Lives())
}

func TestLevelClearKeepsScore(t *testing.T) {
	s, events := newSession(t)
	require.NoError(t, s.Start(0))
	_, st := player(t, s)
	st.Score = 250

	_, info, ok := ecs.Singleton(s.World(), component.LevelInfoComponent.Kind())
	require.True(t, ok)
	teleport(t, s, info.EndOfMapX+20, 300)

	require.NoError(t, s.Update(component.Input{}, dt))
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 250, s.Score())
	assert.True(t, has(*events, ecs.EventLevelComplete))

	_, st = player(t, s)
	assert.Equal(t, 250, st.Score)
	assert.Equal(t, 1, st.Tier)
	assert.Equal(t, 3, st.Lives)
}

func TestFallRespawnsSameLevel(t *testing.T) {
	s, events := newSession(t)
	require.NoError(t, s.Start(0))
	_, st := player(t, s)
	st.Score = 40
	st.Shoot.Trigger()
	old := s.World()

	teleport(t, s, 300, -500)
	require.NoError(t, s.Update(component.Input{}, dt))

	assert.Equal(t, 0, s.Level())
	assert.Equal(t, 2, s.Lives())
	assert.Equal(t, 40, s.Score())
	assert.NotSame(t, old, s.World())
	assert.True(t, has(*events, ecs.EventRespawn))

	_, st = player(t, s)
	assert.Equal(t, 2, st.Lives)
	assert.True(t, st.Shoot.Ready, "timers reset on reload")
	assert.True(t, st.Guard.CanDie)
}

func TestGameOverAndRestart(t *testing.T) {
	s, events := newSession(t)
	require.NoError(t, s.Start(0))
	_, st := player(t, s)
	st.Lives = 1
	st.Score = 70

	teleport(t, s, 300, -500)
	require.NoError(t, s.Update(component.Input{}, dt))
	assert.Equal(t, StateGameOver, s.State())
	assert.Zero(t, s.Lives())
	assert.Equal(t, 70, s.Score())
	assert.True(t, has(*events, ecs.EventGameOver))
	assert.ErrorIs(t, s.Update(component.Input{}, dt), ErrGameOver)

	require.NoError(t, s.Restart())
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 0, s.Level())
	assert.Zero(t, s.Score())
	assert.Equal(t, 3, s.Lives())
}

func TestClearingLastLevelEndsRun(t *testing.T) {
	s, events := newSession(t)
	require.NoError(t, s.Start(1))
	_, st := player(t, s)
	st.Score = 900

	_, info, _ := ecs.Singleton(s.World(), component.LevelInfoComponent.Kind())
	require.True(t, info.Last)
	teleport(t, s, info.EndOfMapX+20, 300)

	require.NoError(t, s.Update(component.Input{}, dt))
	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, 900, s.Score())
	assert.True(t, has(*events, ecs.EventGameComplete))
	assert.True(t, has(*events, ecs.EventGameOver))
}

func TestQueuedTuningAppliesOnNextLevel(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.Start(0))

	next, err := prefabs.LoadTuning()
	require.NoError(t, err)
	next.Player.StartLives = 5
	require.NoError(t, s.QueueTuning(next))
	assert.Equal(t, 3, s.Tuning().Player.StartLives, "running level keeps its tuning")

	require.NoError(t, s.Restart())
	assert.Same(t, next, s.Tuning())
	assert.Equal(t, 5, s.Lives())

	bad := *next
	bad.Player.StartLives = 0
	assert.ErrorIs(t, s.QueueTuning(&bad), prefabs.ErrInvalidTuning)
}

func TestInputReachesWorld(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.Start(0))

	require.NoError(t, s.Update(component.Input{Shoot: true}, dt))
	assert.Equal(t, 1, ecs.CountIn(s.World(), ecs.LayerPlayerBullets))

	_, frame, ok := ecs.Singleton(s.World(), component.FrameComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1, frame.Count)
}
