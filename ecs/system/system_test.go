package system

import (
	"testing"

	"github.com/milk9111/jinx/archetype"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/ecs/entity"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/prefabs"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	w      *ecs.World
	tuning *prefabs.Tuning
	player ecs.Entity
}

// newFixture builds a bare 2000x600 level with the player at (100, 300).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)

	w := ecs.NewWorld(ecs.WithBounds(2000, 1000))
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(tuning.Physics.Gravity, tuning.Physics.Damping, tuning.Physics.Iterations))

	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.LevelInfoComponent.Kind(), &component.LevelInfo{
		EndOfMapX: 2000, Width: 2000, Height: 600, FallY: -100,
	}))
	require.NoError(t, ecs.Add(w, e, component.FrameComponent.Kind(), &component.Frame{DT: 1.0 / 60}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.TransitionComponent.Kind(), &component.Transition{}))

	player, err := entity.NewPlayerAt(w, tuning, 100, 300, 0, 3)
	require.NoError(t, err)
	return &fixture{w: w, tuning: tuning, player: player}
}

func (f *fixture) state(t *testing.T) *component.PlayerState {
	t.Helper()
	st, ok := ecs.Get(f.w, f.player, component.PlayerStateComponent.Kind())
	require.True(t, ok)
	return st
}

func (f *fixture) input(t *testing.T) *component.Input {
	t.Helper()
	_, in, ok := ecs.Singleton(f.w, component.InputComponent.Kind())
	require.True(t, ok)
	return in
}

func (f *fixture) transform(t *testing.T, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(f.w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

func (f *fixture) enemy(t *testing.T, kind archetype.Kind, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewActor(f.w, f.tuning, entity.ActorSpec{Kind: kind, X: x, Y: y})
	require.NoError(t, err)
	return e
}

func (f *fixture) tile(t *testing.T, layer ecs.Layer, x, y float64, props map[string]string) ecs.Entity {
	t.Helper()
	e, err := entity.NewTile(f.w, f.tuning, layer, x, y, 51.2, props)
	require.NoError(t, err)
	return e
}

func countEvents(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func spawnAt(x, y float64) firing.Spawn {
	return firing.Spawn{X: x, Y: y, Weapon: "laserRed"}
}
