package system

import (
	"testing"

	"github.com/milk9111/jinx/archetype"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/ecs/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHazardGracePeriodUnderContinuousContact(t *testing.T) {
	f := newFixture(t)
	f.enemy(t, archetype.Robot, 100, 300)
	hazard := NewHazardSystem(f.tuning)
	protect := f.tuning.Player.DeathProtectFrames

	hazard.Update(f.w)
	require.Equal(t, 2, f.state(t).Lives)

	for i := 1; i < protect; i++ {
		hazard.Update(f.w)
		require.Equal(t, 2, f.state(t).Lives, "frame %d", i)
	}

	hazard.Update(f.w)
	assert.Equal(t, 1, f.state(t).Lives)
	assert.Equal(t, component.TransitionNone, Pending(f.w))
}

func TestHazardEnemyBulletCostsLifeAndStays(t *testing.T) {
	f := newFixture(t)
	b, err := entity.NewEnemyBullet(f.w, f.tuning, spawnAt(100, 300))
	require.NoError(t, err)

	NewHazardSystem(f.tuning).Update(f.w)

	assert.Equal(t, 2, f.state(t).Lives)
	assert.True(t, ecs.IsAlive(f.w, b))
	assert.Equal(t, 1, countEvents(f.w.Events().Drain(), ecs.EventPlayerHit))
}

func TestHazardInvincibilityBlocksHits(t *testing.T) {
	f := newFixture(t)
	f.state(t).Guard.Grant(300)
	f.enemy(t, archetype.Robot, 100, 300)

	hazard := NewHazardSystem(f.tuning)
	for i := 0; i < 200; i++ {
		hazard.Update(f.w)
	}
	assert.Equal(t, 3, f.state(t).Lives)
	assert.True(t, f.state(t).Guard.Invincible())
}

func TestHazardFallRespawns(t *testing.T) {
	f := newFixture(t)
	f.state(t).Guard.Grant(300)
	ecs.Move(f.w, f.player, 100, -150)

	NewHazardSystem(f.tuning).Update(f.w)

	assert.Equal(t, 2, f.state(t).Lives, "falling ignores the guard")
	assert.Equal(t, component.TransitionRespawn, Pending(f.w))
}

func TestHazardDontTouch(t *testing.T) {
	t.Run("costs a life and respawns", func(t *testing.T) {
		f := newFixture(t)
		f.tile(t, ecs.LayerDontTouch, 100, 300, nil)
		NewHazardSystem(f.tuning).Update(f.w)
		assert.Equal(t, 2, f.state(t).Lives)
		assert.Equal(t, component.TransitionRespawn, Pending(f.w))
	})

	t.Run("guarded", func(t *testing.T) {
		f := newFixture(t)
		f.state(t).Guard.Grant(300)
		f.tile(t, ecs.LayerDontTouch, 100, 300, nil)
		NewHazardSystem(f.tuning).Update(f.w)
		assert.Equal(t, 3, f.state(t).Lives)
		assert.Equal(t, component.TransitionNone, Pending(f.w))
	})
}

func TestHazardLastLifeIsGameOver(t *testing.T) {
	f := newFixture(t)
	f.state(t).Lives = 1
	f.enemy(t, archetype.GreenWorm, 100, 300)

	NewHazardSystem(f.tuning).Update(f.w)

	assert.Zero(t, f.state(t).Lives)
	assert.Equal(t, component.TransitionGameOver, Pending(f.w))
}

func TestGameOverOverridesRespawn(t *testing.T) {
	f := newFixture(t)
	f.state(t).Lives = 1
	ecs.Move(f.w, f.player, 100, -150)

	NewHazardSystem(f.tuning).Update(f.w)

	assert.Equal(t, component.TransitionGameOver, Pending(f.w))
}

func TestLevelSystem(t *testing.T) {
	f := newFixture(t)
	level := NewLevelSystem()

	level.Update(f.w)
	assert.Equal(t, component.TransitionNone, Pending(f.w))
	assert.Equal(t, 1, frameOf(f.w).Count)

	ecs.Move(f.w, f.player, 2000, 300)
	level.Update(f.w)
	assert.Equal(t, component.TransitionNextLevel, Pending(f.w))
	assert.Equal(t, 2, frameOf(f.w).Count)
}
