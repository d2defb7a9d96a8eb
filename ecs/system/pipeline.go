package system

import (
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/prefabs"
)

// NewPipeline returns the frame schedule. Each stage sees what the stages
// before it changed, and the frame stops early once a transition is raised.
func NewPipeline(t *prefabs.Tuning, table *firing.Table, rng firing.Rand) *ecs.Scheduler {
	s := ecs.NewScheduler(
		NewPlayerControlSystem(t),
		NewPhysicsSystem(),
		NewPlatformSystem(),
		NewMotionSystem(),
		NewProgressionSystem(t),
		NewWeaponSystem(t),
		NewAnimationSystem(t),
		NewCombatSystem(t),
		NewEnemyFireSystem(t, table, rng),
		NewEnemyBulletSystem(t),
		NewPickupSystem(),
		NewHazardSystem(t),
		NewLevelSystem(),
	)
	s.HaltWhen(func(w *ecs.World) bool {
		return Pending(w) != component.TransitionNone
	})
	return s
}
