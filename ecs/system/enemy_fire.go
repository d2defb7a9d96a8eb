package system

import (
	"log"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/ecs/entity"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/prefabs"
)

// enemyBulletTargets stop enemy bullets without side effects. Hitting the
// player is handled by HazardSystem.
var enemyBulletTargets = []ecs.Layer{
	ecs.LayerDynamicItems,
	ecs.LayerPlatforms,
	ecs.LayerMovingPlatforms,
	ecs.LayerShield,
	ecs.LayerAllies,
	ecs.LayerDynamicTiles,
}

// EnemyFireSystem asks the firing table for this frame's shots and spawns
// them.
type EnemyFireSystem struct {
	tuning *prefabs.Tuning
	table  *firing.Table
	rng    firing.Rand
}

func NewEnemyFireSystem(t *prefabs.Tuning, table *firing.Table, rng firing.Rand) *EnemyFireSystem {
	return &EnemyFireSystem{tuning: t, table: table, rng: rng}
}

func (s *EnemyFireSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.table == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	frame := frameOf(w)
	target := firing.Point{X: p.transform.X, Y: p.transform.Y}

	for _, e := range ecs.EntitiesIn(w, ecs.LayerEnemies) {
		d, ok := ecs.Get(w, e, component.DamageableComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		from := firing.Shooter{Center: firing.Point{X: t.X, Y: t.Y}, Top: t.Top()}
		for _, spawn := range s.table.Fire(s.rng, d.Archetype, from, target, frame.Count, frame.DT) {
			bullet, err := entity.NewEnemyBullet(w, s.tuning, spawn)
			if err != nil {
				log.Printf("enemy fire: %s: %v", d.Archetype, err)
				continue
			}
			w.Events().Emit(ecs.EventEnemyBulletFired, bullet, spawn.Weapon)
		}
	}
}

// EnemyBulletSystem removes enemy bullets that hit cover or leave the map.
type EnemyBulletSystem struct {
	tuning *prefabs.Tuning
}

func NewEnemyBulletSystem(t *prefabs.Tuning) *EnemyBulletSystem {
	return &EnemyBulletSystem{tuning: t}
}

func (s *EnemyBulletSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	info, ok := levelOf(w)
	if !ok {
		return
	}
	ceiling := info.Height
	if s.tuning != nil {
		ceiling += s.tuning.Map.TopMargin
	}

	for _, b := range ecs.EntitiesIn(w, ecs.LayerEnemyBullets) {
		if len(ecs.QueryCollisions(w, b, enemyBulletTargets...)) > 0 {
			ecs.RemoveEntity(w, b)
			continue
		}
		t, ok := ecs.Get(w, b, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if outside(*t, info) || t.Top() < info.FallY || t.Bottom() > ceiling {
			ecs.RemoveEntity(w, b)
			w.Events().Emit(ecs.EventProjectileExpired, b, nil)
		}
	}
}
