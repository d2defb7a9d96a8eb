package system

import (
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/prefabs"
)

// playerTargets are the layers that consume a player projectile.
var playerTargets = []ecs.Layer{
	ecs.LayerEnemies,
	ecs.LayerPlatforms,
	ecs.LayerMovingPlatforms,
	ecs.LayerDynamicItems,
	ecs.LayerShield,
	ecs.LayerDynamicTiles,
}

// CombatSystem resolves player bullets and grenades. A projectile that
// touches anything is consumed; enemies it touches lose health, and one
// reaching zero is removed and scored once.
type CombatSystem struct {
	tuning *prefabs.Tuning
}

func NewCombatSystem(t *prefabs.Tuning) *CombatSystem {
	return &CombatSystem{tuning: t}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.tuning == nil {
		return
	}
	info, ok := levelOf(w)
	if !ok {
		return
	}
	p, hasPlayer := findPlayer(w)
	tier := 0
	if hasPlayer {
		tier = p.state.Tier
	}
	multiplier := s.tuning.Tables().DamageMultiplier(tier)

	projectiles := ecs.EntitiesIn(w, ecs.LayerPlayerBullets)
	projectiles = append(projectiles, ecs.EntitiesIn(w, ecs.LayerPlayerGrenades)...)
	for _, proj := range projectiles {
		if !ecs.IsAlive(w, proj) {
			continue
		}
		hits := ecs.QueryCollisions(w, proj, playerTargets...)
		if len(hits) > 0 {
			damage := 0.0
			if pr, ok := ecs.Get(w, proj, component.ProjectileComponent.Kind()); ok {
				damage = pr.Damage * multiplier
			}
			ecs.RemoveEntity(w, proj)
			for _, hit := range hits {
				if hit.Layer == ecs.LayerEnemies {
					s.damage(w, p, hasPlayer, hit.Target, damage)
				}
			}
			continue
		}

		t, ok := ecs.Get(w, proj, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		gone := outside(*t, info)
		if ecs.InLayer(w, proj, ecs.LayerPlayerGrenades) && t.Y < s.tuning.Grenade.FallY {
			gone = true
		}
		if gone {
			ecs.RemoveEntity(w, proj)
			w.Events().Emit(ecs.EventProjectileExpired, proj, nil)
		}
	}

	for _, shield := range ecs.EntitiesIn(w, ecs.LayerShield) {
		if t, ok := ecs.Get(w, shield, component.TransformComponent.Kind()); ok && outside(*t, info) {
			ecs.RemoveEntity(w, shield)
			w.Events().Emit(ecs.EventProjectileExpired, shield, nil)
		}
	}
}

func (s *CombatSystem) damage(w *ecs.World, p playerRef, hasPlayer bool, enemy ecs.Entity, amount float64) {
	// Removed by an earlier hit this frame.
	if !ecs.IsAlive(w, enemy) {
		return
	}
	d, ok := ecs.Get(w, enemy, component.DamageableComponent.Kind())
	if !ok {
		return
	}
	d.Health -= amount
	w.Events().Emit(ecs.EventEnemyHit, enemy, d.Health)
	if d.Health > 0 {
		return
	}

	points := d.Archetype.ScoreValue()
	ecs.RemoveEntity(w, enemy)
	score := 0
	if hasPlayer {
		p.state.Score += points
		score = p.state.Score
	}
	w.Events().Emit(ecs.EventEnemyKilled, enemy, ecs.ScoreData{Points: points, Score: score})
}
