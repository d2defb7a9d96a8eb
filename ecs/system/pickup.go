package system

import (
	"log"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
)

// Pickup property names as authored in the level maps.
const (
	propPoints   = "Points"
	propLives    = "Lives"
	propShield   = "Shield"
	propGrenades = "Grenades"
	propSpeed    = "Speed"
	propGravity  = "Gravity"
)

// PickupSystem collects coins, hearts and power-ups the player overlaps. A
// pickup missing its property is still consumed, with no effect.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	for _, c := range ecs.QueryCollisions(w, p.entity, ecs.LayerCoins, ecs.LayerHearts, ecs.LayerPowerUps) {
		pickup := component.Pickup{}
		if pc, ok := ecs.Get(w, c.Target, component.PickupComponent.Kind()); ok {
			pickup = *pc
		}
		ecs.RemoveEntity(w, c.Target)

		switch c.Layer {
		case ecs.LayerCoins:
			s.coin(w, p, c.Target, pickup)
		case ecs.LayerHearts:
			s.heart(w, p, c.Target, pickup)
		case ecs.LayerPowerUps:
			s.powerUp(w, p, c.Target, pickup)
		}
	}
}

func (s *PickupSystem) coin(w *ecs.World, p playerRef, e ecs.Entity, pickup component.Pickup) {
	points, ok := pickup.Int(propPoints)
	if !ok {
		log.Printf("pickup: coin %v has no %s property", e, propPoints)
		points = 0
	}
	if points > 0 {
		p.state.Score += points
	}
	w.Events().Emit(ecs.EventCoinCollected, e, ecs.ScoreData{Points: points, Score: p.state.Score})
}

func (s *PickupSystem) heart(w *ecs.World, p playerRef, e ecs.Entity, pickup component.Pickup) {
	lives, ok := pickup.Int(propLives)
	if !ok {
		log.Printf("pickup: heart %v has no %s property", e, propLives)
		lives = 0
	}
	p.state.Lives += lives
	w.Events().Emit(ecs.EventHeartCollected, e, ecs.LivesData{Lives: p.state.Lives})
}

func (s *PickupSystem) powerUp(w *ecs.World, p playerRef, e ecs.Entity, pickup component.Pickup) {
	switch {
	case pickup.Has(propShield):
		frames, ok := pickup.Int(propShield)
		if !ok {
			log.Printf("pickup: power-up %v has a malformed %s property", e, propShield)
			break
		}
		p.state.Guard.Grant(frames)
	case pickup.Has(propGrenades):
		charges, ok := pickup.Int(propGrenades)
		if !ok {
			log.Printf("pickup: power-up %v has a malformed %s property", e, propGrenades)
			break
		}
		p.state.GrenadeBooster = charges
		// The boosted volleys start without waiting for a click.
		p.state.FireLatched = true
	case pickup.Has(propSpeed), pickup.Has(propGravity):
		// Read by the maps but never applied.
	default:
		log.Printf("pickup: power-up %v has no known property", e)
	}
	w.Events().Emit(ecs.EventPowerUpCollected, e, nil)
}
