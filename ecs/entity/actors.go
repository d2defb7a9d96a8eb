package entity

import (
	"fmt"

	"github.com/milk9111/jinx/archetype"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/prefabs"
)

// ActorSpec places an enemy or ally.
type ActorSpec struct {
	Kind    archetype.Kind
	X, Y    float64
	Bounds  component.Boundary
	ChangeX float64
	ChangeY float64
	Speech  string
}

// NewActor spawns an enemy or ally with its archetype's base health. Actors
// move by Motion and have no physics body.
func NewActor(w *ecs.World, t *prefabs.Tuning, spec ActorSpec) (ecs.Entity, error) {
	if !spec.Kind.Valid() {
		return 0, fmt.Errorf("actor: %w: %v", archetype.ErrUnknownArchetype, spec.Kind)
	}
	layer, size := ecs.LayerEnemies, t.Map.EnemySize
	if spec.Kind.Faction() == archetype.FactionAlly {
		layer, size = ecs.LayerAllies, t.Map.AllySize
	}

	e := ecs.AddEntity(w, layer, component.Transform{X: spec.X, Y: spec.Y, Width: size, Height: size})
	if err := ecs.Add(w, e, component.DamageableComponent.Kind(), &component.Damageable{
		Health:    spec.Kind.BaseHealth(),
		Archetype: spec.Kind,
	}); err != nil {
		return 0, fmt.Errorf("actor: add damageable: %w", err)
	}
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{ChangeX: spec.ChangeX, ChangeY: spec.ChangeY}); err != nil {
		return 0, fmt.Errorf("actor: add motion: %w", err)
	}
	bounds := spec.Bounds
	if err := ecs.Add(w, e, component.BoundaryComponent.Kind(), &bounds); err != nil {
		return 0, fmt.Errorf("actor: add boundary: %w", err)
	}
	if err := ecs.Add(w, e, component.FacingComponent.Kind(), &component.Facing{Direction: component.FacingRight}); err != nil {
		return 0, fmt.Errorf("actor: add facing: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Frames: t.Map.WalkFrames}); err != nil {
		return 0, fmt.Errorf("actor: add animation: %w", err)
	}
	if spec.Speech != "" {
		if err := ecs.Add(w, e, component.SpeechComponent.Kind(), &component.Speech{Text: spec.Speech}); err != nil {
			return 0, fmt.Errorf("actor: add speech: %w", err)
		}
	}
	return e, nil
}
