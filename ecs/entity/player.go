package entity

import (
	"fmt"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/prefabs"
)

// NewPlayerAt spawns the player centred on (x, y) carrying the run's score
// and lives. Cooldowns and the death guard start open.
func NewPlayerAt(w *ecs.World, t *prefabs.Tuning, x, y float64, score, lives int) (ecs.Entity, error) {
	p := t.Player
	e := ecs.AddEntity(w, ecs.LayerPlayer, component.Transform{X: x, Y: y, Width: p.Width, Height: p.Height})

	state := component.NewPlayerState(score, lives)
	state.Tier = t.Ladder().TierFor(score)
	if err := ecs.Add(w, e, component.PlayerStateComponent.Kind(), &state); err != nil {
		return 0, fmt.Errorf("player: add state: %w", err)
	}
	if err := ecs.Add(w, e, component.FacingComponent.Kind(), &component.Facing{Direction: component.FacingRight}); err != nil {
		return 0, fmt.Errorf("player: add facing: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Frames: t.Map.PlayerFrames}); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	damping := p.Damping
	if _, err := w.PhysicsWorld().AddBody(e, x, y, ecs.BodyOptions{
		Type:          ecs.BodyDynamic,
		Width:         p.Width,
		Height:        p.Height,
		Mass:          p.Mass,
		Friction:      p.Friction,
		Tag:           ecs.TagPlayer,
		Damping:       &damping,
		MaxHorizontal: p.MaxHorizontalSpeed,
		MaxVertical:   p.MaxVerticalSpeed,
	}); err != nil {
		return 0, fmt.Errorf("player: add body: %w", err)
	}
	return e, nil
}
