package system

import (
	"math"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/prefabs"
)

// AnimationSystem picks the texture frame a renderer should draw. The
// player's walk cycle is driven by distance travelled; actors step every few
// frames while moving.
type AnimationSystem struct {
	tuning *prefabs.Tuning
}

func NewAnimationSystem(t *prefabs.Tuning) *AnimationSystem {
	return &AnimationSystem{tuning: t}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.tuning == nil {
		return
	}
	s.updatePlayer(w)

	ticks := s.tuning.Map.WalkTicks
	for _, layer := range []ecs.Layer{ecs.LayerEnemies, ecs.LayerAllies} {
		for _, e := range ecs.EntitiesIn(w, layer) {
			a, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
			if !ok {
				continue
			}
			moving := false
			if m, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
				moving = m.ChangeX != 0 || m.ChangeY != 0
			}
			if !moving {
				a.State, a.Frame, a.Tick = component.AnimIdle, 0, 0
				continue
			}
			a.State = component.AnimWalk
			a.Tick++
			if a.Tick >= ticks {
				a.Tick = 0
				a.Frame = nextFrame(a.Frame, a.Frames)
			}
		}
	}
}

func (s *AnimationSystem) updatePlayer(w *ecs.World) {
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	a, ok := ecs.Get(w, p.entity, component.AnimationComponent.Kind())
	if !ok {
		return
	}
	v, ok := w.PhysicsWorld().Velocity(p.entity)
	if !ok {
		return
	}
	cfg := s.tuning.Player
	dt := frameOf(w).DT
	dx, dy := v.X*dt, v.Y*dt

	if dx < -cfg.DeadZone {
		setFacing(w, p.entity, component.FacingLeft)
	} else if dx > cfg.DeadZone {
		setFacing(w, p.entity, component.FacingRight)
	}

	prev := a.State
	switch {
	case p.state.OnLadder:
		a.State = component.AnimClimb
	case !p.state.Grounded && dy > cfg.DeadZone:
		a.State = component.AnimJump
	case !p.state.Grounded && dy < -cfg.DeadZone:
		a.State = component.AnimFall
	case math.Abs(dx) > cfg.DeadZone:
		a.State = component.AnimWalk
	default:
		a.State = component.AnimIdle
	}
	if a.State != prev {
		a.Frame, a.OdometerX, a.OdometerY = 0, 0, 0
	}

	switch a.State {
	case component.AnimWalk:
		a.OdometerX += math.Abs(dx)
		if a.OdometerX > cfg.TextureDistance {
			a.OdometerX = 0
			a.Frame = nextFrame(a.Frame, a.Frames)
		}
	case component.AnimClimb:
		a.OdometerY += math.Abs(dy)
		if a.OdometerY > cfg.TextureDistance {
			a.OdometerY = 0
			a.Frame = nextFrame(a.Frame, s.tuning.Map.ClimbFrames)
		}
	}
}

func nextFrame(frame, frames int) int {
	if frames <= 0 {
		return 0
	}
	return (frame + 1) % frames
}
