package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/prefabs"
)

// PlayerControlSystem turns the frame's input flags into forces on the
// player body. Climbing, jumping and friction switching live here.
type PlayerControlSystem struct {
	tuning *prefabs.Tuning
}

func NewPlayerControlSystem(t *prefabs.Tuning) *PlayerControlSystem {
	return &PlayerControlSystem{tuning: t}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.tuning == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	pw := w.PhysicsWorld()
	if !pw.HasBody(p.entity) {
		return
	}
	in := inputOf(w)
	st := p.state
	cfg := s.tuning.Player

	onLadder := len(ecs.QueryCollisions(w, p.entity, ecs.LayerLadders)) > 0
	if onLadder != st.OnLadder {
		st.OnLadder = onLadder
		s.setClimbing(pw, p.entity, onLadder)
	}

	force := cfg.MoveForceAir
	if st.Grounded || st.OnLadder {
		force = cfg.MoveForceGround
	}

	var fx, fy float64
	if in.Left && !in.Right {
		fx = -force
		setFacing(w, p.entity, component.FacingLeft)
	} else if in.Right && !in.Left {
		fx = force
		setFacing(w, p.entity, component.FacingRight)
	}
	if st.OnLadder {
		if in.Up && !in.Down {
			fy = force
		} else if in.Down && !in.Up {
			fy = -force
		}
	}

	if fx != 0 || fy != 0 {
		pw.SetFriction(p.entity, 0)
		pw.ApplyForce(p.entity, cp.Vector{X: fx, Y: fy})
	} else {
		pw.SetFriction(p.entity, cfg.Friction)
	}

	if in.Jump && st.Grounded && !st.OnLadder {
		impulse := cfg.JumpImpulse * s.tuning.Tables().JumpMultiplier(st.Tier)
		pw.ApplyImpulse(p.entity, cp.Vector{X: 0, Y: impulse})
		w.Events().Emit(ecs.EventJump, p.entity, nil)
	}

	if in.Fire {
		st.AimX, st.AimY = in.AimX, in.AimY
	}
}

// setClimbing swaps the body between ladder and free-fall settings.
func (s *PlayerControlSystem) setClimbing(pw *ecs.PhysicsWorld, e ecs.Entity, climbing bool) {
	cfg := s.tuning.Player
	if climbing {
		zero := cp.Vector{}
		damping := cfg.LadderDamping
		pw.SetGravity(e, &zero)
		pw.SetDamping(e, &damping)
		pw.SetMaxVelocity(e, cfg.MaxHorizontalSpeed, cfg.MaxHorizontalSpeed)
		return
	}
	damping := cfg.Damping
	pw.SetGravity(e, nil)
	pw.SetDamping(e, &damping)
	pw.SetMaxVelocity(e, cfg.MaxHorizontalSpeed, cfg.MaxVerticalSpeed)
}

func setFacing(w *ecs.World, e ecs.Entity, d component.Direction) {
	if f, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
		f.Direction = d
	}
}
