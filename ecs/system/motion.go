package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
)

// bounce reverses m on any axis whose boundary t has passed while moving
// towards it. It reports whether anything flipped.
func bounce(m *component.Motion, b *component.Boundary, t component.Transform) bool {
	if m == nil || b == nil {
		return false
	}
	flipped := false
	if b.Right != nil && m.ChangeX > 0 && t.Right() > *b.Right {
		m.ChangeX = -m.ChangeX
		flipped = true
	} else if b.Left != nil && m.ChangeX < 0 && t.Left() < *b.Left {
		m.ChangeX = -m.ChangeX
		flipped = true
	}
	if b.Top != nil && m.ChangeY > 0 && t.Top() > *b.Top {
		m.ChangeY = -m.ChangeY
		flipped = true
	} else if b.Bottom != nil && m.ChangeY < 0 && t.Bottom() < *b.Bottom {
		m.ChangeY = -m.ChangeY
		flipped = true
	}
	return flipped
}

// velocityOf converts a per-frame change into a per-second velocity.
func velocityOf(m component.Motion, dt float64) cp.Vector {
	return cp.Vector{X: m.ChangeX / dt, Y: m.ChangeY / dt}
}

// PlatformSystem is the moving platform oscillator. Platforms are kinematic
// bodies; their per-frame change is handed to physics as a velocity.
type PlatformSystem struct{}

func NewPlatformSystem() *PlatformSystem { return &PlatformSystem{} }

func (s *PlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	dt := frameOf(w).DT
	for _, e := range ecs.EntitiesIn(w, ecs.LayerMovingPlatforms) {
		m, ok := ecs.Get(w, e, component.MotionComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if b, ok := ecs.Get(w, e, component.BoundaryComponent.Kind()); ok {
			bounce(m, b, *t)
		}
		pw.SetVelocity(e, velocityOf(*m, dt))
	}
}

// MotionSystem moves every body-less entity by its per-frame change. Actors
// with a boundary patrol between its limits and face their direction of
// travel.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem { return &MotionSystem{} }

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if pw.HasBody(e) {
			return
		}
		if m.ChangeX == 0 && m.ChangeY == 0 {
			return
		}
		if !ecs.Translate(w, e, m.ChangeX, m.ChangeY) {
			return
		}
		if b, ok := ecs.Get(w, e, component.BoundaryComponent.Kind()); ok {
			t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			bounce(m, b, *t)
		}
		if f, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
			switch {
			case m.ChangeX > 0:
				f.Direction = component.FacingRight
			case m.ChangeX < 0:
				f.Direction = component.FacingLeft
			}
		}
	})
}
