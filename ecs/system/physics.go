package system

import (
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
)

// PhysicsSystem steps the Chipmunk space and copies body positions back
// into transforms so overlap queries see where bodies ended up.
type PhysicsSystem struct {
	wired *ecs.PhysicsWorld
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	if s.wired != pw {
		s.wire(w, pw)
	}

	pw.Step(frameOf(w).DT)

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		typ, ok := pw.Type(e)
		if !ok || typ == ecs.BodyStatic {
			return
		}
		pos, _ := pw.Position(e)
		ecs.Move(w, e, pos.X, pos.Y)
	})

	if p, ok := findPlayer(w); ok {
		p.state.Grounded = pw.IsGrounded(p.entity)
	}
}

// wire registers the grenade contact rules on a freshly built level.
func (s *PhysicsSystem) wire(w *ecs.World, pw *ecs.PhysicsWorld) {
	s.wired = pw
	consume := func(grenade, _ ecs.Entity) {
		ecs.RemoveEntity(w, grenade)
	}
	pw.OnCollision(ecs.TagGrenade, ecs.TagWall, consume)
	pw.OnCollision(ecs.TagGrenade, ecs.TagMovingPlatform, consume)
	pw.OnCollision(ecs.TagGrenade, ecs.TagItem, consume)
	pw.OnCollision(ecs.TagGrenade, ecs.TagBlock, func(grenade, block ecs.Entity) {
		ecs.RemoveEntity(w, grenade)
		ecs.RemoveEntity(w, block)
		w.Events().Emit(ecs.EventBlockDestroyed, block, nil)
	})
}
