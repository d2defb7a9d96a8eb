package ecs

import "github.com/milk9111/jinx/ecs/component"

// World owns entities, their components, their layer membership and the
// geometry and physics records that mirror them.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	layers   layerIndex
	events   EventQueue

	space        *CollisionSpace
	physicsWorld *PhysicsWorld
}

type WorldOption func(*World)

// WithBounds sizes the collision space to a level of the given pixel size.
func WithBounds(width, height float64) WorldOption {
	return func(w *World) {
		w.space = NewCollisionSpace(width, height)
	}
}

func NewWorld(opts ...WorldOption) *World {
	w := &World{
		stores: make(map[component.ComponentID]*SparseSet),
		layers: newLayerIndex(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.space == nil {
		w.space = NewCollisionSpace(defaultSpaceWidth, defaultSpaceHeight)
	}
	return w
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and everything attached to it: components,
// layer membership, collision object and physics body. It reports false if
// the entity was already gone.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	if w.physicsWorld != nil {
		w.physicsWorld.RemoveBody(e)
	}
	w.space.remove(e)
	w.layers.remove(e)
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches the physics space whose bodies mirror this world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func (w *World) CollisionSpace() *CollisionSpace {
	if w == nil {
		return nil
	}
	return w.space
}
