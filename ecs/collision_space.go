package ecs

import (
	"math"

	"github.com/milk9111/jinx/ecs/component"
	"github.com/solarlune/resolv"
)

const (
	defaultSpaceWidth  = 16384
	defaultSpaceHeight = 4096
	spaceMargin        = 512
	spaceCellSize      = 32
)

// CollisionSpace mirrors every registered entity's bounds in a resolv
// spatial hash. resolv narrows candidates to shared cells, then an AABB test
// decides the overlap.
type CollisionSpace struct {
	space   *resolv.Space
	objects map[Entity]*resolv.Object
}

// Contact is one overlapping (subject, target) pair.
type Contact struct {
	Subject Entity
	Target  Entity
	Layer   Layer
}

func NewCollisionSpace(width, height float64) *CollisionSpace {
	w := int(math.Ceil(width)) + 2*spaceMargin
	h := int(math.Ceil(height)) + 2*spaceMargin
	return &CollisionSpace{
		space:   resolv.NewSpace(w, h, spaceCellSize, spaceCellSize),
		objects: make(map[Entity]*resolv.Object),
	}
}

func (cs *CollisionSpace) add(e Entity, layer Layer, t component.Transform) {
	obj := resolv.NewObject(t.Left()+spaceMargin, t.Bottom()+spaceMargin, t.Width, t.Height, layer.String())
	obj.Data = e
	cs.space.Add(obj)
	cs.objects[e] = obj
}

func (cs *CollisionSpace) update(e Entity, t component.Transform) {
	obj, ok := cs.objects[e]
	if !ok {
		return
	}
	obj.X = t.Left() + spaceMargin
	obj.Y = t.Bottom() + spaceMargin
	obj.W = t.Width
	obj.H = t.Height
	obj.Update()
}

func (cs *CollisionSpace) remove(e Entity) {
	obj, ok := cs.objects[e]
	if !ok {
		return
	}
	cs.space.Remove(obj)
	delete(cs.objects, e)
}

// overlapping returns entities whose boxes overlap e's, in the order resolv
// reports them.
func (cs *CollisionSpace) overlapping(e Entity) []Entity {
	obj, ok := cs.objects[e]
	if !ok {
		return nil
	}
	check := obj.Check(0, 0)
	if check == nil {
		return nil
	}
	out := make([]Entity, 0, len(check.Objects))
	for _, other := range check.Objects {
		if other == obj || !overlaps(obj, other) {
			continue
		}
		if oe, ok := other.Data.(Entity); ok {
			out = append(out, oe)
		}
	}
	return out
}

func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// QueryCollisions returns every entity in targets overlapping subject.
// Entities removed earlier in the frame are never reported.
func QueryCollisions(w *World, subject Entity, targets ...Layer) []Contact {
	if w == nil || !IsAlive(w, subject) || len(targets) == 0 {
		return nil
	}
	var out []Contact
	for _, other := range w.space.overlapping(subject) {
		l, ok := LayerOf(w, other)
		if !ok || !containsLayer(targets, l) {
			continue
		}
		out = append(out, Contact{Subject: subject, Target: other, Layer: l})
	}
	return out
}

// QueryLayerCollisions runs QueryCollisions for every member of subject.
func QueryLayerCollisions(w *World, subject Layer, targets ...Layer) []Contact {
	var out []Contact
	for _, e := range EntitiesIn(w, subject) {
		out = append(out, QueryCollisions(w, e, targets...)...)
	}
	return out
}

// Overlaps reports whether two registered entities overlap.
func Overlaps(w *World, a, b Entity) bool {
	if w == nil {
		return false
	}
	oa, okA := w.space.objects[a]
	ob, okB := w.space.objects[b]
	return okA && okB && overlaps(oa, ob)
}

func containsLayer(layers []Layer, l Layer) bool {
	for _, x := range layers {
		if x == l {
			return true
		}
	}
	return false
}
