package ecs

import "github.com/milk9111/jinx/ecs/component"

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID()).Set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return nil, false
	}
	v, ok := s.Get(e.id()).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return false
	}
	return s.Remove(e.id())
}

// ForEach visits every entity holding kind. Entities destroyed or stripped
// of the component during the walk are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return
	}
	for _, id := range s.ids() {
		e, alive := w.entities.current(id)
		if !alive {
			continue
		}
		v, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits entities holding both kinds, walking the smaller store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa, okA := w.stores[ka.ID()]
	sb, okB := w.stores[kb.ID()]
	if !okA || !okB {
		return
	}
	walk := sa
	if sb.Len() < sa.Len() {
		walk = sb
	}
	for _, id := range walk.ids() {
		e, alive := w.entities.current(id)
		if !alive {
			continue
		}
		a, ok := sa.Get(id).(*A)
		if !ok {
			continue
		}
		b, ok := sb.Get(id).(*B)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// First returns any entity holding kind. It is meant for singletons.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	for _, id := range s.denseEntities {
		if e, alive := w.entities.current(id); alive {
			return e, true
		}
	}
	return 0, false
}

// Singleton returns the first entity holding kind along with its value.
func Singleton[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	e, ok := First(w, kind)
	if !ok {
		return 0, nil, false
	}
	v, ok := Get(w, e, kind)
	return e, v, ok
}
