// Package system holds one system per frame stage. Systems never return
// errors: a fault on one entity is logged and that entity is skipped.
package system

import (
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
)

const defaultDT = 1.0 / 60

type playerRef struct {
	entity    ecs.Entity
	state     *component.PlayerState
	transform *component.Transform
}

func findPlayer(w *ecs.World) (playerRef, bool) {
	e, st, ok := ecs.Singleton(w, component.PlayerStateComponent.Kind())
	if !ok {
		return playerRef{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return playerRef{}, false
	}
	return playerRef{entity: e, state: st, transform: t}, true
}

func frameOf(w *ecs.World) *component.Frame {
	_, f, ok := ecs.Singleton(w, component.FrameComponent.Kind())
	if !ok {
		return &component.Frame{DT: defaultDT}
	}
	if f.DT <= 0 {
		f.DT = defaultDT
	}
	return f
}

func levelOf(w *ecs.World) (*component.LevelInfo, bool) {
	_, info, ok := ecs.Singleton(w, component.LevelInfoComponent.Kind())
	return info, ok
}

func inputOf(w *ecs.World) component.Input {
	_, in, ok := ecs.Singleton(w, component.InputComponent.Kind())
	if !ok {
		return component.Input{}
	}
	return *in
}

// Pending returns the transition raised this frame, if any.
func Pending(w *ecs.World) component.TransitionKind {
	_, tr, ok := ecs.Singleton(w, component.TransitionComponent.Kind())
	if !ok {
		return component.TransitionNone
	}
	return tr.Kind
}

// raise records a transition. The first one raised in a frame wins, except
// that game over replaces anything else.
func raise(w *ecs.World, kind component.TransitionKind) {
	_, tr, ok := ecs.Singleton(w, component.TransitionComponent.Kind())
	if !ok {
		return
	}
	if tr.Kind == component.TransitionNone || kind == component.TransitionGameOver {
		tr.Kind = kind
	}
}

// outside reports whether t has left the map horizontally.
func outside(t component.Transform, info *component.LevelInfo) bool {
	return t.Right() < 0 || t.Left() > info.EndOfMapX
}
