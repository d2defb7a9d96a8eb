package system

import (
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/prefabs"
)

// HazardSystem costs the player lives. Touching an enemy or enemy bullet
// costs one through the death guard; falling off the map always costs one
// and touching a Don't Touch tile costs one through the guard, and both
// respawn the level.
type HazardSystem struct {
	tuning *prefabs.Tuning
}

func NewHazardSystem(t *prefabs.Tuning) *HazardSystem {
	return &HazardSystem{tuning: t}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.tuning == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	info, ok := levelOf(w)
	if !ok {
		return
	}
	st := p.state
	st.Guard.Tick(s.tuning.Player.DeathProtectFrames)

	if len(ecs.QueryCollisions(w, p.entity, ecs.LayerEnemies, ecs.LayerEnemyBullets)) > 0 && st.Guard.Hit() {
		s.loseLife(w, p)
		s.checkGameOver(w, p)
		return
	}

	fell := p.transform.Y < info.FallY
	touched := len(ecs.QueryCollisions(w, p.entity, ecs.LayerDontTouch)) > 0
	switch {
	case fell:
		st.Guard.Hit()
		s.loseLife(w, p)
		raise(w, component.TransitionRespawn)
	case touched && st.Guard.Hit():
		s.loseLife(w, p)
		raise(w, component.TransitionRespawn)
	}
	s.checkGameOver(w, p)
}

func (s *HazardSystem) loseLife(w *ecs.World, p playerRef) {
	if p.state.Lives > 0 {
		p.state.Lives--
	}
	w.Events().Emit(ecs.EventPlayerHit, p.entity, ecs.LivesData{Lives: p.state.Lives})
}

func (s *HazardSystem) checkGameOver(w *ecs.World, p playerRef) {
	if p.state.Lives <= 0 {
		raise(w, component.TransitionGameOver)
	}
}

// LevelSystem raises the level-clear transition and advances the frame
// counter. It runs last.
type LevelSystem struct{}

func NewLevelSystem() *LevelSystem { return &LevelSystem{} }

func (s *LevelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if p, ok := findPlayer(w); ok {
		if info, ok := levelOf(w); ok && p.transform.X >= info.EndOfMapX {
			raise(w, component.TransitionNextLevel)
		}
	}
	frameOf(w).Count++
}
