// Package session drives a run: it owns the current level's world, feeds it
// input each frame and swaps in a freshly built world on every transition.
package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/ecs/entity"
	"github.com/milk9111/jinx/ecs/system"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/levels"
	"github.com/milk9111/jinx/prefabs"
)

type State int

const (
	StateLoading State = iota
	StatePlaying
	StateTransitioning
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateTransitioning:
		return "transitioning"
	case StateGameOver:
		return "game-over"
	default:
		return "loading"
	}
}

var (
	ErrGameOver   = errors.New("session: game over")
	ErrNotStarted = errors.New("session: not started")
)

// LevelSource supplies level spawn data by index.
type LevelSource interface {
	Load(index int) (*levels.Level, error)
	Count() int
}

// Session is the level and run state machine. It is not safe for concurrent
// use; the runner calls it from its update loop only.
type Session struct {
	source LevelSource
	tuning *prefabs.Tuning
	table  *firing.Table
	rng    firing.Rand

	nextTuning *prefabs.Tuning
	nextTable  *firing.Table

	world    *ecs.World
	pipeline *ecs.Scheduler
	state    State
	level    int
	score    int
	lives    int

	subscribers []func(ecs.Event)
}

func New(source LevelSource, tuning *prefabs.Tuning, table *firing.Table, rng firing.Rand) (*Session, error) {
	if source == nil {
		return nil, errors.New("session: nil level source")
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Session{
		source: source,
		tuning: tuning,
		table:  table,
		rng:    rng,
		state:  StateLoading,
	}, nil
}

// Subscribe registers fn for every event the simulation emits. Events are
// delivered synchronously at the end of Update, in emission order.
func (s *Session) Subscribe(fn func(ecs.Event)) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

// QueueTuning replaces the tuning from the next level setup on. The running
// level keeps the tuning it was built with.
func (s *Session) QueueTuning(t *prefabs.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("session: queue tuning: %w", err)
	}
	s.nextTuning = t
	return nil
}

// QueueTable replaces the firing table from the next level setup on.
func (s *Session) QueueTable(t *firing.Table) {
	if t != nil {
		s.nextTable = t
	}
}

// Start begins a fresh run at level index with no score and the configured
// starting lives. On error the previous run, if any, keeps going.
func (s *Session) Start(index int) error {
	prevScore, prevLives := s.score, s.lives
	s.score = 0
	s.lives = s.startLives()
	if err := s.load(index); err != nil {
		s.score, s.lives = prevScore, prevLives
		return err
	}
	return nil
}

// Restart starts a new run from the first level.
func (s *Session) Restart() error {
	return s.Start(0)
}

func (s *Session) startLives() int {
	t := s.tuning
	if s.nextTuning != nil {
		t = s.nextTuning
	}
	return t.Player.StartLives
}

// load builds level index and swaps it in. The current world is left
// untouched unless the build succeeds.
func (s *Session) load(index int) error {
	prev := s.state
	s.state = StateLoading

	tuning, table := s.tuning, s.table
	if s.nextTuning != nil {
		tuning = s.nextTuning
	}
	if s.nextTable != nil {
		table = s.nextTable
	}

	lvl, err := s.source.Load(index)
	if err != nil {
		s.state = prev
		return fmt.Errorf("session: load level %d: %w", index, err)
	}
	run := entity.RunState{
		Score: s.score,
		Lives: s.lives,
		Last:  index >= s.source.Count()-1,
	}
	world, err := entity.BuildLevel(tuning, lvl, run)
	if err != nil {
		s.state = prev
		return fmt.Errorf("session: build level %d: %w", index, err)
	}

	s.tuning, s.table = tuning, table
	s.nextTuning, s.nextTable = nil, nil
	s.world = world
	s.pipeline = system.NewPipeline(tuning, table, s.rng)
	s.level = index
	s.state = StatePlaying
	log.Printf("session: level %d loaded (%d entities)", index, len(ecs.Entities(world)))
	s.publish(ecs.Event{Type: ecs.EventLevelLoaded, Data: ecs.LevelData{Index: index}})
	return nil
}

// Update runs one frame with the given input and frame duration in seconds,
// then acts on any transition the frame raised.
func (s *Session) Update(in component.Input, dt float64) error {
	switch {
	case s.state == StateGameOver:
		return ErrGameOver
	case s.world == nil || s.pipeline == nil:
		return ErrNotStarted
	}

	if _, cur, ok := ecs.Singleton(s.world, component.InputComponent.Kind()); ok {
		*cur = in
	}
	if _, frame, ok := ecs.Singleton(s.world, component.FrameComponent.Kind()); ok && dt > 0 {
		frame.DT = dt
	}

	s.pipeline.Update(s.world)

	if _, st, ok := ecs.Singleton(s.world, component.PlayerStateComponent.Kind()); ok {
		s.score, s.lives = st.Score, st.Lives
	}
	for _, evt := range s.world.Events().Drain() {
		s.publish(evt)
	}
	return s.transition(system.Pending(s.world))
}

func (s *Session) transition(kind component.TransitionKind) error {
	switch kind {
	case component.TransitionRespawn:
		s.state = StateTransitioning
		s.publish(ecs.Event{Type: ecs.EventRespawn, Data: ecs.LivesData{Lives: s.lives}})
		return s.load(s.level)
	case component.TransitionNextLevel:
		s.state = StateTransitioning
		s.publish(ecs.Event{Type: ecs.EventLevelComplete, Data: ecs.LevelData{Index: s.level}})
		if s.level >= s.source.Count()-1 {
			s.publish(ecs.Event{Type: ecs.EventGameComplete, Data: ecs.ScoreData{Score: s.score}})
			s.gameOver()
			return nil
		}
		return s.load(s.level + 1)
	case component.TransitionGameOver:
		s.gameOver()
	}
	return nil
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	log.Printf("session: game over at level %d with score %d", s.level, s.score)
	s.publish(ecs.Event{Type: ecs.EventGameOver, Data: ecs.ScoreData{Score: s.score}})
}

func (s *Session) publish(evt ecs.Event) {
	for _, fn := range s.subscribers {
		fn(evt)
	}
}

func (s *Session) State() State { return s.state }

func (s *Session) Level() int { return s.level }

func (s *Session) Score() int { return s.score }

func (s *Session) Lives() int { return s.lives }

// World is the live level. It changes on every transition, so callers must
// not hold on to it across Update calls.
func (s *Session) World() *ecs.World { return s.world }

// Tuning is the configuration the live level was built with.
func (s *Session) Tuning() *prefabs.Tuning { return s.tuning }
