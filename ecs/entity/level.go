package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/jinx/archetype"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/levels"
	"github.com/milk9111/jinx/prefabs"
)

// RunState is what survives from one level setup to the next.
type RunState struct {
	Score int
	Lives int
	// Last marks the final level of the run.
	Last bool
}

// BuildLevel creates a fresh world and physics space populated from lvl. The
// result is complete or nil: callers keep their previous world on error.
func BuildLevel(t *prefabs.Tuning, lvl *levels.Level, run RunState) (*ecs.World, error) {
	if t == nil || lvl == nil {
		return nil, errors.New("level: missing tuning or map")
	}
	scale := t.Map.TileScaling
	tileSize := float64(lvl.TileWidth) * scale
	width := lvl.PixelWidth() * scale
	height := lvl.PixelHeight() * scale

	w := ecs.NewWorld(ecs.WithBounds(width, height+t.Map.TopMargin))
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(t.Physics.Gravity, t.Physics.Damping, t.Physics.Iterations))

	if err := addLevelSingletons(w, t, lvl, run, width, height); err != nil {
		return nil, err
	}

	for _, tile := range lvl.Tiles {
		layer, ok := tileLayers[tile.Layer]
		if !ok {
			continue
		}
		x := (float64(tile.Col) + 0.5) * tileSize
		y := (float64(tile.Row) + 0.5) * tileSize
		if _, err := NewTile(w, t, layer, x, y, tileSize, tile.Properties); err != nil {
			return nil, fmt.Errorf("level %d: %s tile at %d,%d: %w", lvl.Index, tile.Layer, tile.Col, tile.Row, err)
		}
	}

	for _, p := range lvl.Platforms {
		_, err := NewMovingPlatform(w, t,
			p.Left*scale, p.Bottom*scale, p.Width*scale, p.Height*scale,
			boundary(p.Bounds), p.ChangeX, p.ChangeY)
		if err != nil {
			return nil, fmt.Errorf("level %d: moving platform: %w", lvl.Index, err)
		}
	}

	if err := addActors(w, t, lvl, archetype.FactionEnemy, lvl.Enemies, tileSize); err != nil {
		return nil, err
	}
	if err := addActors(w, t, lvl, archetype.FactionAlly, lvl.Allies, tileSize); err != nil {
		return nil, err
	}

	startX := tileSize*float64(t.Player.StartGridX) + tileSize/2
	startY := tileSize*float64(t.Player.StartGridY) + tileSize/2
	if _, err := NewPlayerAt(w, t, startX, startY, run.Score, run.Lives); err != nil {
		return nil, fmt.Errorf("level %d: %w", lvl.Index, err)
	}
	return w, nil
}

func addLevelSingletons(w *ecs.World, t *prefabs.Tuning, lvl *levels.Level, run RunState, width, height float64) error {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelInfoComponent.Kind(), &component.LevelInfo{
		Index:     lvl.Index,
		EndOfMapX: width,
		Width:     width,
		Height:    height,
		FallY:     t.Player.FallY,
		Last:      run.Last,
	}); err != nil {
		return fmt.Errorf("level: add info: %w", err)
	}
	if err := ecs.Add(w, e, component.FrameComponent.Kind(), &component.Frame{DT: 1.0 / 60}); err != nil {
		return fmt.Errorf("level: add frame: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fmt.Errorf("level: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.TransitionComponent.Kind(), &component.Transition{}); err != nil {
		return fmt.Errorf("level: add transition: %w", err)
	}
	return nil
}

// addActors spawns enemies or allies. An unknown map tag fails the level.
func addActors(w *ecs.World, t *prefabs.Tuning, lvl *levels.Level, faction archetype.Faction, actors []levels.Actor, tileSize float64) error {
	for _, a := range actors {
		kind, err := archetype.Parse(faction, a.Type)
		if err != nil {
			return fmt.Errorf("level %d: %w", lvl.Index, err)
		}
		_, err = NewActor(w, t, ActorSpec{
			Kind:    kind,
			X:       (float64(a.Col) + 0.5) * tileSize,
			Y:       (float64(a.Row) + 0.5) * tileSize,
			Bounds:  boundary(a.Bounds),
			ChangeX: a.ChangeX,
			ChangeY: a.ChangeY,
			Speech:  a.Speech,
		})
		if err != nil {
			return fmt.Errorf("level %d: %s: %w", lvl.Index, a.Type, err)
		}
	}
	return nil
}

func boundary(b levels.Bounds) component.Boundary {
	return component.Boundary{Left: b.Left, Right: b.Right, Top: b.Top, Bottom: b.Bottom}
}
