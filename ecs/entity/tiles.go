package entity

import (
	"fmt"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/levels"
	"github.com/milk9111/jinx/prefabs"
)

// tileLayers maps map layer names to registry layers.
var tileLayers = map[string]ecs.Layer{
	levels.LayerPlatforms:    ecs.LayerPlatforms,
	levels.LayerCoins:        ecs.LayerCoins,
	levels.LayerHearts:       ecs.LayerHearts,
	levels.LayerPowerUps:     ecs.LayerPowerUps,
	levels.LayerDontTouch:    ecs.LayerDontTouch,
	levels.LayerLadders:      ecs.LayerLadders,
	levels.LayerDynamicItems: ecs.LayerDynamicItems,
	levels.LayerDynamicTiles: ecs.LayerDynamicTiles,
}

// tileBody returns the physics body a tile layer gets. Ladders and hazards
// are overlap-only and get none.
func tileBody(t *prefabs.Tuning, layer ecs.Layer, size float64) (ecs.BodyOptions, bool) {
	opts := ecs.BodyOptions{Width: size, Height: size}
	switch layer {
	case ecs.LayerPlatforms:
		opts.Type = ecs.BodyStatic
		opts.Friction = t.Physics.WallFriction
		opts.Tag = ecs.TagWall
	case ecs.LayerDynamicTiles:
		opts.Type = ecs.BodyStatic
		opts.Friction = t.Physics.ItemFriction
		opts.Tag = ecs.TagBlock
	case ecs.LayerDynamicItems:
		opts.Type = ecs.BodyDynamic
		opts.Mass = t.Physics.ItemMass
		opts.Friction = t.Physics.ItemFriction
		opts.Tag = ecs.TagItem
	case ecs.LayerCoins, ecs.LayerHearts, ecs.LayerPowerUps:
		opts.Type = ecs.BodyDynamic
		opts.Mass = t.Physics.ItemMass
		opts.Friction = t.Physics.ItemFriction
		opts.Tag = ecs.TagPickup
	default:
		return opts, false
	}
	return opts, true
}

// NewTile spawns one map tile centred on (x, y).
func NewTile(w *ecs.World, t *prefabs.Tuning, layer ecs.Layer, x, y, size float64, props map[string]string) (ecs.Entity, error) {
	e := ecs.AddEntity(w, layer, component.Transform{X: x, Y: y, Width: size, Height: size})

	switch layer {
	case ecs.LayerCoins, ecs.LayerHearts, ecs.LayerPowerUps:
		copied := make(map[string]string, len(props))
		for k, v := range props {
			copied[k] = v
		}
		if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Properties: copied}); err != nil {
			return 0, fmt.Errorf("tile: add pickup: %w", err)
		}
	}

	if opts, ok := tileBody(t, layer, size); ok {
		if _, err := w.PhysicsWorld().AddBody(e, x, y, opts); err != nil {
			return 0, fmt.Errorf("tile: add body: %w", err)
		}
	}
	return e, nil
}

// NewMovingPlatform spawns a kinematic platform from its bottom-left corner
// in world pixels.
func NewMovingPlatform(w *ecs.World, t *prefabs.Tuning, left, bottom, width, height float64, bounds component.Boundary, changeX, changeY float64) (ecs.Entity, error) {
	x, y := left+width/2, bottom+height/2
	e := ecs.AddEntity(w, ecs.LayerMovingPlatforms, component.Transform{X: x, Y: y, Width: width, Height: height})
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{ChangeX: changeX, ChangeY: changeY}); err != nil {
		return 0, fmt.Errorf("platform: add motion: %w", err)
	}
	if err := ecs.Add(w, e, component.BoundaryComponent.Kind(), &bounds); err != nil {
		return 0, fmt.Errorf("platform: add boundary: %w", err)
	}
	if _, err := w.PhysicsWorld().AddBody(e, x, y, ecs.BodyOptions{
		Type:     ecs.BodyKinematic,
		Width:    width,
		Height:   height,
		Friction: t.Physics.WallFriction,
		Tag:      ecs.TagMovingPlatform,
	}); err != nil {
		return 0, fmt.Errorf("platform: add body: %w", err)
	}
	return e, nil
}
