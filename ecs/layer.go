package ecs

import "github.com/milk9111/jinx/ecs/component"

// Layer is the gameplay category an entity belongs to. Every registered
// entity is in exactly one layer.
type Layer int

const (
	LayerNone Layer = iota
	LayerPlayer
	LayerEnemies
	LayerAllies
	LayerPlayerBullets
	LayerPlayerGrenades
	LayerEnemyBullets
	LayerShield
	LayerPlatforms
	LayerMovingPlatforms
	LayerDynamicItems
	LayerDynamicTiles
	LayerCoins
	LayerHearts
	LayerPowerUps
	LayerDontTouch
	LayerLadders
	layerCount
)

// Names match the layer names used in level maps.
var layerNames = [layerCount]string{
	LayerNone:            "",
	LayerPlayer:          "Player",
	LayerEnemies:         "Enemies",
	LayerAllies:          "Allies",
	LayerPlayerBullets:   "Player Bullets",
	LayerPlayerGrenades:  "Player Grenades",
	LayerEnemyBullets:    "Enemy Bullets",
	LayerShield:          "Shield",
	LayerPlatforms:       "Platforms",
	LayerMovingPlatforms: "Moving Platforms",
	LayerDynamicItems:    "Dynamic Items",
	LayerDynamicTiles:    "Dynamic Tiles",
	LayerCoins:           "Coins",
	LayerHearts:          "Hearts",
	LayerPowerUps:        "Power Ups",
	LayerDontTouch:       "Don't Touch",
	LayerLadders:         "Ladders",
}

func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return "Layer(?)"
	}
	return layerNames[l]
}

func ParseLayer(name string) (Layer, bool) {
	for l := LayerNone + 1; l < layerCount; l++ {
		if layerNames[l] == name {
			return l, true
		}
	}
	return LayerNone, false
}

// Layers lists every real layer in declaration order.
func Layers() []Layer {
	out := make([]Layer, 0, layerCount-1)
	for l := LayerNone + 1; l < layerCount; l++ {
		out = append(out, l)
	}
	return out
}

type layerIndex struct {
	members map[Layer][]Entity
	of      map[Entity]Layer
}

func newLayerIndex() layerIndex {
	return layerIndex{
		members: make(map[Layer][]Entity),
		of:      make(map[Entity]Layer),
	}
}

func (li *layerIndex) add(e Entity, l Layer) {
	li.members[l] = append(li.members[l], e)
	li.of[e] = l
}

func (li *layerIndex) remove(e Entity) {
	l, ok := li.of[e]
	if !ok {
		return
	}
	delete(li.of, e)
	members := li.members[l]
	for i, m := range members {
		if m == e {
			li.members[l] = append(members[:i], members[i+1:]...)
			return
		}
	}
}

// AddEntity creates an entity in layer with the given bounds. The bounds
// become its Transform and its collision box.
func AddEntity(w *World, layer Layer, t component.Transform) Entity {
	e := CreateEntity(w)
	transform := t
	if err := Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
		panic("ecs: add transform to new entity: " + err.Error())
	}
	w.layers.add(e, layer)
	w.space.add(e, layer, transform)
	return e
}

// RemoveEntity is DestroyEntity under the registry's name. Removing an entity
// twice is a no-op that reports false.
func RemoveEntity(w *World, e Entity) bool {
	return DestroyEntity(w, e)
}

// EntitiesIn returns a snapshot of layer's members in insertion order. It is
// safe to remove entities while ranging over it.
func EntitiesIn(w *World, layer Layer) []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.layers.members[layer]...)
}

func CountIn(w *World, layer Layer) int {
	if w == nil {
		return 0
	}
	return len(w.layers.members[layer])
}

func LayerOf(w *World, e Entity) (Layer, bool) {
	if w == nil {
		return LayerNone, false
	}
	l, ok := w.layers.of[e]
	return l, ok
}

func InLayer(w *World, e Entity, layer Layer) bool {
	l, ok := LayerOf(w, e)
	return ok && l == layer
}

// Move re-centres an entity and its collision box.
func Move(w *World, e Entity, x, y float64) bool {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	t.X, t.Y = x, y
	w.space.update(e, *t)
	return true
}

// Translate moves an entity by a delta.
func Translate(w *World, e Entity, dx, dy float64) bool {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	return Move(w, e, t.X+dx, t.Y+dy)
}
