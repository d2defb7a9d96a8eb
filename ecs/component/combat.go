package component

import "github.com/milk9111/jinx/archetype"

// Damageable is an enemy or ally with health.
type Damageable struct {
	Health    float64
	Archetype archetype.Kind
}

var DamageableComponent = NewComponent[Damageable]()

type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// Projectile covers bullets, grenades and shields. Sprite and Scale are
// carried for the renderer only.
type Projectile struct {
	Owner   Owner
	Damage  float64
	Physics bool
	Weapon  string
	Sprite  string
	Scale   float64
	Angle   float64
}

var ProjectileComponent = NewComponent[Projectile]()
