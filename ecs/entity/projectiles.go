package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/prefabs"
)

func addProjectile(w *ecs.World, e ecs.Entity, p component.Projectile, m *component.Motion) error {
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &p); err != nil {
		return fmt.Errorf("add projectile: %w", err)
	}
	if m == nil {
		return nil
	}
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), m); err != nil {
		return fmt.Errorf("add motion: %w", err)
	}
	return nil
}

// NewPlayerBullet fires a sword from (x, y). Its speed grows with tier.
func NewPlayerBullet(w *ecs.World, t *prefabs.Tuning, tier int, x, y float64, dir component.Direction) (ecs.Entity, error) {
	band := t.BulletBand(tier)
	e := ecs.AddEntity(w, ecs.LayerPlayerBullets, component.Transform{
		X: x, Y: y, Width: t.Weapons.BulletWidth, Height: t.Weapons.BulletHeight,
	})
	speed := math.Round(t.Weapons.BulletSpeed * float64(tier+1))
	angle := 0.0
	if dir == component.FacingLeft {
		angle = -180
	}
	err := addProjectile(w, e, component.Projectile{
		Owner:  component.OwnerPlayer,
		Damage: t.Weapons.BulletDamage,
		Sprite: band.Sprite,
		Scale:  band.Scale,
		Angle:  angle,
	}, &component.Motion{ChangeX: speed * dir.Sign()})
	if err != nil {
		return 0, fmt.Errorf("bullet: %w", err)
	}
	return e, nil
}

// NewShield raises a slow shield just in front of (x, y).
func NewShield(w *ecs.World, t *prefabs.Tuning, tier int, x, y float64, dir component.Direction) (ecs.Entity, error) {
	band := t.ShieldBand(tier)
	e := ecs.AddEntity(w, ecs.LayerShield, component.Transform{
		X:      x + t.Weapons.ShieldOffset*dir.Sign(),
		Y:      y,
		Width:  t.Weapons.ShieldWidth,
		Height: t.Weapons.ShieldHeight,
	})
	err := addProjectile(w, e, component.Projectile{
		Owner:  component.OwnerPlayer,
		Sprite: band.Sprite,
		Scale:  band.Scale,
	}, &component.Motion{ChangeX: t.Weapons.ShieldSpeed * dir.Sign()})
	if err != nil {
		return 0, fmt.Errorf("shield: %w", err)
	}
	return e, nil
}

// NewGrenade throws a physics grenade from the player towards the aim point.
// The grenade leaves from the edge of the player's box, gets a launch speed
// along the aim and a horizontal force that grows with tier, pushing towards
// the side it was thrown to.
func NewGrenade(w *ecs.World, t *prefabs.Tuning, tier int, player component.Transform, aimX, aimY float64) (ecs.Entity, error) {
	g := t.Grenade
	angle := math.Atan2(aimY-player.Y, aimX-player.X)
	reach := math.Max(player.Width, player.Height) / 2
	x := player.X + reach*math.Cos(angle)
	y := player.Y + reach*math.Sin(angle)
	size := g.BaseSize + float64(tier)

	e := ecs.AddEntity(w, ecs.LayerPlayerGrenades, component.Transform{X: x, Y: y, Width: size, Height: size})
	err := addProjectile(w, e, component.Projectile{
		Owner:   component.OwnerPlayer,
		Damage:  t.Weapons.BulletDamage,
		Physics: true,
		Angle:   angle * 180 / math.Pi,
	}, nil)
	if err != nil {
		return 0, fmt.Errorf("grenade: %w", err)
	}

	pw := w.PhysicsWorld()
	gravity := cp.Vector{X: 0, Y: -g.Gravity}
	damping := g.Damping
	if _, err := pw.AddBody(e, x, y, ecs.BodyOptions{
		Type:       ecs.BodyDynamic,
		Width:      size,
		Height:     size,
		Mass:       g.Mass,
		Friction:   g.Friction,
		Elasticity: g.Elasticity,
		Tag:        ecs.TagGrenade,
		Gravity:    &gravity,
		Damping:    &damping,
	}); err != nil {
		return 0, fmt.Errorf("grenade: add body: %w", err)
	}
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	pw.SetVelocity(e, cp.Vector{X: g.LaunchSpeed * dirX, Y: g.LaunchSpeed * dirY})
	force := g.Force * float64(tier)
	if dirX < 0 {
		force = -force
	}
	pw.ApplyForce(e, cp.Vector{X: force, Y: 0})
	return e, nil
}

// NewEnemyBullet spawns one projectile requested by the firing engine.
func NewEnemyBullet(w *ecs.World, t *prefabs.Tuning, s firing.Spawn) (ecs.Entity, error) {
	size := t.Weapons.EnemyBulletSize
	e := ecs.AddEntity(w, ecs.LayerEnemyBullets, component.Transform{X: s.X, Y: s.Y, Width: size, Height: size})
	err := addProjectile(w, e, component.Projectile{
		Owner:  component.OwnerEnemy,
		Weapon: s.Weapon,
		Sprite: s.Weapon,
		Scale:  1,
		Angle:  s.Angle,
	}, &component.Motion{ChangeX: s.VX, ChangeY: s.VY})
	if err != nil {
		return 0, fmt.Errorf("enemy bullet: %w", err)
	}
	return e, nil
}
