package system

import (
	"log"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/ecs/entity"
	"github.com/milk9111/jinx/prefabs"
)

// ProgressionSystem derives the tier from the score.
type ProgressionSystem struct {
	tuning *prefabs.Tuning
}

func NewProgressionSystem(t *prefabs.Tuning) *ProgressionSystem {
	return &ProgressionSystem{tuning: t}
}

func (s *ProgressionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	tier := s.tuning.Ladder().TierFor(p.state.Score)
	if tier > p.state.Tier {
		w.Events().Emit(ecs.EventTierUp, p.entity, tier)
	}
	p.state.Tier = tier
}

// WeaponSystem runs the shoot and shield cooldowns and throws grenades.
type WeaponSystem struct {
	tuning *prefabs.Tuning
}

func NewWeaponSystem(t *prefabs.Tuning) *WeaponSystem {
	return &WeaponSystem{tuning: t}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.tuning == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	in := inputOf(w)
	st := p.state
	cfg := s.tuning.Weapons
	dir := component.FacingRight
	if f, ok := ecs.Get(w, p.entity, component.FacingComponent.Kind()); ok {
		dir = f.Direction
	}

	st.Shoot.Tick(cfg.ShootCooldown, st.Tier)
	if in.Shoot && st.Shoot.Trigger() {
		e, err := entity.NewPlayerBullet(w, s.tuning, st.Tier, p.transform.X, p.transform.Y, dir)
		if err != nil {
			log.Printf("weapons: %v", err)
		} else {
			w.Events().Emit(ecs.EventPlayerShot, e, nil)
		}
	}

	st.Shield.Tick(cfg.ShieldCooldown, st.Tier)
	if in.Shield && st.Shield.Trigger() {
		e, err := entity.NewShield(w, s.tuning, st.Tier, p.transform.X, p.transform.Y, dir)
		if err != nil {
			log.Printf("weapons: %v", err)
		} else {
			w.Events().Emit(ecs.EventShieldRaised, e, nil)
		}
	}

	s.throwGrenades(w, p, in)
}

// throwGrenades fires tier grenades at the stored aim point. A booster
// charge keeps the trigger latched, so charges are spent one per frame until
// they run out; a regular throw needs tier 1 and releases the latch.
func (s *WeaponSystem) throwGrenades(w *ecs.World, p playerRef, in component.Input) {
	st := p.state
	if in.Fire {
		st.FireLatched = true
	}
	if !st.FireLatched {
		return
	}

	count := 0
	if st.GrenadeBooster > 0 {
		st.GrenadeBooster--
		count = st.Tier
	} else {
		st.FireLatched = false
		if st.Tier >= 1 {
			count = st.Tier
		}
	}

	thrown := 0
	for i := 0; i < count; i++ {
		if _, err := entity.NewGrenade(w, s.tuning, st.Tier, *p.transform, st.AimX, st.AimY); err != nil {
			log.Printf("weapons: %v", err)
			continue
		}
		thrown++
	}
	if thrown > 0 {
		w.Events().Emit(ecs.EventGrenadeThrown, p.entity, thrown)
	}
}
