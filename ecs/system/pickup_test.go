package system

import (
	"testing"

	"github.com/milk9111/jinx/ecs"
	"github.com/stretchr/testify/assert"
)

func TestPickups(t *testing.T) {
	tests := []struct {
		name    string
		layer   ecs.Layer
		props   map[string]string
		event   ecs.EventType
		score   int
		lives   int
		booster int
		guarded bool
		latched bool
	}{
		{"coin", ecs.LayerCoins, map[string]string{"Points": "10"}, ecs.EventCoinCollected, 10, 3, 0, false, false},
		{"big coin", ecs.LayerCoins, map[string]string{"Points": "100"}, ecs.EventCoinCollected, 100, 3, 0, false, false},
		{"coin without points", ecs.LayerCoins, nil, ecs.EventCoinCollected, 0, 3, 0, false, false},
		{"heart", ecs.LayerHearts, map[string]string{"Lives": "1"}, ecs.EventHeartCollected, 0, 4, 0, false, false},
		{"shield power-up", ecs.LayerPowerUps, map[string]string{"Shield": "300"}, ecs.EventPowerUpCollected, 0, 3, 0, true, false},
		{"grenade power-up", ecs.LayerPowerUps, map[string]string{"Grenades": "5"}, ecs.EventPowerUpCollected, 0, 3, 5, false, true},
		{"speed power-up", ecs.LayerPowerUps, map[string]string{"Speed": "2"}, ecs.EventPowerUpCollected, 0, 3, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			pickup := f.tile(t, tt.layer, 100, 300, tt.props)

			NewPickupSystem().Update(f.w)

			assert.False(t, ecs.IsAlive(f.w, pickup), "pickup is always consumed")
			assert.False(t, f.w.PhysicsWorld().HasBody(pickup))
			st := f.state(t)
			assert.Equal(t, tt.score, st.Score)
			assert.Equal(t, tt.lives, st.Lives)
			assert.Equal(t, tt.booster, st.GrenadeBooster)
			assert.Equal(t, tt.guarded, st.Guard.Invincible())
			assert.Equal(t, tt.latched, st.FireLatched)
			assert.Equal(t, 1, countEvents(f.w.Events().Drain(), tt.event))
		})
	}
}

func TestPickupOutOfReachIsKept(t *testing.T) {
	f := newFixture(t)
	coin := f.tile(t, ecs.LayerCoins, 400, 300, map[string]string{"Points": "10"})

	NewPickupSystem().Update(f.w)

	assert.True(t, ecs.IsAlive(f.w, coin))
	assert.Zero(t, f.state(t).Score)
}

func TestGrenadePowerUpThrowsWithoutClick(t *testing.T) {
	f := newFixture(t)
	st := f.state(t)
	st.Tier = 2
	f.tile(t, ecs.LayerPowerUps, 100, 300, map[string]string{"Grenades": "1"})

	NewPickupSystem().Update(f.w)
	weapons := NewWeaponSystem(f.tuning)
	weapons.Update(f.w)
	assert.Equal(t, 2, ecs.CountIn(f.w, ecs.LayerPlayerGrenades), "boosted volley")
	weapons.Update(f.w)
	assert.Equal(t, 4, ecs.CountIn(f.w, ecs.LayerPlayerGrenades), "regular volley releases the latch")
	assert.False(t, st.FireLatched)
	weapons.Update(f.w)
	assert.Equal(t, 4, ecs.CountIn(f.w, ecs.LayerPlayerGrenades))
}
