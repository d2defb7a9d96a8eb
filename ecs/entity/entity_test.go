package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/jinx/archetype"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/levels"
	"github.com/milk9111/jinx/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTuning(t *testing.T) *prefabs.Tuning {
	t.Helper()
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	return tuning
}

func testWorld(t *testing.T, tuning *prefabs.Tuning) *ecs.World {
	t.Helper()
	w := ecs.NewWorld(ecs.WithBounds(2048, 1024))
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(tuning.Physics.Gravity, tuning.Physics.Damping, tuning.Physics.Iterations))
	return w
}

func TestBuildLevelZero(t *testing.T) {
	tuning := loadTuning(t)
	lvl, err := levels.Embedded().Load(0)
	require.NoError(t, err)

	w, err := BuildLevel(tuning, lvl, RunState{Score: 120, Lives: 2})
	require.NoError(t, err)

	counts := map[ecs.Layer]int{
		ecs.LayerPlatforms:       43,
		ecs.LayerCoins:           5,
		ecs.LayerHearts:          1,
		ecs.LayerPowerUps:        2,
		ecs.LayerDontTouch:       1,
		ecs.LayerLadders:         4,
		ecs.LayerDynamicItems:    1,
		ecs.LayerDynamicTiles:    2,
		ecs.LayerEnemies:         3,
		ecs.LayerAllies:          1,
		ecs.LayerMovingPlatforms: 1,
		ecs.LayerPlayer:          1,
		ecs.LayerPlayerBullets:   0,
	}
	for layer, want := range counts {
		assert.Equal(t, want, ecs.CountIn(w, layer), layer.String())
	}

	// Ladders and hazards are overlap-only; enemies and allies have no body.
	assert.Equal(t, 56, w.PhysicsWorld().BodyCount())
	for _, e := range ecs.EntitiesIn(w, ecs.LayerLadders) {
		assert.False(t, w.PhysicsWorld().HasBody(e))
	}

	player := ecs.EntitiesIn(w, ecs.LayerPlayer)[0]
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 76.8, pt.X, 1e-9)
	assert.InDelta(t, 76.8, pt.Y, 1e-9)

	state, ok := ecs.Get(w, player, component.PlayerStateComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 120, state.Score)
	assert.Equal(t, 2, state.Lives)
	assert.Equal(t, 1, state.Tier)
	assert.True(t, state.Shoot.Ready)
	assert.True(t, state.Guard.CanDie)

	_, info, ok := ecs.Singleton(w, component.LevelInfoComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 40*51.2, info.EndOfMapX, 1e-9)
	assert.Equal(t, -100.0, info.FallY)

	plat := ecs.EntitiesIn(w, ecs.LayerMovingPlatforms)[0]
	ptr, _ := ecs.Get(w, plat, component.TransformComponent.Kind())
	assert.InDelta(t, 870.4, ptr.X, 1e-9)
	assert.InDelta(t, 179.2, ptr.Y, 1e-9)
	bounds, ok := ecs.Get(w, plat, component.BoundaryComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, bounds.Left)
	assert.Equal(t, 800.0, *bounds.Left)

	for _, e := range ecs.EntitiesIn(w, ecs.LayerEnemies) {
		d, ok := ecs.Get(w, e, component.DamageableComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, d.Archetype.BaseHealth(), d.Health)
		assert.Equal(t, archetype.FactionEnemy, d.Archetype.Faction())
	}

	ally := ecs.EntitiesIn(w, ecs.LayerAllies)[0]
	speech, ok := ecs.Get(w, ally, component.SpeechComponent.Kind())
	require.True(t, ok)
	assert.NotEmpty(t, speech.Text)

	for _, e := range ecs.EntitiesIn(w, ecs.LayerCoins) {
		assert.True(t, ecs.Has(w, e, component.PickupComponent.Kind()))
	}
}

func TestBuildLevelUnknownArchetype(t *testing.T) {
	tuning := loadTuning(t)
	lvl := &levels.Level{
		Index:      3,
		Cols:       10,
		Rows:       5,
		TileWidth:  128,
		TileHeight: 128,
		Enemies:    []levels.Actor{{Type: "dragon", Col: 2, Row: 1}},
	}

	w, err := BuildLevel(tuning, lvl, RunState{Lives: 3})
	require.Error(t, err)
	assert.Nil(t, w)
	assert.True(t, errors.Is(err, archetype.ErrUnknownArchetype))
}

func TestBuildLevelAllyTagIsNotAnEnemy(t *testing.T) {
	tuning := loadTuning(t)
	lvl := &levels.Level{
		Cols: 10, Rows: 5, TileWidth: 128, TileHeight: 128,
		Enemies: []levels.Actor{{Type: "hooboo", Col: 2, Row: 1}},
	}
	_, err := BuildLevel(tuning, lvl, RunState{Lives: 3})
	assert.ErrorIs(t, err, archetype.ErrUnknownArchetype)
}

func TestBuildLevelNilInputs(t *testing.T) {
	_, err := BuildLevel(nil, &levels.Level{}, RunState{})
	assert.Error(t, err)
	_, err = BuildLevel(loadTuning(t), nil, RunState{})
	assert.Error(t, err)
}

func TestPlayerBulletScalesWithTier(t *testing.T) {
	tuning := loadTuning(t)
	w := testWorld(t, tuning)

	tests := []struct {
		tier    int
		dir     component.Direction
		changeX float64
		angle   float64
		sprite  string
	}{
		{0, component.FacingRight, 2, 0, "swordBronze"},
		{3, component.FacingLeft, -8, -180, "swordBronze"},
		{5, component.FacingRight, 12, 0, "swordSilver"},
		{9, component.FacingRight, 20, 0, "laserGreenHorizontal"},
	}
	for _, tt := range tests {
		e, err := NewPlayerBullet(w, tuning, tt.tier, 100, 100, tt.dir)
		require.NoError(t, err)
		m, ok := ecs.Get(w, e, component.MotionComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, tt.changeX, m.ChangeX, "tier %d", tt.tier)
		p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, tt.angle, p.Angle)
		assert.Equal(t, tt.sprite, p.Sprite)
		assert.Equal(t, tuning.Weapons.BulletDamage, p.Damage)
		assert.True(t, ecs.InLayer(w, e, ecs.LayerPlayerBullets))
	}
}

func TestShieldSpawnsInFront(t *testing.T) {
	tuning := loadTuning(t)
	w := testWorld(t, tuning)

	e, err := NewShield(w, tuning, 7, 200, 100, component.FacingLeft)
	require.NoError(t, err)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 175.0, tr.X)
	m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	assert.Equal(t, -1.0, m.ChangeX)
	p, _ := ecs.Get(w, e, component.ProjectileComponent.Kind())
	assert.Equal(t, "shieldGold", p.Sprite)
	assert.Zero(t, p.Damage)
}

func TestGrenadeIsPhysicsTracked(t *testing.T) {
	tuning := loadTuning(t)
	w := testWorld(t, tuning)
	player := component.Transform{X: 100, Y: 100, Width: 38, Height: 51}

	e, err := NewGrenade(w, tuning, 2, player, 200, 100)
	require.NoError(t, err)
	require.True(t, w.PhysicsWorld().HasBody(e))

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 125.5, tr.X, 1e-9)
	assert.InDelta(t, 100, tr.Y, 1e-9)
	assert.Equal(t, 7.0, tr.Width)

	v, ok := w.PhysicsWorld().Velocity(e)
	require.True(t, ok)
	assert.InDelta(t, tuning.Grenade.LaunchSpeed, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)

	w.PhysicsWorld().Step(1.0 / 60)
	after, _ := w.PhysicsWorld().Velocity(e)
	assert.Greater(t, after.X, v.X, "tier force pushes towards the throw side")
	assert.Less(t, after.Y, 0.0, "grenade gravity pulls down")
}

func TestGrenadeForceIsHorizontal(t *testing.T) {
	tuning := loadTuning(t)
	player := component.Transform{X: 100, Y: 100, Width: 38, Height: 51}

	tests := []struct {
		name       string
		aimX, aimY float64
		pushRight  bool
	}{
		{"straight up", 100, 400, true},
		{"up and left", 0, 200, false},
		{"down and right", 300, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(t, tuning)
			e, err := NewGrenade(w, tuning, 3, player, tt.aimX, tt.aimY)
			require.NoError(t, err)

			pw := w.PhysicsWorld()
			v, _ := pw.Velocity(e)
			pw.Step(1.0 / 60)
			after, _ := pw.Velocity(e)

			if tt.pushRight {
				assert.Greater(t, after.X, v.X)
			} else {
				assert.Less(t, after.X, v.X)
			}
			// Only gravity acts vertically.
			assert.InDelta(t, -tuning.Grenade.Gravity/60, after.Y-v.Y, 1)
		})
	}
}

func TestEnemyBulletFromSpawn(t *testing.T) {
	tuning := loadTuning(t)
	w := testWorld(t, tuning)

	e, err := NewEnemyBullet(w, tuning, firing.Spawn{X: 10, Y: 20, VX: -3, VY: 1, Angle: 45, Weapon: "slimeball"})
	require.NoError(t, err)
	assert.True(t, ecs.InLayer(w, e, ecs.LayerEnemyBullets))
	p, _ := ecs.Get(w, e, component.ProjectileComponent.Kind())
	assert.Equal(t, component.OwnerEnemy, p.Owner)
	assert.Equal(t, "slimeball", p.Weapon)
	m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	assert.Equal(t, component.Motion{ChangeX: -3, ChangeY: 1}, *m)
	assert.False(t, w.PhysicsWorld().HasBody(e))
}

func TestNewActorRejectsUnknownKind(t *testing.T) {
	tuning := loadTuning(t)
	w := testWorld(t, tuning)
	_, err := NewActor(w, tuning, ActorSpec{Kind: archetype.Unknown})
	assert.ErrorIs(t, err, archetype.ErrUnknownArchetype)
}
