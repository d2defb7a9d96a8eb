package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTuning(t *testing.T) {
	tuning, err := LoadTuning()
	require.NoError(t, err)

	assert.Equal(t, 1500.0, tuning.Physics.Gravity)
	assert.Equal(t, 3, tuning.Player.StartLives)
	assert.Equal(t, 100, tuning.Weapons.ShootCooldown)
	assert.Equal(t, 1000, tuning.Weapons.ShieldCooldown)
	assert.Equal(t, 9, tuning.Ladder().TierFor(1000000))
	assert.InDelta(t, 10.0, tuning.Tables().DamageMultiplier(10), 1e-9)
	assert.InDelta(t, 0.5, tuning.Tables().JumpMultiplier(0), 1e-9)
}

func TestSpriteBands(t *testing.T) {
	tuning, err := LoadTuning()
	require.NoError(t, err)

	tests := []struct {
		tier   int
		bullet string
		shield string
	}{
		{0, "swordBronze", "shieldBronze"},
		{3, "swordBronze", "shieldBronze"},
		{4, "swordSilver", "shieldSilver"},
		{7, "swordGold", "shieldGold"},
		{9, "laserGreenHorizontal", "shieldGold"},
		{10, "laserGreenHorizontal", "chomper_bullet"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bullet, tuning.BulletBand(tt.tier).Sprite, "tier %d", tt.tier)
		assert.Equal(t, tt.shield, tuning.ShieldBand(tt.tier).Sprite, "tier %d", tt.tier)
	}
}

func TestValidate(t *testing.T) {
	tuning, err := LoadTuning()
	require.NoError(t, err)

	bad := *tuning
	bad.Tiers.Ladder = []int{100, 50}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTuning)

	bad = *tuning
	bad.Tiers.Damage = []float64{1, 0.5}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTuning)

	bad = *tuning
	bad.Player.StartLives = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTuning)
}

func TestLoadFiring(t *testing.T) {
	spec, err := LoadFiring()
	require.NoError(t, err)
	assert.Len(t, spec.Archetypes, 17)

	worm := spec.Archetypes["GreenWorm"]
	require.Len(t, worm, 2)
	assert.Equal(t, "rand", worm[0].Kind)
	assert.Equal(t, 2000, worm[0].Odds)
	assert.Equal(t, "meteorGrey_tiny1", worm[0].Weapon)

	boss := spec.Archetypes["BlueSlimeBoss"]
	require.Len(t, boss, 2)
	assert.Equal(t, "script", boss[1].Kind)
	assert.Equal(t, "barrage", boss[1].Script)
	assert.Equal(t, 1000, boss[1].Odds)
	assert.Len(t, spec.Archetypes["FlufflePop"], 21)
	assert.Len(t, spec.Archetypes["DiamondShooter"], 13)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"spiral", "spiral.tengo", "scripts/spiral.tengo", "prefabs/scripts/spiral.tengo"} {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "spawns")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		op   fsnotify.Op
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/tuning.yaml", fsnotify.Write, ChangeTuning, true},
		{"prefabs/Tuning.yml", fsnotify.Create, ChangeTuning, true},
		{"prefabs/firing.yaml", fsnotify.Write, ChangeFiring, true},
		{"prefabs/scripts/spiral.tengo", fsnotify.Rename, ChangeFiring, true},
		{"prefabs/tuning.yaml", fsnotify.Chmod, 0, false},
		{"prefabs/notes.txt", fsnotify.Write, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.op.String(), func(t *testing.T) {
			c, ok := Classify(tt.path, tt.op)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.kind, c.Kind)
				assert.Equal(t, tt.path, c.Path)
			}
		})
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, writeFile(path, "physics: {}\n"))

	select {
	case c := <-w.Changes:
		assert.Equal(t, Change{Path: path, Kind: ChangeTuning}, c)
	case <-timeout():
		t.Fatal("no watcher event")
	}

	require.NoError(t, w.Close())
	for range w.Changes {
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, writeFile(filepath.Join(dir, "scripts", "spiral.tengo"), "spawns := []\n"))

	src, err := LoadScript("spiral")
	require.NoError(t, err)
	assert.Equal(t, "spawns := []\n", string(src))

	embedded, err := Load("firing.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, embedded, "files missing on disk come from the binary")

	_, err = LoadScript("")
	assert.Error(t, err)
}
