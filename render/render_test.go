package render

import (
	"math/rand"
	"testing"

	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/entity"
	"github.com/milk9111/jinx/levels"
	"github.com/milk9111/jinx/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(1280, 720, 2)
	cam.SnapTo(900, 400)

	for i := 0; i < 20; i++ {
		x, y := rand.Float64()*2000, rand.Float64()*800
		sx, sy := cam.ToScreen(x, y)
		wx, wy := cam.ToWorld(sx, sy)
		assert.InDelta(t, x, wx, 1e-9)
		assert.InDelta(t, y, wy, 1e-9)
	}
}

func TestCameraYUp(t *testing.T) {
	cam := NewCamera(1280, 720, 1)
	cam.SnapTo(640, 360)

	_, low := cam.ToScreen(0, 0)
	_, high := cam.ToScreen(0, 720)
	assert.Equal(t, 720.0, low)
	assert.Equal(t, 0.0, high)
}

func TestCameraClamp(t *testing.T) {
	tests := []struct {
		name         string
		worldW       float64
		worldH       float64
		target       [2]float64
		wantX, wantY float64
	}{
		{"unbounded", 0, 0, [2]float64{-500, -500}, -500, -500},
		{"left edge", 4000, 1000, [2]float64{0, 500}, 640, 500},
		{"right edge", 4000, 1000, [2]float64{5000, 500}, 3360, 500},
		{"floor", 4000, 1000, [2]float64{1000, -100}, 1000, 360},
		{"world smaller than view", 600, 300, [2]float64{1000, 1000}, 300, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(1280, 720, 1)
			cam.SetWorldBounds(tt.worldW, tt.worldH)
			cam.SnapTo(tt.target[0], tt.target[1])
			assert.Equal(t, tt.wantX, cam.PosX)
			assert.Equal(t, tt.wantY, cam.PosY)
		})
	}
}

func TestCameraEases(t *testing.T) {
	cam := NewCamera(100, 100, 1)
	cam.SnapTo(0, 0)
	cam.SetSmooth(0.5)
	cam.Update(100, 0)
	assert.Equal(t, 50.0, cam.PosX)

	cam.SetSmooth(0)
	cam.Update(10, 20)
	assert.Equal(t, 10.0, cam.PosX)
	assert.Equal(t, 20.0, cam.PosY)
}

func TestHUDFor(t *testing.T) {
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	lvl, err := levels.Embedded().Load(0)
	require.NoError(t, err)
	w, err := entity.BuildLevel(tuning, lvl, entity.RunState{Score: 120, Lives: 2})
	require.NoError(t, err)

	h := HUDFor(w, 0)
	assert.Equal(t, HUD{Score: 120, Lives: 2, Tier: 1, Level: 0}, h)
	assert.Equal(t, []string{"Score 120", "Lives 2", "Tier 1", "Level 1"}, h.Lines())

	h.Booster = 3
	h.Message = "GAME OVER"
	assert.Equal(t, []string{"Score 120", "Lives 2", "Tier 1", "Level 1", "Grenades x3", "", "GAME OVER"}, h.Lines())

	assert.Equal(t, HUD{Level: 1}, HUDFor(nil, 1))
}

func TestPaletteCoversDrawOrder(t *testing.T) {
	for _, l := range drawOrder {
		_, ok := Palette[l]
		assert.True(t, ok, l.String())
	}
	assert.Len(t, drawOrder, len(ecs.Layers()))
}
