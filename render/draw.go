package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var face = text.NewGoXFace(basicfont.Face7x13)

// Palette is the fill colour of each layer. Layers without an entry are not
// drawn.
var Palette = map[ecs.Layer]color.Color{
	ecs.LayerPlatforms:       color.RGBA{0x55, 0x4a, 0x3c, 0xff},
	ecs.LayerMovingPlatforms: color.RGBA{0x8a, 0x6d, 0x3b, 0xff},
	ecs.LayerDynamicTiles:    color.RGBA{0x9c, 0x5b, 0x2e, 0xff},
	ecs.LayerDynamicItems:    color.RGBA{0xb0, 0x8e, 0x5a, 0xff},
	ecs.LayerLadders:         color.RGBA{0x6b, 0x4f, 0x2a, 0xa0},
	ecs.LayerDontTouch:       color.RGBA{0xd0, 0x20, 0x20, 0xff},
	ecs.LayerCoins:           color.RGBA{0xf5, 0xc5, 0x18, 0xff},
	ecs.LayerHearts:          color.RGBA{0xe8, 0x4a, 0x6f, 0xff},
	ecs.LayerPowerUps:        color.RGBA{0x4a, 0xc8, 0xe8, 0xff},
	ecs.LayerAllies:          color.RGBA{0x5a, 0xc8, 0x5a, 0xff},
	ecs.LayerEnemies:         color.RGBA{0xa0, 0x30, 0xc0, 0xff},
	ecs.LayerEnemyBullets:    color.RGBA{0xff, 0x60, 0x20, 0xff},
	ecs.LayerPlayerBullets:   color.RGBA{0xff, 0xff, 0x80, 0xff},
	ecs.LayerPlayerGrenades:  color.RGBA{0x30, 0x60, 0x30, 0xff},
	ecs.LayerShield:          color.RGBA{0x80, 0xc0, 0xff, 0xc0},
	ecs.LayerPlayer:          color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
}

// drawOrder paints terrain first and the player last.
var drawOrder = []ecs.Layer{
	ecs.LayerLadders,
	ecs.LayerPlatforms,
	ecs.LayerMovingPlatforms,
	ecs.LayerDynamicTiles,
	ecs.LayerDynamicItems,
	ecs.LayerDontTouch,
	ecs.LayerCoins,
	ecs.LayerHearts,
	ecs.LayerPowerUps,
	ecs.LayerAllies,
	ecs.LayerEnemies,
	ecs.LayerEnemyBullets,
	ecs.LayerPlayerBullets,
	ecs.LayerPlayerGrenades,
	ecs.LayerShield,
	ecs.LayerPlayer,
}

var (
	background = color.RGBA{0x1c, 0x24, 0x33, 0xff}
	hudColor   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	speechTint = color.RGBA{0xd8, 0xf0, 0xd8, 0xff}
)

// World draws every visible entity of w through cam. With debug set, each
// box also gets an outline and the player's animation state is printed.
func World(screen *ebiten.Image, w *ecs.World, cam *Camera, debug bool) {
	screen.Fill(background)
	if w == nil {
		return
	}
	for _, layer := range drawOrder {
		clr, ok := Palette[layer]
		if !ok {
			continue
		}
		for _, e := range ecs.EntitiesIn(w, layer) {
			t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				continue
			}
			box(screen, cam, *t, clr, debug)
		}
	}
	speech(screen, w, cam)
	if debug {
		playerDebug(screen, w, cam)
	}
}

func box(screen *ebiten.Image, cam *Camera, t component.Transform, clr color.Color, outline bool) {
	x, y := cam.ToScreen(t.Left(), t.Top())
	z := cam.Zoom()
	wpx, hpx := float32(t.Width*z), float32(t.Height*z)
	vector.FillRect(screen, float32(x), float32(y), wpx, hpx, clr, false)
	if outline {
		vector.StrokeRect(screen, float32(x), float32(y), wpx, hpx, 1, color.White, false)
	}
}

func speech(screen *ebiten.Image, w *ecs.World, cam *Camera) {
	ecs.ForEach2(w, component.SpeechComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, s *component.Speech, t *component.Transform) {
		if s.Text == "" {
			return
		}
		x, y := cam.ToScreen(t.Left(), t.Top()+20)
		label(screen, s.Text, x, y, speechTint)
	})
}

func playerDebug(screen *ebiten.Image, w *ecs.World, cam *Camera) {
	e, st, ok := ecs.Singleton(w, component.PlayerStateComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	state := component.AnimIdle
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		state = anim.State
	}
	x, y := cam.ToScreen(t.Left(), t.Top()+6)
	label(screen, fmt.Sprintf("%s grounded=%t ladder=%t", state, st.Grounded, st.OnLadder), x, y, hudColor)
}

// HUD is the run summary shown in the corner of the screen.
type HUD struct {
	Score   int
	Lives   int
	Tier    int
	Level   int
	Booster int
	Message string
}

// HUDFor reads the HUD values from the live world.
func HUDFor(w *ecs.World, level int) HUD {
	h := HUD{Level: level}
	if w == nil {
		return h
	}
	if _, st, ok := ecs.Singleton(w, component.PlayerStateComponent.Kind()); ok {
		h.Score, h.Lives, h.Tier, h.Booster = st.Score, st.Lives, st.Tier, st.GrenadeBooster
	}
	return h
}

func (h HUD) Lines() []string {
	lines := []string{
		fmt.Sprintf("Score %d", h.Score),
		fmt.Sprintf("Lives %d", h.Lives),
		fmt.Sprintf("Tier %d", h.Tier),
		fmt.Sprintf("Level %d", h.Level+1),
	}
	if h.Booster > 0 {
		lines = append(lines, fmt.Sprintf("Grenades x%d", h.Booster))
	}
	if h.Message != "" {
		lines = append(lines, "", h.Message)
	}
	return lines
}

func (h HUD) Draw(screen *ebiten.Image) {
	for i, line := range h.Lines() {
		label(screen, line, 12, 12+float64(i)*16, hudColor)
	}
}

func label(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
