package main

import (
	"errors"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jinx/audio"
	"github.com/milk9111/jinx/ecs"
	"github.com/milk9111/jinx/ecs/component"
	"github.com/milk9111/jinx/firing"
	"github.com/milk9111/jinx/levels"
	"github.com/milk9111/jinx/prefabs"
	"github.com/milk9111/jinx/render"
	"github.com/milk9111/jinx/session"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	frameDT    = 1.0 / 60
)

type Options struct {
	Level int
	Seed  int64
	Mute  bool
	Watch bool
	Debug bool
}

type Game struct {
	frames int
	debug  bool

	sess    *session.Session
	camera  *render.Camera
	cues    *audio.CuePlayer
	watcher *prefabs.Watcher
	loaded  *ecs.World
}

func NewGame(opts Options) (*Game, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}
	table, err := firing.LoadTable()
	if err != nil {
		return nil, err
	}
	sess, err := session.New(levels.Embedded(), tuning, table, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:  opts.Debug,
		sess:   sess,
		camera: render.NewCamera(baseWidth, baseHeight, 1),
		cues:   audio.NewCuePlayer(0.4),
	}
	g.cues.SetMuted(opts.Mute)
	if !opts.Mute {
		if err := g.cues.Open(); err != nil {
			log.Printf("audio disabled: %v", err)
			g.cues.SetMuted(true)
		}
	}
	sess.Subscribe(g.cues.Handle)
	sess.Subscribe(func(evt ecs.Event) {
		if g.debug && evt.Type != ecs.EventEnemyBulletFired {
			log.Printf("event %s %v", evt.Type, evt.Data)
		}
	})

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := sess.Start(opts.Level); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	if g.sess.State() == session.StateGameOver {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := g.sess.Restart(); err != nil {
				log.Printf("restart failed: %v", err)
			}
		}
		return nil
	}

	err := g.sess.Update(g.input(), frameDT)
	if err != nil && !errors.Is(err, session.ErrGameOver) {
		log.Printf("update: %v", err)
	}
	g.follow()
	return nil
}

// input polls the keyboard and mouse into one frame of player input.
func (g *Game) input() component.Input {
	in := component.Input{
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Jump:   inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Shoot:  ebiten.IsKeyPressed(ebiten.KeyF),
		Shield: ebiten.IsKeyPressed(ebiten.KeyE),
		Fire:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	cx, cy := ebiten.CursorPosition()
	in.AimX, in.AimY = g.camera.ToWorld(float64(cx), float64(cy))
	return in
}

// follow keeps the camera on the player and snaps it whenever the world is
// rebuilt.
func (g *Game) follow() {
	w := g.sess.World()
	if w == nil {
		return
	}
	e, _, ok := ecs.Singleton(w, component.PlayerStateComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if _, info, ok := ecs.Singleton(w, component.LevelInfoComponent.Kind()); ok {
		g.camera.SetWorldBounds(info.Width, info.Height)
	}
	if g.loaded != w {
		g.loaded = w
		g.camera.SnapTo(t.X, t.Y)
		return
	}
	g.camera.Update(t.X, t.Y)
}

// pollWatcher queues edited tuning and firing files for the next level load.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(c)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(c prefabs.Change) {
	switch c.Kind {
	case prefabs.ChangeTuning:
		t, err := prefabs.LoadTuning()
		if err == nil {
			err = g.sess.QueueTuning(t)
		}
		if err != nil {
			log.Printf("reload %s: %v", c.Path, err)
			return
		}
	case prefabs.ChangeFiring:
		t, err := firing.LoadTable()
		if err != nil {
			log.Printf("reload %s: %v", c.Path, err)
			return
		}
		g.sess.QueueTable(t)
	}
	log.Printf("reloaded %s %s; applies from the next level load", c.Kind, c.Path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.World(screen, g.sess.World(), g.camera, g.debug)

	hud := render.HUDFor(g.sess.World(), g.sess.Level())
	hud.Score, hud.Lives = g.sess.Score(), g.sess.Lives()
	if g.sess.State() == session.StateGameOver {
		hud.Message = "GAME OVER - press R to play again"
	}
	hud.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.cues.Close()
}
