package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelIndex := flag.Int("level", 0, "level index to start from")
	seed := flag.Int64("seed", 0, "random seed for enemy fire (0 picks one from the clock)")
	mute := flag.Bool("mute", false, "disable sound cues")
	watch := flag.Bool("watch", false, "reload prefabs/ tuning and firing scripts when they change on disk")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("Jinx's Adventure")

	game, err := NewGame(Options{
		Level: *levelIndex,
		Seed:  *seed,
		Mute:  *mute,
		Watch: *watch,
		Debug: *debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
