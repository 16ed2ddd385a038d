package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arena/logging"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	arenaName := flag.String("arena", "arena", "arena name in prefabs/ (basename, .yaml optional)")
	playerOne := flag.String("p1", "", "player one controls: keyboard1, keyboard2 or joystick")
	playerTwo := flag.String("p2", "", "player two controls: keyboard1, keyboard2 or joystick")
	watch := flag.Bool("watch", false, "reload prefabs and scripts from disk while running")
	mute := flag.Bool("mute", false, "run without opening an audio device")
	logLevel := flag.String("level", "", "log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.New(logging.Options{Debug: *debug, Level: *logLevel})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Config{
		Arena:    *arenaName,
		Controls: [2]string{*playerOne, *playerTwo},
		Debug:    *debug,
		Watch:    *watch,
		Mute:     *mute,
	}, logger)
	if err != nil {
		logger.Fatal("game: setup failed", zap.Error(err))
	}
	defer game.Close()

	w, h := game.WindowSize()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(game.Title())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game: run failed", zap.Error(err))
	}
}
