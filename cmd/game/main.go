package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilelevel/config"
	"github.com/milk9111/tilelevel/levels"
	"github.com/milk9111/tilelevel/logging"
	"github.com/milk9111/tilelevel/tile"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml)")
	levelName := flag.String("level", "", "level name from the manifest")
	watch := flag.Bool("watch", false, "reload levels when files in the levels dir change")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.StartLevel = *levelName
	}
	if *watch {
		cfg.Watch = true
	}

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	reg := tile.Default()
	if cfg.TilesFile != "" {
		reg, err = tile.LoadDefinitionsFile(cfg.TilesFile)
		if err != nil {
			logger.WithError(err).Fatal("failed to load tile definitions")
		}
	}

	store, err := levels.NewStore(levels.Options{
		Dir:      cfg.LevelsDir,
		Registry: reg,
		Logger:   logger,
		Seed:     cfg.Seed,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to open level store")
	}
	defer store.Close()

	game, err := NewGame(cfg, store, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to start")
	}

	if cfg.Watch && cfg.LevelsDir != "" {
		w, err := levels.NewWatcher(cfg.LevelsDir)
		if err != nil {
			logger.WithError(err).Warn("hot reload disabled")
		} else {
			defer w.Close()
			go game.watch(w)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(float64(cfg.ScreenWidth)*cfg.Scale), int(float64(cfg.ScreenHeight)*cfg.Scale))
	ebiten.SetWindowTitle("tilelevel")

	if err := ebiten.RunGame(game); err != nil {
		logger.WithError(err).Error("game exited")
	}
}
