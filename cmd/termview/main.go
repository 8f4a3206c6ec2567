package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/config"
	"github.com/milk9111/tilelevel/level"
	"github.com/milk9111/tilelevel/levels"
	"github.com/milk9111/tilelevel/logging"
	"github.com/milk9111/tilelevel/render"
	"github.com/sirupsen/logrus"
)

type viewer struct {
	screen  tcell.Screen
	surface *render.TermSurface
	store   *levels.Store
	log     logrus.FieldLogger

	level      *level.Level
	camX, camY int
}

func newViewer(screen tcell.Screen, store *levels.Store, log logrus.FieldLogger, name string) (*viewer, error) {
	v := &viewer{
		screen:  screen,
		surface: render.NewTermSurface(screen, common.TileSize, common.TileSize),
		store:   store,
		log:     log,
	}
	if err := v.enter(name); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *viewer) enter(name string) error {
	l, err := v.store.Load(name)
	if err != nil {
		return err
	}
	v.level = l
	v.camX, v.camY = 0, 0
	return nil
}

// handle applies one event and reports whether the viewer should keep
// running.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.key(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		return false
	}
	return true
}

func (v *viewer) key(k tcell.Key, r rune) bool {
	step := common.TileSize
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.camX -= step
	case tcell.KeyRight:
		v.camX += step
	case tcell.KeyUp:
		v.camY -= step
	case tcell.KeyDown:
		v.camY += step
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'n':
			if next := v.level.NextLevelName(); next != "" {
				if err := v.enter(next); err != nil {
					v.log.WithError(err).Error("next level failed")
				}
			}
		}
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	v.level.Render(v.surface, v.camX, v.camY)
	v.camX, v.camY = v.surface.Offset()
	v.screen.Show()
}

func (v *viewer) run() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			events <- ev
			if ev == nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-ticker.C:
			v.level.Tick()
			v.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "config file (yaml)")
	levelName := flag.String("level", "", "level name from the manifest")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	// stderr belongs to the terminal UI, so only a log file is kept
	logger, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Quiet: true})
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	store, err := levels.NewStore(levels.Options{Dir: cfg.LevelsDir, Logger: logger, Seed: cfg.Seed})
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	name := *levelName
	if name == "" {
		name = cfg.StartLevel
	}
	if name == "" {
		m, err := store.Manifest()
		if err != nil {
			log.Fatal(err)
		}
		name = m.First()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	v, err := newViewer(screen, store, logger, name)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	v.run()
	screen.Fini()
}
