package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/config"
	"github.com/milk9111/tilelevel/entity"
	"github.com/milk9111/tilelevel/level"
	"github.com/milk9111/tilelevel/levels"
	"github.com/milk9111/tilelevel/physics"
	"github.com/milk9111/tilelevel/render/ebitensurface"
	"github.com/milk9111/tilelevel/tile"
	"github.com/sirupsen/logrus"
)

var drifterColor = color.RGBA{R: 0xff, G: 0x40, B: 0xc0, A: 0xff}

var paintKeys = []ebiten.Key{
	ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type Game struct {
	cfg   config.Config
	store *levels.Store
	log   logrus.FieldLogger
	rand  level.Rand

	level   *level.Level
	static  *physics.Static
	surface *ebitensurface.Surface

	camX, camY int
	paint      tile.ID
	frames     int

	paused bool
	menu   *ebitenui.UI

	reloads chan []string
}

func NewGame(cfg config.Config, store *levels.Store, log logrus.FieldLogger) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		store:   store,
		log:     log,
		rand:    level.NewRand(cfg.Seed),
		surface: ebitensurface.New(nil),
		paint:   1,
		reloads: make(chan []string, 8),
	}

	m, err := store.Manifest()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m.Levels))
	for _, e := range m.Levels {
		names = append(names, e.Name)
	}
	g.menu = newLevelMenu(g, names)

	name := cfg.StartLevel
	if name == "" {
		name = m.First()
	}
	if err := g.enter(name); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) enter(name string) error {
	l, err := g.store.Load(name)
	if err != nil {
		return fmt.Errorf("enter %s: %w", name, err)
	}
	g.level = l
	g.static = physics.NewStatic(l)
	g.camX, g.camY = 0, 0
	g.log.WithFields(logrus.Fields{"name": name, "boxes": g.static.Shapes()}).Info("entered level")
	return nil
}

// watch forwards changed level names until the watcher closes.
func (g *Game) watch(w *levels.Watcher) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if names := g.store.Changed(path); len(names) > 0 {
				g.reloads <- names
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			g.log.WithError(err).Warn("watcher error")
		}
	}
}

func (g *Game) Update() error {
	g.frames++

	select {
	case names := <-g.reloads:
		for _, name := range names {
			if name == g.level.Name() {
				if err := g.enter(name); err != nil {
					g.log.WithError(err).Error("reload failed")
				}
				break
			}
		}
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.menu.Update()
		return nil
	}

	speed := g.cfg.ScrollSpeed
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += speed
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if next := g.level.NextLevelName(); next != "" {
			if err := g.enter(next); err != nil {
				g.log.WithError(err).Error("next level failed")
			}
		}
	}
	for i, k := range paintKeys {
		if inpututil.IsKeyJustPressed(k) && g.level.Registry().Has(tile.ID(i)) {
			g.paint = tile.ID(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && g.level.Path() != "" {
		if err := g.level.Save(); err != nil {
			g.log.WithError(err).Error("save failed")
		}
	}

	wx, wy := g.cursor()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		d := entity.NewDrifter(wx, wy, g.rand.Intn(5)-2, g.rand.Intn(5)-2, drifterColor)
		d.Bounce = true
		g.level.AddEntity(d)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		g.paintAt(wx, wy)
	}

	g.level.Tick()
	return nil
}

func (g *Game) paintAt(wx, wy int) {
	x := common.FloorDiv(wx, common.TileSize)
	y := common.FloorDiv(wy, common.TileSize)
	if id, ok := g.level.TileID(x, y); !ok || id == g.paint {
		return
	}
	var err error
	if g.level.Image() != nil {
		err = g.level.UpdateTileSheet(x, y, g.level.Registry().Lookup(g.paint))
	} else {
		err = g.level.SetTile(g.paint, x, y)
	}
	if err != nil {
		g.log.WithError(err).Warn("paint failed")
		return
	}
	g.static = physics.NewStatic(g.level)
}

// cursor returns the mouse position in world pixels.
func (g *Game) cursor() (int, int) {
	mx, my := ebiten.CursorPosition()
	ox, oy := g.surface.Offset()
	return mx + ox, my + oy
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.surface.Reset(screen)
	g.level.Render(g.surface, g.camX, g.camY)
	g.camX, g.camY = g.surface.Offset()

	wx, wy := g.cursor()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  FPS %.0f  entities %d  paint %d  solid %v",
		g.level.Name(), ebiten.ActualFPS(), len(g.level.Entities()), g.paint,
		g.static.Solid(float64(wx), float64(wy))))

	if g.paused {
		g.menu.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.ScreenWidth), float64(g.cfg.ScreenHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
