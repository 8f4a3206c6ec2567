package main

import (
	"image/color"
	"io"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/levels"
	"github.com/sirupsen/logrus"
)

func testViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 10)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store, err := levels.NewStore(levels.Options{Logger: logger, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(store.Close)

	v, err := newViewer(screen, store, logger, "meadow")
	if err != nil {
		t.Fatal(err)
	}
	return v, screen
}

func TestViewerScrollClamps(t *testing.T) {
	v, _ := testViewer(t)

	for i := 0; i < 100; i++ {
		v.key(tcell.KeyRight, 0)
	}
	v.draw()
	// meadow is 48 tiles wide and the screen shows 20
	if want := (48 - 20) * common.TileSize; v.camX != want {
		t.Fatalf("expected camera clamped to %d, got %d", want, v.camX)
	}

	v.key(tcell.KeyLeft, 0)
	v.draw()
	if want := (48-20)*common.TileSize - common.TileSize; v.camX != want {
		t.Fatalf("expected %d after scrolling back, got %d", want, v.camX)
	}
}

func TestViewerNextAndQuit(t *testing.T) {
	v, _ := testViewer(t)
	if !v.key(tcell.KeyRune, 'n') {
		t.Fatalf("n should not quit")
	}
	if v.level.Name() != "quarry" {
		t.Fatalf("expected quarry, got %s", v.level.Name())
	}
	if v.key(tcell.KeyRune, 'q') {
		t.Fatalf("q should quit")
	}
	if v.key(tcell.KeyEscape, 0) {
		t.Fatalf("escape should quit")
	}
}

func TestViewerDrawsTiles(t *testing.T) {
	v, screen := testViewer(t)
	v.draw()

	for _, cell := range [][2]int{{0, 0}, {5, 3}, {19, 9}} {
		x, y := cell[0], cell[1]
		ty, ok := v.level.Tile(x, y).(interface{ DrawColor() color.RGBA })
		if !ok {
			t.Fatalf("cell (%d,%d) is not a flat tile", x, y)
		}
		c := ty.DrawColor()
		want := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))

		_, _, style, _ := screen.GetContent(x, y)
		_, bg, _ := style.Decompose()
		if bg != want {
			t.Fatalf("cell (%d,%d): expected background %v, got %v", x, y, want, bg)
		}
	}
}
