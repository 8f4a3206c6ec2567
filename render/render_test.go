package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func TestRasterFill(t *testing.T) {
	type rect struct{ x, y, w, h int }
	cases := []struct {
		name    string
		offX    int
		offY    int
		fill    rect
		inside  [][2]int
		outside [][2]int
	}{
		{
			name:    "no_offset",
			fill:    rect{2, 2, 3, 3},
			inside:  [][2]int{{2, 2}, {4, 4}},
			outside: [][2]int{{1, 1}, {5, 5}},
		},
		{
			name:    "offset_shifts_world_rect",
			offX:    8,
			offY:    4,
			fill:    rect{10, 6, 2, 2},
			inside:  [][2]int{{2, 2}, {3, 3}},
			outside: [][2]int{{10, 6}, {4, 4}},
		},
		{
			name:    "clipped_at_edge",
			fill:    rect{-2, -2, 4, 4},
			inside:  [][2]int{{0, 0}, {1, 1}},
			outside: [][2]int{{2, 2}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRaster(16, 16)
			r.SetOffset(c.offX, c.offY)
			r.Fill(c.fill.x, c.fill.y, c.fill.w, c.fill.h, red)
			for _, p := range c.inside {
				if got := r.At(p[0], p[1]); got != red {
					t.Fatalf("pixel %v: expected red, got %v", p, got)
				}
			}
			for _, p := range c.outside {
				if got := r.At(p[0], p[1]); got == red {
					t.Fatalf("pixel %v: expected untouched", p)
				}
			}
		})
	}
}

func TestRasterNil(t *testing.T) {
	var r *Raster
	r.Fill(0, 0, 1, 1, red)
	r.SetOffset(1, 1)
	if r.Width() != 0 || r.Height() != 0 {
		t.Fatalf("nil raster should report zero size")
	}
}

func TestTermSurfaceFill(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 5)

	s := NewTermSurface(screen, 8, 8)
	if s.Width() != 80 || s.Height() != 40 {
		t.Fatalf("expected 80x40, got %dx%d", s.Width(), s.Height())
	}

	s.SetOffset(8, 0)
	s.Fill(16, 8, 8, 8, red)

	_, _, style, _ := screen.GetContent(1, 1)
	_, bg, _ := style.Decompose()
	if bg != tcell.NewRGBColor(0xff, 0, 0) {
		t.Fatalf("expected red background at cell (1,1), got %v", bg)
	}
	_, _, style, _ = screen.GetContent(2, 1)
	_, bg, _ = style.Decompose()
	if bg == tcell.NewRGBColor(0xff, 0, 0) {
		t.Fatalf("cell (2,1) should be untouched")
	}
}
