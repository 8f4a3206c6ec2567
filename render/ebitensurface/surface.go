// Package ebitensurface adapts an ebiten image to render.Surface.
package ebitensurface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilelevel/render"
)

var _ render.Surface = (*Surface)(nil)

// Surface draws into an ebiten image, usually the frame's screen.
type Surface struct {
	screen *ebiten.Image
	offX   int
	offY   int
}

func New(screen *ebiten.Image) *Surface {
	return &Surface{screen: screen}
}

// Reset swaps the target image. Ebiten hands Draw a screen every frame; the
// offset is kept so scrolling state survives across frames.
func (s *Surface) Reset(screen *ebiten.Image) {
	if s == nil {
		return
	}
	s.screen = screen
}

func (s *Surface) Width() int {
	if s == nil || s.screen == nil {
		return 0
	}
	return s.screen.Bounds().Dx()
}

func (s *Surface) Height() int {
	if s == nil || s.screen == nil {
		return 0
	}
	return s.screen.Bounds().Dy()
}

func (s *Surface) SetOffset(x, y int) {
	if s == nil {
		return
	}
	s.offX = x
	s.offY = y
}

func (s *Surface) Offset() (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.offX, s.offY
}

func (s *Surface) Fill(x, y, w, h int, c color.Color) {
	if s == nil || s.screen == nil || w <= 0 || h <= 0 {
		return
	}
	vector.FillRect(s.screen, float32(x-s.offX), float32(y-s.offY), float32(w), float32(h), c, false)
}
