package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilelevel/common"
)

// TermSurface maps blocks of cellW x cellH world pixels onto single terminal
// cells and paints them with a background color.
type TermSurface struct {
	screen tcell.Screen
	cellW  int
	cellH  int
	offX   int
	offY   int
}

func NewTermSurface(screen tcell.Screen, cellW, cellH int) *TermSurface {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &TermSurface{screen: screen, cellW: cellW, cellH: cellH}
}

func (s *TermSurface) Width() int {
	if s == nil || s.screen == nil {
		return 0
	}
	w, _ := s.screen.Size()
	return w * s.cellW
}

func (s *TermSurface) Height() int {
	if s == nil || s.screen == nil {
		return 0
	}
	_, h := s.screen.Size()
	return h * s.cellH
}

func (s *TermSurface) SetOffset(x, y int) {
	if s == nil {
		return
	}
	s.offX = x
	s.offY = y
}

func (s *TermSurface) Offset() (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.offX, s.offY
}

// Fill colors every cell the rect touches.
func (s *TermSurface) Fill(x, y, w, h int, c color.Color) {
	if s == nil || s.screen == nil || w <= 0 || h <= 0 {
		return
	}
	cols, rows := s.screen.Size()
	x0 := common.FloorDiv(x-s.offX, s.cellW)
	y0 := common.FloorDiv(y-s.offY, s.cellH)
	x1 := common.FloorDiv(x-s.offX+w-1, s.cellW)
	y1 := common.FloorDiv(y-s.offY+h-1, s.cellH)

	style := tcell.StyleDefault.Background(termColor(c))
	for cy := max(y0, 0); cy <= y1 && cy < rows; cy++ {
		for cx := max(x0, 0); cx <= x1 && cx < cols; cx++ {
			s.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

func termColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
