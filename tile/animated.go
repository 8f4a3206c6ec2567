package tile

import (
	"image/color"

	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/render"
)

const defaultFrameTicks = 15

// Animated cycles through a list of draw colors, one step every frameTicks
// ticks.
type Animated struct {
	*Basic
	frames     []color.RGBA
	frameTicks int
	ticks      int
	frame      int
}

func NewAnimated(base *Basic, frameTicks int, frames ...color.RGBA) *Animated {
	if frameTicks <= 0 {
		frameTicks = defaultFrameTicks
	}
	fs := make([]color.RGBA, 0, len(frames))
	for _, f := range frames {
		fs = append(fs, opaque(f))
	}
	if len(fs) == 0 {
		fs = append(fs, base.drawColor)
	}
	return &Animated{Basic: base, frames: fs, frameTicks: frameTicks}
}

func (a *Animated) Tick() {
	if a == nil {
		return
	}
	a.ticks++
	if a.ticks >= a.frameTicks {
		a.ticks = 0
		a.frame = (a.frame + 1) % len(a.frames)
	}
}

// Frame returns the index of the current frame.
func (a *Animated) Frame() int {
	if a == nil {
		return 0
	}
	return a.frame
}

// CurrentColor returns the draw color of the current frame.
func (a *Animated) CurrentColor() color.RGBA {
	return a.frames[a.frame]
}

func (a *Animated) Render(s render.Surface, _ Map, px, py int) {
	if a == nil || s == nil {
		return
	}
	s.Fill(px, py, common.TileSize, common.TileSize, a.CurrentColor())
}

// Liquid is an animated tile that shades its border wherever the
// neighbouring cell holds a different tile type.
type Liquid struct {
	*Animated
}

func NewLiquid(a *Animated) *Liquid {
	return &Liquid{Animated: a}
}

func (l *Liquid) Render(s render.Surface, m Map, px, py int) {
	if l == nil || s == nil {
		return
	}
	l.Animated.Render(s, m, px, py)
	if m == nil {
		return
	}

	cur := l.CurrentColor()
	edge := color.RGBA{R: common.Darken(cur.R, 0.6), G: common.Darken(cur.G, 0.6), B: common.Darken(cur.B, 0.6), A: 0xff}
	x := common.FloorDiv(px, common.TileSize)
	y := common.FloorDiv(py, common.TileSize)
	ts := common.TileSize

	if l.differs(m.Tile(x, y-1)) {
		s.Fill(px, py, ts, 1, edge)
	}
	if l.differs(m.Tile(x, y+1)) {
		s.Fill(px, py+ts-1, ts, 1, edge)
	}
	if l.differs(m.Tile(x-1, y)) {
		s.Fill(px, py, 1, ts, edge)
	}
	if l.differs(m.Tile(x+1, y)) {
		s.Fill(px+ts-1, py, 1, ts, edge)
	}
}

func (l *Liquid) differs(t Type) bool {
	return t == nil || t.ID() != l.ID()
}
