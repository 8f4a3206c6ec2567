package entity

import (
	"image/color"

	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/level"
	"github.com/milk9111/tilelevel/render"
)

var (
	_ level.Entity = (*Base)(nil)
	_ level.Entity = (*Marker)(nil)
	_ level.Entity = (*Drifter)(nil)
)

// Base is an entity with a position and render layer and no behaviour.
// Embed it and override the methods that matter.
type Base struct {
	X, Y  int // world pixel top-left
	Layer int
}

func (b *Base) Position() (int, int)  { return b.X, b.Y }
func (b *Base) RenderLayer() int      { return b.Layer }
func (b *Base) Update(*level.Level)   {}
func (b *Base) Render(render.Surface) {}
func (b *Base) Removed(*level.Level)  {}

// MoveTo places the entity at world pixel (x, y).
func (b *Base) MoveTo(x, y int) {
	if b == nil {
		return
	}
	b.X = x
	b.Y = y
}

// Marker is a coloured square, mostly useful for spawn points and debug
// overlays.
type Marker struct {
	Base
	Size  int
	Color color.RGBA
}

// NewMarker creates a tile-sized marker at world pixel (x, y).
func NewMarker(x, y, layer int, c color.RGBA) *Marker {
	return &Marker{
		Base:  Base{X: x, Y: y, Layer: layer},
		Size:  common.TileSize,
		Color: c,
	}
}

func (m *Marker) Render(s render.Surface) {
	if m == nil || s == nil {
		return
	}
	s.Fill(m.X, m.Y, m.Size, m.Size, m.Color)
}

// Drifter moves by its velocity every tick. It takes itself off the level
// once its position leaves the grid. With Bounce set it reverses instead of
// entering solid tiles.
type Drifter struct {
	Marker
	VX, VY int
	Bounce bool

	OnRemoved func(d *Drifter)
	removed   bool
}

func NewDrifter(x, y, vx, vy int, c color.RGBA) *Drifter {
	return &Drifter{Marker: *NewMarker(x, y, level.MaxRenderLayer, c), VX: vx, VY: vy}
}

func (d *Drifter) Update(l *level.Level) {
	if d == nil || l == nil || d.removed {
		return
	}
	nx, ny := d.X+d.VX, d.Y+d.VY
	ts := common.TileSize
	if nx < 0 || ny < 0 || nx >= l.Width()*ts || ny >= l.Height()*ts {
		d.MoveTo(nx, ny)
		l.RemoveEntity(d)
		return
	}
	if d.Bounce && l.SolidAt(nx, ny) {
		d.VX, d.VY = -d.VX, -d.VY
		return
	}
	d.MoveTo(nx, ny)
}

func (d *Drifter) Removed(*level.Level) {
	if d == nil {
		return
	}
	d.removed = true
	if d.OnRemoved != nil {
		d.OnRemoved(d)
	}
}

// Gone reports whether the drifter has been removed from its level.
func (d *Drifter) Gone() bool {
	return d != nil && d.removed
}
