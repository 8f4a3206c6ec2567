package tile

import (
	"image/color"

	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/render"
)

// ID identifies a tile type in a Registry. It is the value stored per cell
// in a level grid.
type ID uint8

// VoidID is the id reserved for the sentinel tile returned outside a grid.
const VoidID ID = 0

// Map is the read side of a level grid, as seen by tiles while rendering.
// Out-of-range coordinates resolve to the registry's void tile.
type Map interface {
	Tile(x, y int) Type
}

// Type describes one kind of tile. Types are shared by every cell that uses
// them, so per-type state (animation frames) advances once per tick no
// matter how many cells reference it.
type Type interface {
	ID() ID
	Name() string
	// LevelColor is the color key used in level images.
	LevelColor() color.RGBA
	IsParent() bool
	// Children are the variant ids that may replace a parent on decode.
	Children() []ID
	Solid() bool
	Tick()
	Render(s render.Surface, m Map, px, py int)
}

// Basic is a static tile drawn as a flat square.
type Basic struct {
	id         ID
	name       string
	levelColor color.RGBA
	drawColor  color.RGBA
	solid      bool
	children   []ID
}

// NewBasic creates a static tile. The draw color defaults to the level color.
func NewBasic(id ID, name string, levelColor color.RGBA, solid bool, children ...ID) *Basic {
	return &Basic{
		id:         id,
		name:       name,
		levelColor: opaque(levelColor),
		drawColor:  opaque(levelColor),
		solid:      solid,
		children:   append([]ID(nil), children...),
	}
}

// SetDrawColor overrides the color used when rendering.
func (b *Basic) SetDrawColor(c color.RGBA) {
	if b == nil {
		return
	}
	b.drawColor = opaque(c)
}

func (b *Basic) ID() ID                 { return b.id }
func (b *Basic) Name() string           { return b.name }
func (b *Basic) LevelColor() color.RGBA { return b.levelColor }
func (b *Basic) IsParent() bool         { return len(b.children) > 0 }
func (b *Basic) Solid() bool            { return b.solid }
func (b *Basic) Tick()                  {}

func (b *Basic) Children() []ID {
	return append([]ID(nil), b.children...)
}

func (b *Basic) DrawColor() color.RGBA {
	return b.drawColor
}

func (b *Basic) Render(s render.Surface, _ Map, px, py int) {
	if b == nil || s == nil {
		return
	}
	s.Fill(px, py, common.TileSize, common.TileSize, b.drawColor)
}

func (b *Basic) setChildren(ids []ID) {
	b.children = append([]ID(nil), ids...)
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}
