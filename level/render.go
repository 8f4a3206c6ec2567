package level

import (
	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/render"
)

// ClampOffset limits a scroll offset so a viewport of the given size never
// shows past either end of extent. A viewport at least as large as the
// extent always gets offset 0.
func ClampOffset(offset, extent, viewport int) int {
	return common.ClampInt(offset, 0, extent-viewport)
}

// RenderTiles clamps the scroll offset to the grid, hands it to s, and draws
// every cell that overlaps the viewport, plus one extra row and column for
// partially visible tiles.
func (l *Level) RenderTiles(s render.Surface, xOffset, yOffset int) {
	if l == nil || s == nil {
		return
	}
	ts := common.TileSize
	xOffset = ClampOffset(xOffset, l.width*ts, s.Width())
	yOffset = ClampOffset(yOffset, l.height*ts, s.Height())
	s.SetOffset(xOffset, yOffset)

	x0, x1 := xOffset/ts, (xOffset+s.Width())/ts
	y0, y1 := yOffset/ts, (yOffset+s.Height())/ts
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			l.Tile(x, y).Render(s, l, x*ts, y*ts)
		}
	}
}

// RenderEntities draws entities layer by layer, lowest layer first.
func (l *Level) RenderEntities(s render.Surface) {
	if l == nil || s == nil {
		return
	}
	for layer := MinRenderLayer; layer <= MaxRenderLayer; layer++ {
		for _, e := range l.entities {
			if e.RenderLayer() == layer {
				e.Render(s)
			}
		}
	}
}

// Render draws the tiles and then the entities on top of them.
func (l *Level) Render(s render.Surface, xOffset, yOffset int) {
	l.RenderTiles(s, xOffset, yOffset)
	l.RenderEntities(s)
}
