package level

import "github.com/milk9111/tilelevel/common"

// EntitiesWithin returns the entities whose position lies in the half-open
// box [x1, x2) x [y1, y2), in list order.
func (l *Level) EntitiesWithin(x1, y1, x2, y2 int) []Entity {
	if l == nil {
		return nil
	}
	var out []Entity
	for _, e := range l.entities {
		x, y := e.Position()
		if x >= x1 && x < x2 && y >= y1 && y < y2 {
			out = append(out, e)
		}
	}
	return out
}

// SolidAt reports whether the tile under world pixel (px, py) is solid.
// Pixels outside the grid resolve to the void tile.
func (l *Level) SolidAt(px, py int) bool {
	if l == nil {
		return true
	}
	return l.Tile(common.FloorDiv(px, common.TileSize), common.FloorDiv(py, common.TileSize)).Solid()
}
