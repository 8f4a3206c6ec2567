package level

import (
	"github.com/milk9111/tilelevel/tile"
	"github.com/sirupsen/logrus"
)

// Tile returns the tile type at cell (x, y), or the void tile when the cell
// is outside the grid.
func (l *Level) Tile(x, y int) tile.Type {
	if l == nil {
		return nil
	}
	if !l.InBounds(x, y) {
		return l.registry.Void()
	}
	return l.registry.Lookup(l.tiles[x+y*l.width])
}

// TileID returns the raw id at (x, y).
func (l *Level) TileID(x, y int) (tile.ID, bool) {
	if l == nil || !l.InBounds(x, y) {
		return 0, false
	}
	return l.tiles[x+y*l.width], true
}

// InBounds reports whether (x, y) is a cell of the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}

// SetTile writes id at (x, y). When the level has an image, the cell's pixel
// is rewritten with the tile's level color so the two stay in step.
func (l *Level) SetTile(id tile.ID, x, y int) error {
	if l == nil || !l.InBounds(x, y) {
		return ErrOutOfBounds
	}
	l.tiles[x+y*l.width] = id
	l.syncPixel(x, y, l.registry.Lookup(id))
	return nil
}

// ReplaceAll overwrites the whole grid. A slice of the wrong length is
// reported as a CorruptedLevelError and the grid is left as it was.
func (l *Level) ReplaceAll(tiles []tile.ID) error {
	if l == nil {
		return &CorruptedLevelError{Got: len(tiles)}
	}
	if len(tiles) != l.width*l.height {
		err := &CorruptedLevelError{Name: l.name, Want: l.width * l.height, Got: len(tiles)}
		l.log.WithFields(logrus.Fields{"name": l.name}).WithError(err).Error("level file corrupted")
		return err
	}
	copy(l.tiles, tiles)
	if l.image != nil {
		for y := 0; y < l.height; y++ {
			for x := 0; x < l.width; x++ {
				l.syncPixel(x, y, l.registry.Lookup(l.tiles[x+y*l.width]))
			}
		}
	}
	return nil
}

// Tiles exposes the backing grid, row-major, for bulk transfer. Callers
// must not resize the slice. Writes through it do not reach the image; use
// SetTile or ReplaceAll for that.
func (l *Level) Tiles() []tile.ID {
	if l == nil {
		return nil
	}
	return l.tiles
}
