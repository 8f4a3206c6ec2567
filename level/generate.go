package level

import (
	"fmt"

	"github.com/milk9111/tilelevel/tile"
)

// Generator produces a full row-major grid for a width x height level.
type Generator interface {
	Generate(width, height int) ([]tile.ID, error)
}

// GeneratorFunc adapts a per-cell function to a Generator.
type GeneratorFunc func(x, y int) tile.ID

func (f GeneratorFunc) Generate(width, height int) ([]tile.ID, error) {
	out := make([]tile.ID, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[x+y*width] = f(x, y)
		}
	}
	return out, nil
}

// Checkerboard fills cells where x*y%10 < 5 with Low and the rest with High.
type Checkerboard struct {
	Low  tile.ID
	High tile.ID
}

func (c Checkerboard) Generate(width, height int) ([]tile.ID, error) {
	return GeneratorFunc(func(x, y int) tile.ID {
		if x*y%10 < 5 {
			return c.Low
		}
		return c.High
	}).Generate(width, height)
}

// DefaultCheckerboard is the grass/stone Checkerboard of reg.
func DefaultCheckerboard(reg *tile.Registry) (Checkerboard, error) {
	grass, ok := reg.ByName("grass")
	if !ok {
		return Checkerboard{}, fmt.Errorf("level: registry has no grass tile")
	}
	stone, ok := reg.ByName("stone")
	if !ok {
		return Checkerboard{}, fmt.Errorf("level: registry has no stone tile")
	}
	return Checkerboard{Low: grass.ID(), High: stone.ID()}, nil
}

// Generate fills the grid from g. The result goes through ReplaceAll, so a
// generator returning the wrong number of cells leaves the grid untouched.
func (l *Level) Generate(g Generator) error {
	if l == nil || g == nil {
		return fmt.Errorf("level: nothing to generate")
	}
	tiles, err := g.Generate(l.width, l.height)
	if err != nil {
		return fmt.Errorf("level: generate %s: %w", l.name, err)
	}
	return l.ReplaceAll(tiles)
}
