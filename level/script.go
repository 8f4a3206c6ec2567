package level

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilelevel/tile"
)

// ScriptGenerator runs a tengo script once per cell. The script sees x, y,
// width and height and must assign the global tile, either a tile name or
// an id:
//
//	tile = x * y % 10 < 5 ? "grass" : "stone"
//
// tile is predeclared, so scripts assign it with = rather than :=.
type ScriptGenerator struct {
	src      []byte
	registry *tile.Registry
}

func NewScriptGenerator(src []byte, reg *tile.Registry) *ScriptGenerator {
	return &ScriptGenerator{src: src, registry: reg}
}

func (g *ScriptGenerator) Generate(width, height int) ([]tile.ID, error) {
	if g == nil || g.registry == nil {
		return nil, fmt.Errorf("script generator: no registry")
	}
	script := tengo.NewScript(g.src)
	for _, name := range []string{"x", "y", "width", "height"} {
		_ = script.Add(name, 0)
	}
	_ = script.Add("tile", "")
	script.SetImports(stdlib.GetModuleMap("math", "text", "rand", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script generator: compile: %w", err)
	}
	if err := compiled.Set("width", width); err != nil {
		return nil, err
	}
	if err := compiled.Set("height", height); err != nil {
		return nil, err
	}

	out := make([]tile.ID, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := compiled.Set("x", x); err != nil {
				return nil, err
			}
			if err := compiled.Set("y", y); err != nil {
				return nil, err
			}
			if err := compiled.Set("tile", ""); err != nil {
				return nil, err
			}
			if err := compiled.Run(); err != nil {
				return nil, fmt.Errorf("script generator: run at (%d,%d): %w", x, y, err)
			}
			id, err := g.resolve(compiled.Get("tile").Value())
			if err != nil {
				return nil, fmt.Errorf("script generator: at (%d,%d): %w", x, y, err)
			}
			out[x+y*width] = id
		}
	}
	return out, nil
}

func (g *ScriptGenerator) resolve(v any) (tile.ID, error) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return 0, fmt.Errorf("tile not assigned")
		}
		ty, ok := g.registry.ByName(t)
		if !ok {
			return 0, fmt.Errorf("unknown tile %q", t)
		}
		return ty.ID(), nil
	case int64:
		if t < 0 || t >= tile.MaxTypes || !g.registry.Has(tile.ID(t)) {
			return 0, fmt.Errorf("unknown tile id %d", t)
		}
		return tile.ID(t), nil
	default:
		return 0, fmt.Errorf("tile must be a name or id, got %T", v)
	}
}
