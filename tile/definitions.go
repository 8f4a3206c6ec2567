package tile

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

//go:embed tiles.yaml
var defaultDefinitions []byte

const (
	KindBasic    = "basic"
	KindAnimated = "animated"
	KindLiquid   = "liquid"
)

// Definition is one tile entry in a definitions document.
type Definition struct {
	ID         int      `yaml:"id"`
	Name       string   `yaml:"name"`
	Color      string   `yaml:"color"`
	Display    string   `yaml:"display"`
	Kind       string   `yaml:"kind"`
	Solid      bool     `yaml:"solid"`
	Children   []string `yaml:"children"`
	Frames     []string `yaml:"frames"`
	FrameTicks int      `yaml:"frame_ticks"`
}

type Definitions struct {
	Tiles []Definition `yaml:"tiles"`
}

// Default builds a fresh registry from the embedded definitions. Each call
// returns independent tile instances, so animation state is not shared.
func Default() *Registry {
	reg, err := LoadDefinitions(defaultDefinitions)
	if err != nil {
		panic(fmt.Sprintf("tile: embedded definitions: %v", err))
	}
	return reg
}

// LoadDefinitionsFile reads a YAML definitions file from disk.
func LoadDefinitionsFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tile: load %s: %w", path, err)
	}
	reg, err := LoadDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("tile: load %s: %w", path, err)
	}
	return reg, nil
}

// LoadDefinitions parses a YAML definitions document into a validated
// registry.
func LoadDefinitions(data []byte) (*Registry, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("tile: unmarshal definitions: %w", err)
	}

	reg := NewRegistry()
	bases := make(map[string]*Basic, len(defs.Tiles))
	for _, d := range defs.Tiles {
		t, base, err := buildType(d)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(t); err != nil {
			return nil, err
		}
		bases[d.Name] = base
	}

	// children refer to names, so resolve them once everything is registered
	for _, d := range defs.Tiles {
		if len(d.Children) == 0 {
			continue
		}
		ids := make([]ID, 0, len(d.Children))
		for _, name := range d.Children {
			child, ok := reg.ByName(name)
			if !ok {
				return nil, fmt.Errorf("tile: %q: unknown child %q", d.Name, name)
			}
			ids = append(ids, child.ID())
		}
		bases[d.Name].setChildren(ids)
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func buildType(d Definition) (Type, *Basic, error) {
	if d.ID < 0 || d.ID >= MaxTypes {
		return nil, nil, fmt.Errorf("tile: %q: id %d out of range", d.Name, d.ID)
	}
	if strings.TrimSpace(d.Name) == "" {
		return nil, nil, fmt.Errorf("tile: id %d: missing name", d.ID)
	}
	levelColor, err := ParseColor(d.Color)
	if err != nil {
		return nil, nil, fmt.Errorf("tile: %q: %w", d.Name, err)
	}

	base := NewBasic(ID(d.ID), d.Name, levelColor, d.Solid)
	if d.Display != "" {
		display, err := ParseColor(d.Display)
		if err != nil {
			return nil, nil, fmt.Errorf("tile: %q: display: %w", d.Name, err)
		}
		base.SetDrawColor(display)
	}

	kind := strings.ToLower(strings.TrimSpace(d.Kind))
	switch kind {
	case "", KindBasic:
		return base, base, nil
	case KindAnimated, KindLiquid:
		frames := make([]color.RGBA, 0, len(d.Frames))
		for _, f := range d.Frames {
			c, err := ParseColor(f)
			if err != nil {
				return nil, nil, fmt.Errorf("tile: %q: frame: %w", d.Name, err)
			}
			frames = append(frames, c)
		}
		anim := NewAnimated(base, d.FrameTicks, frames...)
		if kind == KindLiquid {
			return NewLiquid(anim), base, nil
		}
		return anim, base, nil
	default:
		return nil, nil, fmt.Errorf("tile: %q: unknown kind %q", d.Name, d.Kind)
	}
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or an SVG color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	hex := ""
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		hex = s[2:]
	}
	if hex != "" {
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}
