package tile

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

// MaxTypes is the number of distinct ids a Registry can hold.
const MaxTypes = 256

var (
	ErrDuplicateID   = errors.New("tile: duplicate id")
	ErrDuplicateName = errors.New("tile: duplicate name")
)

// fallbackVoid is returned by Void when a registry has no id 0 entry.
var fallbackVoid = NewBasic(VoidID, "void", color.RGBA{A: 0xff}, true)

// Registry is a fixed-capacity table of tile types indexed by id. Iteration
// covers exactly the registered entries, in id order.
type Registry struct {
	byID    [MaxTypes]Type
	ordered []Type
	byName  map[string]Type
	byColor map[uint32]Type
}

func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Type),
		byColor: make(map[uint32]Type),
	}
}

// Register adds t. Ids and names must be unique.
func (r *Registry) Register(t Type) error {
	if r == nil || t == nil {
		return errors.New("tile: register nil")
	}
	if r.byID[t.ID()] != nil {
		return fmt.Errorf("%w: %d", ErrDuplicateID, t.ID())
	}
	if _, ok := r.byName[t.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, t.Name())
	}

	r.byID[t.ID()] = t
	r.byName[t.Name()] = t

	idx := sort.Search(len(r.ordered), func(i int) bool { return r.ordered[i].ID() > t.ID() })
	r.ordered = append(r.ordered, nil)
	copy(r.ordered[idx+1:], r.ordered[idx:])
	r.ordered[idx] = t

	// keep the lowest id per color so Match resolves like an id-ordered scan
	key := colorKey(t.LevelColor())
	if prev, ok := r.byColor[key]; !ok || prev.ID() > t.ID() {
		r.byColor[key] = t
	}
	return nil
}

// Lookup returns the type registered under id, or the void tile.
func (r *Registry) Lookup(id ID) Type {
	if r == nil {
		return fallbackVoid
	}
	if t := r.byID[id]; t != nil {
		return t
	}
	return r.Void()
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	return r != nil && r.byID[id] != nil
}

func (r *Registry) ByName(name string) (Type, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.byName[name]
	return t, ok
}

// Void returns the sentinel tile used outside a grid.
func (r *Registry) Void() Type {
	if r == nil || r.byID[VoidID] == nil {
		return fallbackVoid
	}
	return r.byID[VoidID]
}

// All returns the registered types in id order.
func (r *Registry) All() []Type {
	if r == nil {
		return nil
	}
	return append([]Type(nil), r.ordered...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ordered)
}

// Match returns the lowest-id type whose level color equals c. Alpha is
// ignored.
func (r *Registry) Match(c color.Color) (Type, bool) {
	if r == nil || c == nil {
		return nil, false
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	t, ok := r.byColor[colorKey(color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff})]
	return t, ok
}

// Validate checks that a void tile exists and that every child id is
// registered.
func (r *Registry) Validate() error {
	if r == nil {
		return errors.New("tile: nil registry")
	}
	if r.byID[VoidID] == nil {
		return errors.New("tile: no void tile registered with id 0")
	}
	for _, t := range r.ordered {
		for _, c := range t.Children() {
			if r.byID[c] == nil {
				return fmt.Errorf("tile: %q references unregistered child %d", t.Name(), c)
			}
		}
	}
	return nil
}

// Tick advances every registered type once.
func (r *Registry) Tick() {
	if r == nil {
		return
	}
	for _, t := range r.ordered {
		t.Tick()
	}
}

func colorKey(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
