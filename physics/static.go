package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/level"
)

const collisionTypeSolid cp.CollisionType = 1

// Rect is a run of solid cells, in tile units.
type Rect struct {
	X, Y int
	W, H int
}

// Static is a physics space holding one static box per merged run of solid
// tiles. It is a snapshot: rebuild it after editing the level.
type Static struct {
	space  *cp.Space
	rects  []Rect
	width  float64
	height float64
}

// NewStatic builds the collision space for l. Cells outside the grid are
// not given boxes; Solid treats them as solid instead.
func NewStatic(l *level.Level) *Static {
	space := cp.NewSpace()
	s := &Static{space: space}
	if l == nil {
		return s
	}

	ts := float64(common.TileSize)
	s.width = float64(l.Width()) * ts
	s.height = float64(l.Height()) * ts
	s.rects = MergeSolid(l.Width(), l.Height(), func(x, y int) bool {
		return l.Tile(x, y).Solid()
	})

	for _, r := range s.rects {
		x0 := float64(r.X) * ts
		y0 := float64(r.Y) * ts
		bb := cp.BB{L: x0, B: y0, R: x0 + float64(r.W)*ts, T: y0 + float64(r.H)*ts}
		shape := cp.NewBox2(space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		space.AddShape(shape)
	}
	return s
}

// MergeSolid covers the solid cells of a width x height grid with
// rectangles, growing each one greedily along the row and then downwards.
func MergeSolid(width, height int, solid func(x, y int) bool) []Rect {
	if width <= 0 || height <= 0 || solid == nil {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	open := func(x, y int) bool { return !visited[index(x, y)] && solid(x, y) }

	var out []Rect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !open(x, y) {
				continue
			}

			w := 1
			for x+w < width && open(x+w, y) {
				w++
			}

			h := 1
		grow:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !open(xi, y+h) {
						break grow
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					visited[index(xx, yy)] = true
				}
			}
			out = append(out, Rect{X: x, Y: y, W: w, H: h})
		}
	}
	return out
}

// Solid reports whether world pixel (px, py) lies inside a solid box or
// outside the level.
func (s *Static) Solid(px, py float64) bool {
	if s == nil || s.space == nil {
		return true
	}
	if px < 0 || py < 0 || px >= s.width || py >= s.height {
		return true
	}
	info := s.space.PointQueryNearest(cp.Vector{X: px, Y: py}, 0, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil
}

// Shapes returns the number of boxes in the space.
func (s *Static) Shapes() int {
	if s == nil {
		return 0
	}
	return len(s.rects)
}

// Rects returns the merged rectangles in tile units.
func (s *Static) Rects() []Rect {
	if s == nil {
		return nil
	}
	return append([]Rect(nil), s.rects...)
}

// Space exposes the underlying space so dynamic bodies can be added.
func (s *Static) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}
