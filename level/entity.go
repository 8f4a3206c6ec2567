package level

import "github.com/milk9111/tilelevel/render"

const (
	MinRenderLayer = 1
	MaxRenderLayer = 3
)

// Entity is a game object placed on a level. Entities are compared with ==,
// so implementations should be pointer types.
type Entity interface {
	// Position returns the entity's world pixel position.
	Position() (x, y int)
	// RenderLayer is in [MinRenderLayer, MaxRenderLayer]; higher layers draw
	// on top.
	RenderLayer() int
	Update(l *Level)
	Render(s render.Surface)
	// Removed runs before the entity is taken off l.
	Removed(l *Level)
}
