package level

import (
	"image"
	"math/rand"
	"time"

	"github.com/milk9111/tilelevel/tile"
	"github.com/sirupsen/logrus"
)

// Rand is the randomness source used when decoding parent tiles.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Level is one playable area: a grid of tile ids, the entities on it, and
// optionally the color-keyed image the grid was decoded from.
//
// A Level is not safe for concurrent use; all calls are expected on the
// simulation goroutine.
type Level struct {
	name      string
	nextLevel string
	width     int
	height    int
	tiles     []tile.ID
	entities  []Entity

	path   string
	format string
	image  *image.NRGBA

	registry *tile.Registry
	rand     Rand
	log      logrus.FieldLogger

	ticking  bool
	skipped  map[Entity]struct{}
	removing map[Entity]struct{}
}

// New creates a level with a zeroed width x height grid. Use Generate to
// fill it procedurally or Load to replace it from an image.
func New(name string, width, height int, reg *tile.Registry) *Level {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if reg == nil {
		reg = tile.NewRegistry()
	}
	return &Level{
		name:     name,
		width:    width,
		height:   height,
		tiles:    make([]tile.ID, width*height),
		registry: reg,
		rand:     NewRand(0),
		log:      logrus.StandardLogger(),
	}
}

// SetRand replaces the randomness source used by decode.
func (l *Level) SetRand(r Rand) {
	if l == nil || r == nil {
		return
	}
	l.rand = r
}

// SetLogger replaces the diagnostics sink.
func (l *Level) SetLogger(log logrus.FieldLogger) {
	if l == nil || log == nil {
		return
	}
	l.log = log
}

func (l *Level) Name() string { return l.name }

func (l *Level) Width() int { return l.width }

func (l *Level) Height() int { return l.height }

func (l *Level) NextLevelName() string { return l.nextLevel }

// SetNextLevel names the level that follows this one. The name is not
// checked.
func (l *Level) SetNextLevel(name string) {
	if l == nil {
		return
	}
	l.nextLevel = name
}

// Path returns the file the level image was loaded from, if any.
func (l *Level) Path() string { return l.path }

// SetPath changes where Save writes the level image.
func (l *Level) SetPath(path string) {
	if l == nil {
		return
	}
	l.path = path
}

// Format returns the decoded image format name ("png", "bmp", ...).
func (l *Level) Format() string { return l.format }

// Image returns the level image, or nil for procedural levels.
func (l *Level) Image() image.Image {
	if l == nil || l.image == nil {
		return nil
	}
	return l.image
}

func (l *Level) Registry() *tile.Registry { return l.registry }

// AddEntity appends e. Duplicates are not checked.
func (l *Level) AddEntity(e Entity) {
	if l == nil || e == nil {
		return
	}
	l.entities = append(l.entities, e)
}

// RemoveEntity notifies e and then takes it off the level. It returns false
// without side effects when e is not on the level.
func (l *Level) RemoveEntity(e Entity) bool {
	if l == nil || e == nil {
		return false
	}
	if _, busy := l.removing[e]; busy {
		return false
	}
	if l.indexOf(e) < 0 {
		return false
	}

	if l.removing == nil {
		l.removing = make(map[Entity]struct{})
	}
	l.removing[e] = struct{}{}
	e.Removed(l)
	delete(l.removing, e)

	// Removed may have changed the list
	if idx := l.indexOf(e); idx >= 0 {
		l.entities = append(l.entities[:idx], l.entities[idx+1:]...)
	}
	if l.ticking {
		if l.skipped == nil {
			l.skipped = make(map[Entity]struct{})
		}
		l.skipped[e] = struct{}{}
	}
	return true
}

// Entities returns a copy of the entity list in insertion order.
func (l *Level) Entities() []Entity {
	if l == nil {
		return nil
	}
	return append([]Entity(nil), l.entities...)
}

// Tick advances the level by one step. Every entity on the level when the
// tick starts is updated at most once, in list order, even if it was added
// more than once. Entities removed during the tick are skipped and entities
// added during the tick wait for the next one. Every registered tile type
// is then ticked once.
func (l *Level) Tick() {
	if l == nil {
		return
	}
	snapshot := append([]Entity(nil), l.entities...)
	visited := make(map[Entity]struct{}, len(snapshot))
	l.ticking = true
	for _, e := range snapshot {
		if _, gone := l.skipped[e]; gone {
			continue
		}
		if _, done := visited[e]; done {
			continue
		}
		visited[e] = struct{}{}
		e.Update(l)
	}
	l.ticking = false
	l.skipped = nil

	l.registry.Tick()
}

func (l *Level) indexOf(e Entity) int {
	for i, cur := range l.entities {
		if cur == e {
			return i
		}
	}
	return -1
}
