package levels

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/milk9111/tilelevel/level"
	"github.com/milk9111/tilelevel/tile"
	"github.com/sirupsen/logrus"
)

// ErrUnknownLevel is returned for names missing from the manifest.
var ErrUnknownLevel = errors.New("levels: unknown level")

// Options configures a Store. Zero values fall back to the embedded levels,
// the default tile registry and the standard logger.
type Options struct {
	// Dir is checked before the embedded files. Levels found there are
	// loaded with a save path so edits can be written back.
	Dir        string
	FS         fs.FS
	Registry   *tile.Registry
	Logger     logrus.FieldLogger
	Seed       int64
	CacheBytes int64
}

type file struct {
	data []byte
	disk string
}

// Store resolves level names through the manifest and builds levels from
// image or script files.
type Store struct {
	dir      string
	fsys     fs.FS
	registry *tile.Registry
	log      logrus.FieldLogger
	seed     int64

	cache *ristretto.Cache[string, *file]

	mu       sync.Mutex
	manifest *Manifest
}

func NewStore(opts Options) (*Store, error) {
	if opts.FS == nil {
		opts.FS = LevelsFS
	}
	if opts.Registry == nil {
		opts.Registry = tile.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.CacheBytes <= 0 {
		opts.CacheBytes = 16 << 20
	}

	cache, err := ristretto.NewCache[string, *file](&ristretto.Config[string, *file]{
		NumCounters: 1000,
		MaxCost:     opts.CacheBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("levels: cache: %w", err)
	}

	return &Store{
		dir:      opts.Dir,
		fsys:     opts.FS,
		registry: opts.Registry,
		log:      opts.Logger,
		seed:     opts.Seed,
		cache:    cache,
	}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) Registry() *tile.Registry { return s.registry }

// Manifest returns the parsed level chain, reading it on first use and
// after it has been invalidated.
func (s *Store) Manifest() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manifest != nil {
		return s.manifest, nil
	}
	f, err := s.read(ManifestFile)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(f.data)
	if err != nil {
		return nil, err
	}
	s.manifest = m
	return m, nil
}

// Read returns the contents of a level file and the disk path it came from,
// empty for embedded files.
func (s *Store) Read(name string) ([]byte, string, error) {
	f, err := s.read(name)
	if err != nil {
		return nil, "", err
	}
	return f.data, f.disk, nil
}

func (s *Store) read(name string) (*file, error) {
	clean := cleanLevelPath(name)
	if f, ok := s.cache.Get(clean); ok && f != nil {
		return f, nil
	}

	f := &file{}
	if s.dir != "" {
		path := filepath.Join(s.dir, filepath.FromSlash(clean))
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			f.data = data
			f.disk = path
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}
	if f.disk == "" {
		data, err := fs.ReadFile(s.fsys, clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
		f.data = data
	}

	s.cache.Set(clean, f, int64(len(f.data))+1)
	s.cache.Wait()
	return f, nil
}

// Load builds the named level with its next level set.
func (s *Store) Load(name string) (*level.Level, error) {
	m, err := s.Manifest()
	if err != nil {
		return nil, err
	}
	e, ok := m.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}

	l := level.New(e.Name, e.Width, e.Height, s.registry)
	l.SetLogger(s.log)
	l.SetRand(level.NewRand(s.seed))
	l.SetNextLevel(e.Next)

	if e.Script != "" {
		src, _, err := s.Read(e.Script)
		if err != nil {
			return nil, err
		}
		if err := l.Generate(level.NewScriptGenerator(src, s.registry)); err != nil {
			return nil, err
		}
		return l, nil
	}

	data, disk, err := s.Read(e.Image)
	if err != nil {
		return nil, err
	}
	if err := l.Decode(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	if disk != "" {
		l.SetPath(disk)
	}
	return l, nil
}

// Invalidate drops a cached file. Invalidating the manifest also forgets
// the parsed level chain.
func (s *Store) Invalidate(name string) {
	clean := cleanLevelPath(name)
	s.cache.Del(clean)
	if clean == ManifestFile {
		s.mu.Lock()
		s.manifest = nil
		s.mu.Unlock()
	}
}

// Changed invalidates the file at path, which is inside Dir, and returns
// the names of the levels that need reloading. A manifest change reports
// every level.
func (s *Store) Changed(path string) []string {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	s.Invalidate(rel)

	m, err := s.Manifest()
	if err != nil {
		s.log.WithError(err).Error("levels: manifest reload failed")
		return nil
	}
	if rel == ManifestFile {
		names := make([]string, 0, len(m.Levels))
		for _, e := range m.Levels {
			names = append(names, e.Name)
		}
		return names
	}
	return m.Using(rel)
}

func (s *Store) Close() {
	if s == nil || s.cache == nil {
		return
	}
	s.cache.Close()
}
