package levels

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/tilelevel/tile"
	"github.com/sirupsen/logrus"
)

func quietStore(t *testing.T, dir string) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s, err := NewStore(Options{Dir: dir, Logger: logger, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func writePNG(t *testing.T, path string, reg *tile.Registry, names ...string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, len(names), 1))
	for x, name := range names {
		ty, ok := reg.ByName(name)
		if !ok {
			t.Fatalf("no tile %q", name)
		}
		c := ty.LevelColor()
		img.SetNRGBA(x, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedManifest(t *testing.T) {
	s := quietStore(t, "")
	m, err := s.Manifest()
	if err != nil {
		t.Fatal(err)
	}
	if m.First() != "meadow" {
		t.Fatalf("expected meadow first, got %q", m.First())
	}

	// the chain visits every level and loops
	seen := map[string]bool{}
	name := m.First()
	for !seen[name] {
		seen[name] = true
		e, ok := m.Find(name)
		if !ok {
			t.Fatalf("chain reaches unknown level %q", name)
		}
		name = e.Next
	}
	if len(seen) != len(m.Levels) {
		t.Fatalf("chain visits %d of %d levels", len(seen), len(m.Levels))
	}
}

func TestStoreLoadEmbedded(t *testing.T) {
	s := quietStore(t, "")

	for _, name := range []string{"meadow", "quarry", "islands"} {
		t.Run(name, func(t *testing.T) {
			l, err := s.Load(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if l.Name() != name || l.Width() != 48 || l.Height() != 24 {
				t.Fatalf("unexpected level %s %dx%d", l.Name(), l.Width(), l.Height())
			}
			if l.NextLevelName() == "" {
				t.Fatalf("expected a next level")
			}
			if l.Path() != "" {
				t.Fatalf("embedded level should have no save path, got %q", l.Path())
			}
		})
	}

	islands, _ := s.Load("islands")
	if got := islands.Tile(24, 12).Name(); got != "grass" {
		t.Fatalf("expected grass at the island centre, got %s", got)
	}
	if got := islands.Tile(0, 0).Name(); got != "water" {
		t.Fatalf("expected water in the corner, got %s", got)
	}
	if islands.Image() != nil {
		t.Fatalf("script levels have no image")
	}
}

func TestStoreUnknownLevel(t *testing.T) {
	s := quietStore(t, "")
	if _, err := s.Load("nowhere"); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestStoreDiskOverride(t *testing.T) {
	dir := t.TempDir()
	s := quietStore(t, dir)
	path := filepath.Join(dir, "meadow.png")
	writePNG(t, path, s.Registry(), "sand", "water")

	l, err := s.Load("meadow")
	if err != nil {
		t.Fatal(err)
	}
	if l.Width() != 2 || l.Tile(1, 0).Name() != "water" {
		t.Fatalf("expected the disk override, got %dx%d", l.Width(), l.Height())
	}
	if l.Path() != path {
		t.Fatalf("expected save path %q, got %q", path, l.Path())
	}
	if l.NextLevelName() != "quarry" {
		t.Fatalf("next level should come from the manifest")
	}

	writePNG(t, path, s.Registry(), "lava", "lava", "lava")
	names := s.Changed(path)
	if len(names) != 1 || names[0] != "meadow" {
		t.Fatalf("expected [meadow], got %v", names)
	}
	l, err = s.Load("meadow")
	if err != nil {
		t.Fatal(err)
	}
	if l.Width() != 3 || l.Tile(0, 0).Name() != "lava" {
		t.Fatalf("expected the edited file after Changed")
	}
}

func TestStoreOverrideRemoved(t *testing.T) {
	dir := t.TempDir()
	s := quietStore(t, dir)
	path := filepath.Join(dir, "meadow.png")
	writePNG(t, path, s.Registry(), "sand", "water")

	if l, err := s.Load("meadow"); err != nil || l.Width() != 2 {
		t.Fatalf("expected the disk override, got %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	names := s.Changed(path)
	if len(names) != 1 || names[0] != "meadow" {
		t.Fatalf("expected [meadow], got %v", names)
	}

	l, err := s.Load("meadow")
	if err != nil {
		t.Fatal(err)
	}
	if l.Width() != 48 || l.Height() != 24 {
		t.Fatalf("expected the embedded meadow, got %dx%d", l.Width(), l.Height())
	}
	if l.Path() != "" {
		t.Fatalf("embedded level should have no save path, got %q", l.Path())
	}
}

func TestStoreUnreadableOverride(t *testing.T) {
	dir := t.TempDir()
	s := quietStore(t, dir)
	// a directory in place of the image cannot be read as a file
	if err := os.Mkdir(filepath.Join(dir, "meadow.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := s.Load("meadow")
	if err == nil || !strings.Contains(err.Error(), "levels: read meadow.png") {
		t.Fatalf("expected a read error, got %v", err)
	}
}

func TestStoreManifestChange(t *testing.T) {
	dir := t.TempDir()
	s := quietStore(t, dir)
	if _, err := s.Manifest(); err != nil {
		t.Fatal(err)
	}

	manifest := "levels:\n  - name: solo\n    script: solo.tengo\n    width: 2\n    height: 2\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "solo.tengo"), []byte(`tile = "sand"`), 0o644); err != nil {
		t.Fatal(err)
	}

	names := s.Changed(filepath.Join(dir, ManifestFile))
	if len(names) != 1 || names[0] != "solo" {
		t.Fatalf("expected [solo], got %v", names)
	}
	l, err := s.Load("solo")
	if err != nil {
		t.Fatal(err)
	}
	if l.Tile(1, 1).Name() != "sand" {
		t.Fatalf("expected a sand level")
	}
}

func TestParseManifest(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"ok", "levels:\n  - {name: a, image: a.png, next: a}\n", ""},
		{"empty", "levels: []\n", "no levels"},
		{"duplicate", "levels:\n  - {name: a, image: a.png}\n  - {name: a, image: b.png}\n", "duplicate"},
		{"both_sources", "levels:\n  - {name: a, image: a.png, script: a.tengo}\n", "both"},
		{"no_source", "levels:\n  - {name: a}\n", "no image or script"},
		{"script_size", "levels:\n  - {name: a, script: a.tengo}\n", "width and height"},
		{"dangling_next", "levels:\n  - {name: a, image: a.png, next: b}\n", "unknown level"},
		{"bad_start", "start: z\nlevels:\n  - {name: a, image: a.png}\n", "start"},
		{"bad_yaml", "levels: [\n", "unmarshal"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(c.doc))
			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "meadow.png")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("expected %s, got %s", target, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}

func TestWatcherReportsRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "meadow.png")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.Remove(target); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("expected %s, got %s", target, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for removed %s", target)
	}
}

func TestIsLevelFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.png":         true,
		"b/levels.yaml": true,
		"c.TENGO":       true,
		"d.bmp":         true,
		"e.txt":         false,
		"f":             false,
	} {
		if got := isLevelFile(path); got != want {
			t.Fatalf("isLevelFile(%q) = %v, want %v", path, got, want)
		}
	}
}
