package level

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/png"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/milk9111/tilelevel/tile"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// VariantChance is the percent chance that a parent tile is replaced by one
// of its children on decode.
const VariantChance = 8

// Load replaces the level's grid and image with the decoded contents of the
// image at path and remembers path for Save. On failure the level is left
// unchanged.
func (l *Level) Load(path string) error {
	if l == nil {
		return ErrNoImage
	}
	f, err := os.Open(path)
	if err != nil {
		return l.loadFailed(path, err)
	}
	defer f.Close()

	if err := l.decode(f, path); err != nil {
		return err
	}
	l.path = path
	return nil
}

// LoadFS is Load for images inside fsys. The level keeps no save path.
func (l *Level) LoadFS(fsys fs.FS, name string) error {
	if l == nil {
		return ErrNoImage
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return l.loadFailed(name, err)
	}
	return l.decode(bytes.NewReader(data), name)
}

// Decode replaces the level's grid and image from an encoded image stream.
// The level keeps no save path.
func (l *Level) Decode(r io.Reader) error {
	if l == nil {
		return ErrNoImage
	}
	return l.decode(r, "")
}

func (l *Level) decode(r io.Reader, path string) error {
	start := time.Now()

	src, format, err := image.Decode(r)
	if err != nil {
		return l.loadFailed(path, err)
	}
	img := toNRGBA(src)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	tiles := make([]tile.ID, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(x, y)
			t, ok := l.registry.Match(c)
			if !ok {
				return l.loadFailed(path, &UnmatchedColorError{X: x, Y: y, Color: c})
			}
			tiles[x+y*w] = l.variant(t)
		}
	}

	l.width = w
	l.height = h
	l.tiles = tiles
	l.image = img
	l.format = format
	l.path = ""

	l.log.WithFields(logrus.Fields{
		"name":    l.name,
		"path":    path,
		"size":    fmt.Sprintf("%dx%d", w, h),
		"elapsed": time.Since(start),
	}).Info("level loaded")
	return nil
}

// variant picks a random child of a parent tile VariantChance percent of
// the time.
func (l *Level) variant(t tile.Type) tile.ID {
	if t.IsParent() && l.rand.Intn(100) < VariantChance {
		children := t.Children()
		return children[l.rand.Intn(len(children))]
	}
	return t.ID()
}

func (l *Level) loadFailed(path string, err error) error {
	rerr := &ResourceError{Op: "load", Path: path, Err: err}
	l.log.WithFields(logrus.Fields{"name": l.name, "path": path}).WithError(err).Error("failed to load level")
	return rerr
}

// Save writes the level image back to the file it was loaded from, in its
// original format. The image, not the grid, is what gets written.
func (l *Level) Save() error {
	if l == nil {
		return ErrNoImage
	}
	if l.path == "" {
		return l.saveFailed("", ErrNoPath)
	}

	var buf bytes.Buffer
	if err := l.encode(&buf); err != nil {
		return l.saveFailed(l.path, err)
	}
	if err := os.WriteFile(l.path, buf.Bytes(), 0o644); err != nil {
		return l.saveFailed(l.path, err)
	}
	l.log.WithFields(logrus.Fields{"name": l.name, "path": l.path}).Info("level saved")
	return nil
}

// SaveTo encodes the level image to w.
func (l *Level) SaveTo(w io.Writer) error {
	if l == nil {
		return ErrNoImage
	}
	if err := l.encode(w); err != nil {
		return l.saveFailed(l.path, err)
	}
	return nil
}

func (l *Level) encode(w io.Writer) error {
	if l.image == nil {
		return ErrNoImage
	}
	switch l.format {
	case "png", "":
		return png.Encode(w, l.image)
	case "bmp":
		return bmp.Encode(w, l.image)
	case "tiff":
		return tiff.Encode(w, l.image, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, l.format)
	}
}

func (l *Level) saveFailed(path string, err error) error {
	l.log.WithFields(logrus.Fields{"name": l.name, "path": path}).WithError(err).Error("failed to save level")
	return &ResourceError{Op: "save", Path: path, Err: err}
}

// Bake draws a fresh level image from the grid so procedural levels can be
// saved. Any loaded image is replaced.
func (l *Level) Bake(format string) error {
	if l == nil {
		return ErrNoImage
	}
	switch format {
	case "":
		format = "png"
	case "png", "bmp", "tiff":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	img := image.NewNRGBA(image.Rect(0, 0, l.width, l.height))
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			img.SetNRGBA(x, y, toNRGBAColor(l.registry.Lookup(l.tiles[x+y*l.width])))
		}
	}
	l.image = img
	l.format = format
	return nil
}

// UpdateTileSheet sets cell (x, y) to t in both the grid and the image.
// This is the editing path: t's level color becomes the cell's persisted
// color.
func (l *Level) UpdateTileSheet(x, y int, t tile.Type) error {
	if l == nil || !l.InBounds(x, y) {
		return ErrOutOfBounds
	}
	if t == nil {
		return errors.New("level: nil tile")
	}
	l.tiles[x+y*l.width] = t.ID()
	l.syncPixel(x, y, t)
	return nil
}

func (l *Level) syncPixel(x, y int, t tile.Type) {
	if l.image == nil || t == nil {
		return
	}
	l.image.SetNRGBA(x, y, toNRGBAColor(t))
}

func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func toNRGBAColor(t tile.Type) color.NRGBA {
	c := t.LevelColor()
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
