package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Raster is an in-memory Surface backed by an RGBA image.
type Raster struct {
	img  *image.RGBA
	offX int
	offY int
}

// NewRaster creates a transparent raster of the given pixel size.
func NewRaster(w, h int) *Raster {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (r *Raster) Width() int {
	if r == nil {
		return 0
	}
	return r.img.Bounds().Dx()
}

func (r *Raster) Height() int {
	if r == nil {
		return 0
	}
	return r.img.Bounds().Dy()
}

func (r *Raster) SetOffset(x, y int) {
	if r == nil {
		return
	}
	r.offX = x
	r.offY = y
}

func (r *Raster) Offset() (int, int) {
	if r == nil {
		return 0, 0
	}
	return r.offX, r.offY
}

// Fill paints the world-space rect, clipped to the viewport.
func (r *Raster) Fill(x, y, w, h int, c color.Color) {
	if r == nil || w <= 0 || h <= 0 {
		return
	}
	rect := image.Rect(x-r.offX, y-r.offY, x-r.offX+w, y-r.offY+h).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Clear fills the whole viewport, ignoring the offset.
func (r *Raster) Clear(c color.Color) {
	if r == nil {
		return
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA {
	if r == nil {
		return nil
	}
	return r.img
}

// At returns the viewport pixel at (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	if r == nil {
		return color.RGBA{}
	}
	return r.img.RGBAAt(x, y)
}
