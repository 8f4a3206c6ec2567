package render

import "image/color"

// Surface is a raster target that tiles and entities draw into.
// Coordinates passed to Fill are world pixels; the surface subtracts its
// current offset before drawing.
type Surface interface {
	// Width and Height return the viewport size in pixels.
	Width() int
	Height() int
	SetOffset(x, y int)
	Offset() (int, int)
	Fill(x, y, w, h int, c color.Color)
}
