package level

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	ErrOutOfBounds       = errors.New("level: coordinates out of bounds")
	ErrNoImage           = errors.New("level: no image loaded")
	ErrNoPath            = errors.New("level: no source path")
	ErrUnsupportedFormat = errors.New("level: unsupported image format")
)

// ResourceError reports a level image that could not be read or written.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("level: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("level: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// CorruptedLevelError reports a bulk tile replacement whose length does not
// match the grid.
type CorruptedLevelError struct {
	Name string
	Want int
	Got  int
}

func (e *CorruptedLevelError) Error() string {
	return fmt.Sprintf("level: %q corrupted: expected %d tiles, got %d", e.Name, e.Want, e.Got)
}

// UnmatchedColorError reports a pixel whose color matches no registered tile.
type UnmatchedColorError struct {
	X, Y  int
	Color color.NRGBA
}

func (e *UnmatchedColorError) Error() string {
	return fmt.Sprintf("level: pixel (%d,%d) color #%02x%02x%02x matches no tile", e.X, e.Y, e.Color.R, e.Color.G, e.Color.B)
}
