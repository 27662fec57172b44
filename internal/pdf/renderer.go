// Package pdf rasterises PDF pages for the preview pane.
package pdf

import (
	"context"
	"errors"
	"image"
)

var (
	ErrNoRenderer = errors.New("no PDF renderer available")
	ErrNotLoaded  = errors.New("no document loaded")
	ErrPageRange  = errors.New("page out of range")
)

// Size is a page size in points (1/72 inch).
type Size struct {
	W, H float64
}

// Renderer loads one document at a time and renders its pages.
type Renderer interface {
	Load(ctx context.Context, path string) error
	PageCount() int
	PagePointSize(page int) (Size, error)
	Render(ctx context.Context, page int, px image.Point) (image.Image, error)
	Close()
}
