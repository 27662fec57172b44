package preview

import (
	"image"
	"math"
)

const (
	zoomInStep    = 1.25
	zoomOutStep   = 0.8
	minImageScale = 0.05
	maxImageScale = 50.0
)

// ImageView is the image surface: a decoded image, its on-screen scale
// and pan offset.
type ImageView struct {
	Image      image.Image
	Info       ImageInfo
	Scale      float64
	Offset     image.Point // pan from the centred position, in px
	UserZoomed bool

	viewport image.Point
}

// NewImageView resets the transform and fits img to viewport.
func NewImageView(img image.Image, info ImageInfo, viewport image.Point) *ImageView {
	v := &ImageView{Image: img, Info: info, Scale: 1, viewport: viewport}
	v.Fit()
	return v
}

// Native returns the image size in pixels.
func (v *ImageView) Native() image.Point {
	if v.Image == nil {
		return image.Point{}
	}
	return v.Image.Bounds().Size()
}

// Fit scales the image to the viewport, preserving aspect ratio without
// cropping, and re-centres it.
func (v *ImageView) Fit() {
	n := v.Native()
	if n.X <= 0 || n.Y <= 0 || v.viewport.X <= 0 || v.viewport.Y <= 0 {
		return
	}
	v.Scale = math.Min(float64(v.viewport.X)/float64(n.X), float64(v.viewport.Y)/float64(n.Y))
	v.Offset = image.Point{}
}

// Resize records a new viewport and refits unless the user has zoomed.
func (v *ImageView) Resize(viewport image.Point) {
	if viewport == v.viewport {
		return
	}
	v.viewport = viewport
	if !v.UserZoomed {
		v.Fit()
	}
}

// Scroll applies a wheel delta: positive zooms in by 1.25, negative out by
// 0.8. A step that would leave [0.05, 50] is consumed without effect. It
// reports whether the scale changed.
func (v *ImageView) Scroll(delta float64) bool {
	if delta == 0 || v.Image == nil {
		return false
	}
	v.UserZoomed = true
	factor := zoomInStep
	if delta < 0 {
		factor = zoomOutStep
	}
	next := v.Scale * factor
	if next < minImageScale || next > maxImageScale {
		return false
	}
	v.Scale = next
	v.clampOffset()
	return true
}

// Pan moves the image by d pixels, keeping part of it on screen.
func (v *ImageView) Pan(d image.Point) {
	v.Offset = v.Offset.Add(d)
	v.clampOffset()
}

// Display returns the drawn size and top-left position within the viewport.
func (v *ImageView) Display() (size, origin image.Point) {
	n := v.Native()
	size = image.Pt(int(math.Round(float64(n.X)*v.Scale)), int(math.Round(float64(n.Y)*v.Scale)))
	origin = image.Pt((v.viewport.X-size.X)/2, (v.viewport.Y-size.Y)/2).Add(v.Offset)
	return size, origin
}

func (v *ImageView) clampOffset() {
	n := v.Native()
	w := int(float64(n.X) * v.Scale)
	h := int(float64(n.Y) * v.Scale)
	limX := max((w+v.viewport.X)/2-1, 0)
	limY := max((h+v.viewport.Y)/2-1, 0)
	v.Offset.X = max(-limX, min(v.Offset.X, limX))
	v.Offset.Y = max(-limY, min(v.Offset.Y, limY))
}
