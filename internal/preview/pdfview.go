package preview

import (
	"image"
	"math"

	"github.com/justyntemme/vista/internal/pdf"
)

const (
	pdfZoomStep = 1.2
	minPDFZoom  = 0.2
	maxPDFZoom  = 8.0
	a4Ratio     = 210.0 / 297.0
	// minViewport is the smallest viewport edge worth rendering into.
	minViewport = 10
)

// PDFView is the PDF surface state: page index, zoom mode and the last
// rendered page.
type PDFView struct {
	Source   string // file the user selected
	Artifact string // PDF actually shown (converted for office files)
	Pages    int
	Page     int
	Zoom     float64
	Fit      bool
	A4       bool // fit to an A4 aspect instead of the page's own

	// Rendered holds the image for RenderedPage at RenderedSize.
	Rendered     image.Image
	RenderedPage int
	RenderedSize image.Point

	viewport image.Point
	points   []pdf.Size
}

// NewPDFView starts on the first page in fit mode.
func NewPDFView(source, artifact string, sizes []pdf.Size, a4 bool) *PDFView {
	return &PDFView{
		Source:       source,
		Artifact:     artifact,
		Pages:        len(sizes),
		Zoom:         1,
		Fit:          true,
		A4:           a4,
		RenderedPage: -1,
		points:       sizes,
	}
}

// PointSize is the current page's size in points.
func (v *PDFView) PointSize() pdf.Size {
	if v.Page < 0 || v.Page >= len(v.points) {
		return pdf.A4
	}
	return v.points[v.Page]
}

// Resize records the viewport. Viewports under 10px are ignored.
func (v *PDFView) Resize(viewport image.Point) {
	if viewport.X < minViewport || viewport.Y < minViewport {
		return
	}
	v.viewport = viewport
}

// TargetSize is the pixel size the current page should be rendered at.
// In fit mode it fills the viewport's width, or its height when the page
// would overflow it; otherwise it is the page at 96 DPI times the zoom.
func (v *PDFView) TargetSize() image.Point {
	pt := v.PointSize()
	if v.Fit {
		if v.viewport.X < minViewport || v.viewport.Y < minViewport {
			return image.Point{}
		}
		ratio := pt.W / pt.H
		if v.A4 {
			ratio = a4Ratio
		}
		w := float64(v.viewport.X)
		h := w / ratio
		if h > float64(v.viewport.Y) {
			h = float64(v.viewport.Y)
			w = h * ratio
		}
		return image.Pt(max(int(math.Round(w)), 1), max(int(math.Round(h)), 1))
	}
	scale := 96.0 / 72.0 * v.Zoom
	return image.Pt(max(int(math.Round(pt.W*scale)), 1), max(int(math.Round(pt.H*scale)), 1))
}

// NeedsRender reports whether the rendered image is stale.
func (v *PDFView) NeedsRender() bool {
	t := v.TargetSize()
	if t.X == 0 || t.Y == 0 {
		return false
	}
	return v.Rendered == nil || v.RenderedPage != v.Page || v.RenderedSize != t
}

// ZoomIn leaves fit mode and enlarges by 1.2, up to 8x.
func (v *PDFView) ZoomIn() {
	v.Fit = false
	v.Zoom = math.Min(v.Zoom*pdfZoomStep, maxPDFZoom)
}

// ZoomOut leaves fit mode and shrinks by 1.2, down to 0.2x.
func (v *PDFView) ZoomOut() {
	v.Fit = false
	v.Zoom = math.Max(v.Zoom/pdfZoomStep, minPDFZoom)
}

// SetFit toggles fit-to-window.
func (v *PDFView) SetFit(on bool) { v.Fit = on }

// SetA4 toggles the A4 aspect override used in fit mode.
func (v *PDFView) SetA4(on bool) { v.A4 = on }

// NextPage advances if there is a next page.
func (v *PDFView) NextPage() bool {
	if v.Page+1 >= v.Pages {
		return false
	}
	v.Page++
	return true
}

// PrevPage goes back if there is a previous page.
func (v *PDFView) PrevPage() bool {
	if v.Page <= 0 {
		return false
	}
	v.Page--
	return true
}

// GoTo jumps to page p (0-based) when it exists.
func (v *PDFView) GoTo(p int) bool {
	if p < 0 || p >= v.Pages || p == v.Page {
		return false
	}
	v.Page = p
	return true
}

// Scroll zooms by wheel delta the way the zoom buttons do.
func (v *PDFView) Scroll(delta float64) bool {
	switch {
	case delta > 0:
		v.ZoomIn()
	case delta < 0:
		v.ZoomOut()
	default:
		return false
	}
	return true
}
