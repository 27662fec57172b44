package preview

import (
	"image"
	"testing"

	"github.com/justyntemme/vista/internal/pdf"
)

func TestImageViewFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	v := NewImageView(img, ImageInfo{}, image.Pt(100, 100))
	if v.Scale != 0.25 {
		t.Fatalf("scale = %v, want 0.25", v.Scale)
	}
	size, origin := v.Display()
	if size != image.Pt(100, 50) || origin != image.Pt(0, 25) {
		t.Errorf("display = %v at %v", size, origin)
	}

	v.Resize(image.Pt(200, 200))
	if v.Scale != 0.5 {
		t.Errorf("refit scale = %v, want 0.5", v.Scale)
	}

	v.Scroll(1)
	if v.Scale != 0.625 || !v.UserZoomed {
		t.Errorf("zoomed scale = %v", v.Scale)
	}
	v.Resize(image.Pt(400, 400))
	if v.Scale != 0.625 {
		t.Errorf("resize after zoom refit to %v", v.Scale)
	}
	v.Fit()
	if v.Scale != 1 {
		t.Errorf("fit = %v", v.Scale)
	}
}

func TestImageViewZoomBounds(t *testing.T) {
	v := NewImageView(image.NewRGBA(image.Rect(0, 0, 10, 10)), ImageInfo{}, image.Pt(10, 10))
	v.Scale = 45
	if v.Scroll(1) || v.Scale != 45 {
		t.Errorf("zoom past 50 applied: %v", v.Scale)
	}
	v.Scale = 0.06
	if v.Scroll(-1) || v.Scale != 0.06 {
		t.Errorf("zoom below 0.05 applied: %v", v.Scale)
	}
	if v.Scroll(0) {
		t.Error("zero delta changed scale")
	}
}

func TestImageViewPanClamped(t *testing.T) {
	v := NewImageView(image.NewRGBA(image.Rect(0, 0, 100, 100)), ImageInfo{}, image.Pt(100, 100))
	v.Pan(image.Pt(1000, -1000))
	if v.Offset != image.Pt(99, -99) {
		t.Errorf("offset = %v", v.Offset)
	}
}

func TestPDFViewTargetSize(t *testing.T) {
	sizes := []pdf.Size{{W: 600, H: 800}, {W: 800, H: 600}}
	v := NewPDFView("a.pdf", "a.pdf", sizes, false)
	if v.NeedsRender() {
		t.Error("render requested without a viewport")
	}
	v.Resize(image.Pt(300, 800))

	tests := []struct {
		name  string
		setup func(v *PDFView)
		want  image.Point
	}{
		{"fit width", func(v *PDFView) {}, image.Pt(300, 400)},
		{"fit a4", func(v *PDFView) { v.SetA4(true) }, image.Pt(300, 424)},
		{"landscape page", func(v *PDFView) { v.NextPage() }, image.Pt(300, 225)},
		{"zoom", func(v *PDFView) { v.ZoomIn() }, image.Pt(960, 1280)},
		{"native", func(v *PDFView) { v.SetFit(false) }, image.Pt(800, 1067)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewPDFView("a.pdf", "a.pdf", sizes, false)
			v.Resize(image.Pt(300, 800))
			tt.setup(v)
			if got := v.TargetSize(); got != tt.want {
				t.Errorf("TargetSize = %v, want %v", got, tt.want)
			}
		})
	}

	// Fit fills the height when the page would overflow it.
	v.Resize(image.Pt(600, 400))
	if got := v.TargetSize(); got != image.Pt(300, 400) {
		t.Errorf("height fit = %v", got)
	}
	v.Resize(image.Pt(5, 5))
	if got := v.TargetSize(); got != image.Pt(300, 400) {
		t.Errorf("tiny viewport changed target to %v", got)
	}
}

func TestPDFViewNavigation(t *testing.T) {
	v := NewPDFView("a.pdf", "a.pdf", make([]pdf.Size, 3), false)
	if v.PrevPage() {
		t.Error("PrevPage on first page")
	}
	v.NextPage()
	v.NextPage()
	if v.NextPage() || v.Page != 2 {
		t.Errorf("NextPage past end, page %d", v.Page)
	}
	if v.GoTo(5) || !v.GoTo(0) || v.Page != 0 {
		t.Errorf("GoTo page %d", v.Page)
	}
}

func TestPDFViewZoomBounds(t *testing.T) {
	v := NewPDFView("a.pdf", "a.pdf", []pdf.Size{{W: 100, H: 100}}, false)
	for range 30 {
		v.ZoomIn()
	}
	if v.Zoom != maxPDFZoom || v.Fit {
		t.Errorf("zoom = %v fit %v", v.Zoom, v.Fit)
	}
	for range 60 {
		v.Scroll(-1)
	}
	if v.Zoom != minPDFZoom {
		t.Errorf("zoom = %v", v.Zoom)
	}
}

func TestPDFViewNeedsRender(t *testing.T) {
	v := NewPDFView("a.pdf", "a.pdf", []pdf.Size{{W: 600, H: 800}, {W: 600, H: 800}}, false)
	v.Resize(image.Pt(300, 800))
	if !v.NeedsRender() {
		t.Fatal("fresh view needs no render")
	}
	v.Rendered = image.NewRGBA(image.Rect(0, 0, 300, 400))
	v.RenderedPage = 0
	v.RenderedSize = v.TargetSize()
	if v.NeedsRender() {
		t.Error("up-to-date view needs render")
	}
	v.NextPage()
	if !v.NeedsRender() {
		t.Error("page change needs no render")
	}
}
