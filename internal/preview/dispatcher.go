// Package preview decides which surface shows a selected path and loads
// the content for it: images, text, media, PDF pages, converted office
// documents and file details.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/justyntemme/vista/internal/classify"
	"github.com/justyntemme/vista/internal/config"
	"github.com/justyntemme/vista/internal/convert"
	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/media"
	"github.com/justyntemme/vista/internal/pdf"
)

// State is the active preview surface.
type State int

const (
	None State = iota
	Image
	Text
	Media
	Pdf
	OfficeWeb
	Details
)

var stateNames = [...]string{"none", "image", "text", "media", "pdf", "office-web", "details"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "none"
	}
	return stateNames[s]
}

// View is a snapshot of the active surface. Exactly one of the surface
// fields matching State is set; Details also carries errors.
type View struct {
	State    State
	Path     string
	Category classify.Category
	Loading  bool

	Image   *ImageView
	Text    *TextDoc
	PDF     *PDFView
	Web     []Block
	Details *Info
	Err     error
}

// Message is the user-facing text for the view's error, if any.
func (v View) Message() string { return Message(v.Err) }

// Converter produces office artifacts.
type Converter interface {
	EnsurePDF(ctx context.Context, source string) (string, error)
	EnsureHTML(ctx context.Context, source string) (string, error)
}

// Options wires the dispatcher to its collaborators. Nil collaborators
// route their categories to the details surface.
type Options struct {
	Player     media.Player
	Renderer   pdf.Renderer
	Converter  Converter
	OfficeMode string // config.OfficeDetails, OfficeWeb or OfficePDF
	Text       TextOptions
	AutoPlay   bool
	FitA4      bool
	// OnChange is called after the view changes outside a caller's
	// request: player events and finished page renders.
	OnChange func()
}

// Dispatcher owns the preview state machine. Select may be called from a
// worker goroutine; the other methods are cheap and safe from the UI
// goroutine.
type Dispatcher struct {
	opts Options

	mu       sync.Mutex
	view     View
	gen      int
	viewport image.Point

	// pdfMu serialises use of the single-document renderer.
	pdfMu sync.Mutex
}

// NewDispatcher returns a dispatcher in the None state.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.OfficeMode == "" {
		opts.OfficeMode = config.OfficeDetails
	}
	d := &Dispatcher{opts: opts}
	if opts.Player != nil {
		opts.Player.SetOnEvent(d.mediaEvent)
	}
	return d
}

// Player returns the media player, which may be nil.
func (d *Dispatcher) Player() media.Player { return d.opts.Player }

// Current returns a snapshot of the active view.
func (d *Dispatcher) Current() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

func (d *Dispatcher) snapshot() View {
	v := d.view
	if v.Image != nil {
		img := *v.Image
		v.Image = &img
	}
	if v.PDF != nil {
		p := *v.PDF
		v.PDF = &p
	}
	return v
}

// State returns the active surface.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view.State
}

// Select shows path. Playback is stopped before anything else happens;
// the new surface becomes active once its content has loaded. A Select or
// Clear issued while this one is loading wins, and this result is dropped.
func (d *Dispatcher) Select(ctx context.Context, path string) View {
	d.mu.Lock()
	d.stopMedia()
	d.gen++
	gen := d.gen
	d.view = View{State: None, Path: path, Loading: true}
	viewport := d.viewport
	d.mu.Unlock()

	debug.Log(debug.PREVIEW, "Select %s (gen %d)", path, gen)
	next := d.load(ctx, path, gen, viewport)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		debug.Log(debug.PREVIEW, "Select %s superseded", path)
		return d.snapshot()
	}
	if next.State == Media {
		next = d.startMedia(next)
	}
	d.view = next
	debug.Log(debug.PREVIEW, "Select %s -> %v err=%v", path, next.State, next.Err)
	return d.snapshot()
}

// Clear stops playback and returns to None, as on navigation.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopMedia()
	d.gen++
	d.view = View{State: None}
}

func (d *Dispatcher) current(gen int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

// stopMedia must be called with mu held.
func (d *Dispatcher) stopMedia() {
	if d.opts.Player == nil {
		return
	}
	if d.opts.Player.State() != media.Stopped {
		debug.Log(debug.PREVIEW, "stopping playback of %s", d.opts.Player.Source())
	}
	if err := d.opts.Player.Stop(); err != nil {
		debug.Log(debug.PREVIEW, "stop: %v", err)
	}
}

// startMedia must be called with mu held.
func (d *Dispatcher) startMedia(v View) View {
	p := d.opts.Player
	if err := p.SetSource(v.Path); err != nil {
		return d.detailsView(v.Path, v.Category, loadFailed(v.Path, err))
	}
	if d.opts.AutoPlay {
		if err := p.Play(); err != nil {
			return d.detailsView(v.Path, v.Category, loadFailed(v.Path, err))
		}
	}
	return v
}

func (d *Dispatcher) load(ctx context.Context, path string, gen int, viewport image.Point) View {
	info, err := os.Stat(path)
	if err != nil {
		return View{State: Details, Path: path, Details: missingDetails(path), Err: statError(path, err)}
	}
	cat := classify.Classify(path)
	if info.IsDir() {
		cat = classify.Directory
	}

	switch cat {
	case classify.Directory:
		return d.detailsView(path, cat, nil)

	case classify.Image:
		img, imgInfo, err := DecodeImage(path)
		if err != nil {
			return d.detailsView(path, cat, err)
		}
		return View{State: Image, Path: path, Category: cat, Image: NewImageView(img, imgInfo, viewport)}

	case classify.Audio, classify.Video:
		if d.opts.Player == nil {
			return d.detailsView(path, cat, media.ErrNoPlayer)
		}
		return View{State: Media, Path: path, Category: cat}

	case classify.Pdf:
		if d.opts.Renderer == nil {
			return d.detailsView(path, cat, nil)
		}
		return d.loadPDF(ctx, path, path, cat, gen, viewport)

	case classify.Office:
		return d.loadOffice(ctx, path, gen, viewport)

	case classify.Text:
		doc, err := LoadText(path, d.opts.Text)
		if err != nil {
			return d.detailsView(path, cat, err)
		}
		return View{State: Text, Path: path, Category: cat, Text: doc}
	}
	return d.detailsView(path, cat, nil)
}

func (d *Dispatcher) loadOffice(ctx context.Context, path string, gen int, viewport image.Point) View {
	conv := d.opts.Converter
	switch {
	case conv == nil:
	case d.opts.OfficeMode == config.OfficeWeb:
		start := time.Now()
		artifact, err := conv.EnsureHTML(ctx, path)
		if err != nil {
			return d.officeDetails(path, err)
		}
		f, err := os.Open(artifact)
		if err != nil {
			return d.officeDetails(path, loadFailed(artifact, err))
		}
		defer f.Close()
		blocks, err := ParseHTML(f)
		if err != nil {
			return d.officeDetails(path, loadFailed(artifact, err))
		}
		debug.Log(debug.PREVIEW, "office web %s: %d blocks in %v", path, len(blocks), time.Since(start))
		return View{State: OfficeWeb, Path: path, Category: classify.Office, Web: blocks}

	case d.opts.OfficeMode == config.OfficePDF && d.opts.Renderer != nil:
		artifact, err := conv.EnsurePDF(ctx, path)
		if err != nil {
			return d.officeDetails(path, err)
		}
		v := d.loadPDF(ctx, path, artifact, classify.Office, gen, viewport)
		if v.State == Details {
			return d.officeDetails(path, v.Err)
		}
		return v
	}
	return d.officeDetails(path, nil)
}

func (d *Dispatcher) loadPDF(ctx context.Context, source, artifact string, cat classify.Category, gen int, viewport image.Point) View {
	d.pdfMu.Lock()
	defer d.pdfMu.Unlock()
	if !d.current(gen) {
		return View{State: None, Path: source}
	}
	r := d.opts.Renderer
	if err := r.Load(ctx, artifact); err != nil {
		return d.detailsView(source, cat, loadFailed(artifact, err))
	}
	sizes := make([]pdf.Size, r.PageCount())
	for i := range sizes {
		sizes[i], _ = r.PagePointSize(i)
	}
	v := NewPDFView(source, artifact, sizes, d.opts.FitA4)
	v.Resize(viewport)
	return View{State: Pdf, Path: source, Category: cat, PDF: v}
}

func (d *Dispatcher) detailsView(path string, cat classify.Category, cause error) View {
	det, err := BuildDetails(path)
	if err != nil {
		det = missingDetails(path)
		if cause == nil {
			cause = err
		}
	}
	det.Message = Message(cause)
	return View{State: Details, Path: path, Category: cat, Details: det, Err: cause}
}

// officeDetails adds a text excerpt so the document is readable without a
// converter.
func (d *Dispatcher) officeDetails(path string, cause error) View {
	v := d.detailsView(path, classify.Office, cause)
	if errors.Is(cause, ErrNotFound) {
		return v
	}
	if text, err := convert.ExtractText(path); err == nil {
		v.Details.Excerpt = text
	} else {
		debug.Log(debug.PREVIEW, "excerpt %s: %v", path, err)
	}
	return v
}

func (d *Dispatcher) mediaEvent(ev media.Event) {
	d.mu.Lock()
	changed := false
	if d.view.State == Media {
		switch ev.Kind {
		case media.EventError:
			debug.Log(debug.PREVIEW, "playback error %s: %v", d.view.Path, ev.Err)
			d.view = d.detailsView(d.view.Path, d.view.Category, loadFailed(d.view.Path, ev.Err))
			changed = true
		case media.EventEnd, media.EventDuration:
			changed = true
		}
	}
	d.mu.Unlock()
	if changed {
		d.notify()
	}
}

func (d *Dispatcher) notify() {
	if d.opts.OnChange != nil {
		d.opts.OnChange()
	}
}

// Resize records the pane's viewport and refits the image or page.
func (d *Dispatcher) Resize(viewport image.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = viewport
	switch {
	case d.view.Image != nil:
		d.view.Image.Resize(viewport)
	case d.view.PDF != nil:
		d.view.PDF.Resize(viewport)
	}
}

// Scroll zooms the image or PDF surface. It reports whether the scroll
// was consumed.
func (d *Dispatcher) Scroll(delta float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.view.State {
	case Image:
		d.view.Image.Scroll(delta)
		return delta != 0
	case Pdf:
		return d.view.PDF.Scroll(delta)
	}
	return false
}

// Pan drags the image surface.
func (d *Dispatcher) Pan(delta image.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view.State == Image {
		d.view.Image.Pan(delta)
	}
}

// FitImage drops the user's zoom and pan and fits the image again.
func (d *Dispatcher) FitImage() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view.State == Image {
		d.view.Image.UserZoomed = false
		d.view.Image.Fit()
	}
}

// UpdatePDF applies fn to the PDF surface, if active.
func (d *Dispatcher) UpdatePDF(fn func(v *PDFView) bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view.State != Pdf {
		return false
	}
	return fn(d.view.PDF)
}

// RenderPDF rasterises the current page at its target size if the
// rendered image is stale.
func (d *Dispatcher) RenderPDF(ctx context.Context) error {
	d.mu.Lock()
	if d.view.State != Pdf || !d.view.PDF.NeedsRender() {
		d.mu.Unlock()
		return nil
	}
	gen := d.gen
	page := d.view.PDF.Page
	size := d.view.PDF.TargetSize()
	d.mu.Unlock()

	d.pdfMu.Lock()
	if !d.current(gen) {
		d.pdfMu.Unlock()
		return nil
	}
	img, err := d.opts.Renderer.Render(ctx, page, size)
	d.pdfMu.Unlock()
	if err != nil {
		return fmt.Errorf("render page %d: %w", page+1, err)
	}

	d.mu.Lock()
	if gen == d.gen && d.view.PDF != nil && d.view.PDF.Page == page {
		d.view.PDF.Rendered = img
		d.view.PDF.RenderedPage = page
		d.view.PDF.RenderedSize = size
	}
	d.mu.Unlock()
	d.notify()
	return nil
}

// TogglePlay pauses or resumes the media surface.
func (d *Dispatcher) TogglePlay() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view.State != Media {
		return nil
	}
	if d.opts.Player.State() == media.Playing {
		return d.opts.Player.Pause()
	}
	return d.opts.Player.Play()
}

// StopPlayback stops the media surface's playback without leaving it.
func (d *Dispatcher) StopPlayback() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view.State == Media {
		d.stopMedia()
	}
}
