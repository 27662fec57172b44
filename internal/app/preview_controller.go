package app

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/justyntemme/vista/internal/config"
	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/preview"
	"github.com/justyntemme/vista/internal/ui"
)

// PreviewController runs dispatcher loads off the frame goroutine and
// feeds the pane's size back to it.
type PreviewController struct {
	deps       *SharedDeps
	dispatcher *preview.Dispatcher

	mu     sync.Mutex
	cancel context.CancelFunc

	viewport  image.Point
	rendering atomic.Bool
}

func NewPreviewController(deps *SharedDeps, d *preview.Dispatcher) *PreviewController {
	return &PreviewController{deps: deps, dispatcher: d}
}

// Select starts loading path. A newer Select or Clear cancels it.
func (c *PreviewController) Select(path string) {
	ctx := c.restart()
	go func() {
		start := time.Now()
		v := c.dispatcher.Select(ctx, path)
		debug.Log(debug.PREVIEW, "loaded %s as %v in %v", path, v.State, time.Since(start))
		c.deps.invalidate()
	}()
}

// Clear stops playback and empties the pane.
func (c *PreviewController) Clear() {
	c.restart()
	c.dispatcher.Clear()
}

func (c *PreviewController) restart() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	return ctx
}

// Stop cancels any load and stops playback for shutdown.
func (c *PreviewController) Stop() {
	c.Clear()
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
}

// syncLocked copies the dispatcher's view and the player into the UI
// state. SharedState.Mu must be held.
func (c *PreviewController) syncLocked(s *ui.State) {
	s.Preview = c.dispatcher.Current()
	s.Media = ui.MediaState{}
	if p := c.dispatcher.Player(); p != nil && s.Preview.State == preview.Media {
		s.Media = ui.MediaState{
			State:    p.State(),
			Position: p.Position(),
			Duration: p.Duration(),
			Volume:   p.Volume(),
		}
	}
}

// afterLayout hands a changed viewport to the dispatcher and starts a page
// render when the PDF surface is stale.
func (c *PreviewController) afterLayout(size image.Point) {
	if size != c.viewport && size.X > 0 && size.Y > 0 {
		c.viewport = size
		c.dispatcher.Resize(size)
		c.deps.invalidate()
	}
	v := c.dispatcher.Current()
	if v.State != preview.Pdf || v.PDF == nil || !v.PDF.NeedsRender() {
		return
	}
	if !c.rendering.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.rendering.Store(false)
		if err := c.dispatcher.RenderPDF(context.Background()); err != nil {
			debug.Log(debug.PREVIEW, "render: %v", err)
			c.deps.UI.ShowError(err.Error())
		}
		c.deps.invalidate()
	}()
}

// handle applies a preview action from the renderer.
func (c *PreviewController) handle(evt ui.UIEvent) {
	d := c.dispatcher
	switch evt.Action {
	case ui.ActionPreviewScroll:
		d.Scroll(evt.Delta)
	case ui.ActionPreviewPan:
		d.Pan(evt.Pan)
	case ui.ActionImageFit:
		d.FitImage()
	case ui.ActionPDFPrev:
		d.UpdatePDF((*preview.PDFView).PrevPage)
	case ui.ActionPDFNext:
		d.UpdatePDF((*preview.PDFView).NextPage)
	case ui.ActionPDFZoomIn:
		d.UpdatePDF(func(v *preview.PDFView) bool { v.ZoomIn(); return true })
	case ui.ActionPDFZoomOut:
		d.UpdatePDF(func(v *preview.PDFView) bool { v.ZoomOut(); return true })
	case ui.ActionPDFFit:
		d.UpdatePDF(func(v *preview.PDFView) bool { v.SetFit(!v.Fit); return true })
	case ui.ActionPDFA4:
		d.UpdatePDF(func(v *preview.PDFView) bool { v.SetA4(!v.A4); return true })
	case ui.ActionMediaToggle:
		if err := d.TogglePlay(); err != nil {
			c.deps.UI.ShowError(err.Error())
		}
	case ui.ActionMediaStop:
		d.StopPlayback()
	case ui.ActionMediaSeek:
		if p := d.Player(); p != nil && d.State() == preview.Media {
			pos := time.Duration(evt.Delta * float64(p.Duration()))
			if err := p.Seek(pos); err != nil {
				c.deps.UI.ShowError(err.Error())
			}
		}
	case ui.ActionMediaVolume:
		if p := d.Player(); p != nil {
			vol := int(evt.Delta*100 + 0.5)
			p.SetVolume(vol)
			c.deps.Config.Update(func(cfg *config.Config) { cfg.Preview.Volume = p.Volume() })
		}
	}
	c.deps.invalidate()
}
