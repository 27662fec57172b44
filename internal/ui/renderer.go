// Package ui draws the file manager window with Gio: navigation bar,
// places sidebar, the active directory surface and the preview pane.
package ui

import (
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/config"
	"github.com/justyntemme/vista/internal/view"
)

// Renderer holds widget state between frames. It is only touched from the
// window's event loop.
type Renderer struct {
	Theme *material.Theme
	Debug bool

	listState   layout.List
	gridState   layout.List
	placesList  layout.List
	previewList layout.List

	focused bool
	bgClick widget.Clickable

	// Navigation bar
	backBtn, fwdBtn, upBtn, homeBtn widget.Clickable
	refreshBtn                      widget.Clickable
	pathEditor                      widget.Editor
	pathClick                       widget.Clickable
	isEditing                       bool
	breadcrumbBtns                  []widget.Clickable
	ellipsisBtn                     widget.Clickable

	// Toolbar
	modeBtns      [3]widget.Clickable
	hiddenBtn     widget.Clickable
	thumbsBtn     widget.Clickable
	previewBtn    widget.Clickable
	clearCacheBtn widget.Clickable
	headerBtns    [4]widget.Clickable
	gridColumns   int

	// Preview pane
	previewClose  widget.Clickable
	previewResize ResizeHandle
	previewWidth  int
	previewTag    struct{}
	panning       bool
	panLast       f32.Point
	imgFitBtn     widget.Clickable
	pdfPrev       widget.Clickable
	pdfNext       widget.Clickable
	pdfZoomIn     widget.Clickable
	pdfZoomOut    widget.Clickable
	pdfFit        widget.Clickable
	pdfA4         widget.Clickable
	mediaPlay     widget.Clickable
	mediaStop     widget.Clickable
	seek          widget.Float
	seekActive    bool
	volume        widget.Float
	volumeActive  bool

	// PreviewSize is the content area of the preview pane in the last
	// frame. The orchestrator hands it to the dispatcher as the viewport.
	PreviewSize image.Point

	hotkeys *config.HotkeyMatcher
	thumbs  *ThumbnailCache
	toast   toast

	images  imageOps
	docText textLines
}

// NewRenderer creates a renderer. thumbs may be nil to disable icon
// thumbnails.
func NewRenderer(thumbs *ThumbnailCache, hotkeys *config.HotkeyMatcher) *Renderer {
	r := &Renderer{
		Theme:   material.NewTheme(),
		thumbs:  thumbs,
		hotkeys: hotkeys,
	}
	r.listState.Axis = layout.Vertical
	r.gridState.Axis = layout.Vertical
	r.placesList.Axis = layout.Vertical
	r.previewList.Axis = layout.Vertical
	r.pathEditor.SingleLine = true
	r.pathEditor.Submit = true
	r.previewResize = ResizeHandle{Horizontal: true, Inverted: true}
	return r
}

// SetHotkeys replaces the key bindings, e.g. after the config is reloaded.
func (r *Renderer) SetHotkeys(h *config.HotkeyMatcher) { r.hotkeys = h }

// ScrollToTop resets the surfaces after a root change.
func (r *Renderer) ScrollToTop() {
	r.listState.Position = layout.Position{}
	r.gridState.Position = layout.Position{}
}

// ResetPreviewScroll resets the text pane after a selection change.
func (r *Renderer) ResetPreviewScroll() {
	r.previewList.Position = layout.Position{}
}

func (r *Renderer) modeLabel(m view.Mode) string {
	switch m {
	case view.ModeIcon:
		return "Icons"
	case view.ModeTree:
		return "Tree"
	}
	return "Details"
}
