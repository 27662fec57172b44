package ui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/justyntemme/vista/internal/fs"
	"github.com/justyntemme/vista/internal/media"
	"github.com/justyntemme/vista/internal/nav"
	"github.com/justyntemme/vista/internal/preview"
	"github.com/justyntemme/vista/internal/view"
)

// doubleClickInterval separates a double click from two single clicks.
const doubleClickInterval = 500 * time.Millisecond

type UIAction int

const (
	ActionNone UIAction = iota
	ActionNavigate
	ActionBack
	ActionForward
	ActionUp
	ActionHome
	ActionSubmitAddress
	ActionSelect
	ActionOpen
	ActionRefresh
	ActionSetMode
	ActionSort
	ActionToggleExpand
	ActionToggleHidden
	ActionToggleThumbnails
	ActionTogglePreview
	ActionClearCache

	// Preview surface
	ActionPreviewScroll
	ActionPreviewPan
	ActionImageFit
	ActionPDFPrev
	ActionPDFNext
	ActionPDFZoomIn
	ActionPDFZoomOut
	ActionPDFFit
	ActionPDFA4
	ActionMediaToggle
	ActionMediaStop
	ActionMediaSeek
	ActionMediaVolume
)

// UIEvent is what a frame's input asks the orchestrator to do.
type UIEvent struct {
	Action   UIAction
	Path     string
	NewIndex int
	Mode     view.Mode
	Column   view.SortColumn
	Delta    float64     // scroll steps, seek fraction or volume
	Pan      image.Point // drag distance in px
}

// UIEntry is one visible row of the active surface.
type UIEntry struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	ModTime  time.Time
	Ext      string
	Depth    int
	Expanded bool

	Clickable widget.Clickable
	ExpandBtn widget.Clickable
	LastClick time.Time
}

// NewEntries turns surface rows into UI rows.
func NewEntries(rows []view.Row) []UIEntry {
	out := make([]UIEntry, len(rows))
	for i, r := range rows {
		out[i] = UIEntry{
			Name:     r.Entry.Name,
			Path:     r.Entry.Path,
			IsDir:    r.Entry.IsDir,
			Size:     r.Entry.Size,
			ModTime:  r.Entry.ModTime,
			Ext:      r.Entry.Ext,
			Depth:    r.Depth,
			Expanded: r.Expanded,
		}
	}
	return out
}

// PlaceItem is a sidebar shortcut or drive.
type PlaceItem struct {
	fs.Place
	Clickable widget.Clickable
}

// NewPlaces wraps places for the sidebar.
func NewPlaces(places []fs.Place) []PlaceItem {
	out := make([]PlaceItem, len(places))
	for i, p := range places {
		out[i] = PlaceItem{Place: p}
	}
	return out
}

// MediaState mirrors the player for the transport controls.
type MediaState struct {
	State    media.State
	Position time.Duration
	Duration time.Duration
	Volume   int
}

// State is everything a frame draws.
type State struct {
	CurrentPath string
	Breadcrumb  nav.Breadcrumb
	CanBack     bool
	CanForward  bool
	CanUp       bool

	Mode          view.Mode
	Sort          view.SortOrder
	Columns       view.Columns
	Thumbnails    bool
	ShowHidden    bool
	Loading       bool
	Entries       []UIEntry
	SelectedIndex int
	Places        []PlaceItem

	Preview        preview.View
	PreviewVisible bool
	PreviewPercent int
	Media          MediaState
	PDFAvailable   bool

	CacheFiles  int
	CacheBytes  int64
	ConfigError string
}

// Selected returns the selected entry, or nil.
func (s *State) Selected() *UIEntry {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Entries) {
		return nil
	}
	return &s.Entries[s.SelectedIndex]
}

// ResizeHandle is a draggable edge between two panes.
type ResizeHandle struct {
	dragging   bool
	lastX      float32
	lastY      float32
	Horizontal bool // drags left/right
	MinSize    int
	MaxSize    int  // 0 = no limit
	Inverted   bool // dragging left/up grows the pane
}

// ResizeHandleStyle is the handle's look.
type ResizeHandleStyle struct {
	Width      unit.Dp
	Color      color.NRGBA
	HoverColor color.NRGBA
}

func DefaultResizeHandleStyle() ResizeHandleStyle {
	return ResizeHandleStyle{
		Width:      unit.Dp(6),
		Color:      colLightGray,
		HoverColor: colGray,
	}
}

// apply moves size by delta within the handle's bounds.
func (h *ResizeHandle) apply(size, delta int) int {
	if h.Inverted {
		delta = -delta
	}
	size += delta
	if h.MinSize > 0 && size < h.MinSize {
		size = h.MinSize
	}
	if h.MaxSize > 0 && size > h.MaxSize {
		size = h.MaxSize
	}
	return size
}

// Layout draws the handle and returns the size after any drag.
func (h *ResizeHandle) Layout(gtx layout.Context, style ResizeHandleStyle, currentSize int) (layout.Dimensions, int) {
	newSize := currentSize

	var w, ht int
	if h.Horizontal {
		w, ht = gtx.Dp(style.Width), gtx.Constraints.Max.Y
	} else {
		w, ht = gtx.Constraints.Max.X, gtx.Dp(style.Width)
	}

	// Incremental deltas; absolute positions jitter as the pane moves.
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: h,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			if e.Buttons.Contain(pointer.ButtonPrimary) {
				h.dragging = true
				h.lastX, h.lastY = e.Position.X, e.Position.Y
			}
		case pointer.Drag:
			if !h.dragging {
				continue
			}
			var delta int
			if h.Horizontal {
				delta = int(e.Position.X - h.lastX)
				h.lastX = e.Position.X
			} else {
				delta = int(e.Position.Y - h.lastY)
				h.lastY = e.Position.Y
			}
			newSize = h.apply(newSize, delta)
		case pointer.Release, pointer.Cancel:
			h.dragging = false
		}
	}

	defer clip.Rect(image.Rect(0, 0, w, ht)).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, h)
	if h.Horizontal {
		pointer.CursorColResize.Add(gtx.Ops)
	} else {
		pointer.CursorRowResize.Add(gtx.Ops)
	}

	c := style.Color
	if h.dragging {
		c = style.HoverColor
	}
	var line image.Rectangle
	if h.Horizontal {
		cx := w / 2
		line = image.Rect(cx-1, ht/4, cx+1, ht*3/4)
	} else {
		cy := ht / 2
		line = image.Rect(w/4, cy-1, w*3/4, cy+1)
	}
	paint.FillShape(gtx.Ops, c, clip.Rect(line).Op())

	return layout.Dimensions{Size: image.Pt(w, ht)}, newSize
}
