package ui

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/media"
	"github.com/justyntemme/vista/internal/preview"
)

// imageOps keeps the GPU upload of the last shown images so a frame does
// not convert them again.
type imageOps struct {
	src [2]image.Image
	ops [2]paint.ImageOp
}

func (c *imageOps) get(slot int, img image.Image) paint.ImageOp {
	if c.src[slot] != img {
		c.src[slot] = img
		c.ops[slot] = paint.NewImageOp(img)
	}
	return c.ops[slot]
}

const (
	slotImage = iota
	slotPDF
)

// textLines caches the split content of the shown text document.
type textLines struct {
	doc   *preview.TextDoc
	lines []string
}

func (c *textLines) get(doc *preview.TextDoc) []string {
	if c.doc != doc {
		c.doc = doc
		text := doc.Content
		if doc.Placeholder != "" {
			text = doc.Placeholder
		}
		c.lines = strings.Split(strings.TrimRight(text, "\n"), "\n")
	}
	return c.lines
}

// layoutPreviewPane draws the header and the active preview surface.
func (r *Renderer) layoutPreviewPane(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	if r.previewClose.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionTogglePreview}
		gtx.Execute(key.FocusCmd{Tag: keyTag})
	}
	paint.FillShape(gtx.Ops, colPreviewBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
	v := &state.Preview

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutPreviewHeader(gtx, v)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions { return divider(gtx, layout.Horizontal) }),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if v.Err == nil || v.State == preview.Details {
				return layout.Dimensions{}
			}
			return layout.Inset{Top: unit.Dp(8), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, v.Message())
					lbl.Color = colDanger
					return lbl.Layout(gtx)
				})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			r.PreviewSize = gtx.Constraints.Max
			if v.Loading {
				return r.layoutPreviewMessage(gtx, "Loading preview…")
			}
			switch v.State {
			case preview.Image:
				return r.layoutImageSurface(gtx, state, eventOut)
			case preview.Text:
				return r.layoutTextSurface(gtx, v.Text)
			case preview.OfficeWeb:
				return r.layoutBlocks(gtx, v.Web)
			case preview.Pdf:
				return r.layoutPDFSurface(gtx, state, eventOut)
			case preview.Media:
				return r.layoutMediaSurface(gtx, state, eventOut)
			case preview.Details:
				return r.layoutDetails(gtx, v)
			}
			if v.Err != nil {
				return layout.Dimensions{Size: gtx.Constraints.Max}
			}
			return r.layoutPreviewMessage(gtx, "Select a file to preview it")
		}),
	)
}

func (r *Renderer) layoutPreviewHeader(gtx layout.Context, v *preview.View) layout.Dimensions {
	name := "Preview"
	if v.Path != "" {
		name = filepath.Base(v.Path)
	}
	return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(12), Right: unit.Dp(6)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(r.Theme, name)
					lbl.Font.Weight = font.Bold
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if v.Path == "" {
						return layout.Dimensions{}
					}
					lbl := material.Caption(r.Theme, v.Category.String())
					lbl.Color = colGray
					return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, lbl.Layout)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.iconButton(gtx, &r.previewClose, "close", colGray)
				}),
			)
		})
}

func (r *Renderer) layoutPreviewMessage(gtx layout.Context, msg string) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(24), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.N.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, msg)
			lbl.Color = colGray
			return lbl.Layout(gtx)
		})
	})
}

// canvasInput turns wheel and drag events over a canvas into zoom and pan
// actions. Pan is only reported when pan is true.
func (r *Renderer) canvasInput(gtx layout.Context, pan bool, eventOut *UIEvent) {
	tag := &r.previewTag
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Scroll | pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -1 << 16, Max: 1 << 16},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Scroll:
			if e.Scroll.Y != 0 {
				// Wheel up zooms in.
				*eventOut = UIEvent{Action: ActionPreviewScroll, Delta: float64(-e.Scroll.Y)}
			}
		case pointer.Press:
			r.panning = pan
			r.panLast = e.Position
		case pointer.Drag:
			if !r.panning {
				continue
			}
			d := e.Position.Sub(r.panLast)
			r.panLast = e.Position
			if step := image.Pt(int(d.X), int(d.Y)); step != (image.Point{}) {
				*eventOut = UIEvent{Action: ActionPreviewPan, Pan: step}
			}
		case pointer.Release, pointer.Cancel:
			r.panning = false
		}
	}
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, tag)
	if pan {
		pointer.CursorGrab.Add(gtx.Ops)
	}
	area.Pop()
}

// drawScaled paints img at origin, scaled to size.
func drawScaled(gtx layout.Context, imgOp paint.ImageOp, size, origin image.Point) {
	native := imgOp.Size()
	if native.X == 0 || native.Y == 0 || size.X == 0 || size.Y == 0 {
		return
	}
	defer op.Offset(origin).Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, colCheckerLight, clip.Rect{Max: size}.Op())
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	scale := f32.Pt(float32(size.X)/float32(native.X), float32(size.Y)/float32(native.Y))
	defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, scale)).Push(gtx.Ops).Pop()
	imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func (r *Renderer) layoutImageSurface(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	iv := state.Preview.Image
	if r.imgFitBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionImageFit}
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			size := gtx.Constraints.Max
			r.PreviewSize = size
			defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
			if iv != nil && iv.Image != nil {
				dsize, origin := iv.Display()
				drawScaled(gtx, r.images.get(slotImage, iv.Image), dsize, origin)
			}
			r.canvasInput(gtx, true, eventOut)
			return layout.Dimensions{Size: size}
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if iv == nil {
				return layout.Dimensions{}
			}
			n := iv.Native()
			info := fmt.Sprintf("%d × %d · %.0f%%", n.X, n.Y, iv.Scale*100)
			if iv.Info.Format != "" {
				info = strings.ToUpper(iv.Info.Format) + " · " + info
			}
			return r.surfaceBar(gtx, info,
				func(gtx layout.Context) layout.Dimensions {
					return r.toolButton(gtx, &r.imgFitBtn, "Fit", !iv.UserZoomed)
				})
		}),
	)
}

// surfaceBar is the strip under a canvas with a caption and buttons.
func (r *Renderer) surfaceBar(gtx layout.Context, caption string, buttons ...layout.Widget) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, caption)
			lbl.Color = colGray
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		}),
	}
	for _, b := range buttons {
		children = append(children, layout.Rigid(b))
	}
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(10), Right: unit.Dp(6)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
		})
}

func (r *Renderer) layoutTextSurface(gtx layout.Context, doc *preview.TextDoc) layout.Dimensions {
	if doc == nil {
		return layout.Dimensions{Size: gtx.Constraints.Max}
	}
	if doc.Placeholder == "" && len(doc.Blocks) > 0 && (doc.Kind == preview.TextMarkdown || doc.Kind == preview.TextOrg) {
		return r.layoutBlocks(gtx, doc.Blocks)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if doc.Note == "" {
				return layout.Dimensions{}
			}
			return layout.Inset{Top: unit.Dp(6), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Caption(r.Theme, doc.Note)
				lbl.Color = colDanger
				return lbl.Layout(gtx)
			})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				if doc.Placeholder == "" && doc.Lines != nil {
					return r.previewList.Layout(gtx, len(doc.Lines), func(gtx layout.Context, i int) layout.Dimensions {
						return r.layoutCodeLine(gtx, doc.Lines[i])
					})
				}
				lines := r.docText.get(doc)
				return r.previewList.Layout(gtx, len(lines), func(gtx layout.Context, i int) layout.Dimensions {
					lbl := material.Body2(r.Theme, lines[i]+" ")
					lbl.TextSize = unit.Sp(12)
					if doc.Placeholder != "" {
						lbl.Color = colGray
					} else {
						lbl.Font.Typeface = "monospace"
					}
					return lbl.Layout(gtx)
				})
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			caption := formatSize(doc.Size)
			if doc.Encoding != "" {
				caption += " · " + doc.Encoding
			}
			return r.surfaceBar(gtx, caption)
		}),
	)
}

// layoutCodeLine draws one highlighted line token by token.
func (r *Renderer) layoutCodeLine(gtx layout.Context, line preview.Line) layout.Dimensions {
	if len(line) == 0 {
		lbl := material.Body2(r.Theme, " ")
		lbl.TextSize = unit.Sp(12)
		lbl.Font.Typeface = "monospace"
		return lbl.Layout(gtx)
	}
	children := make([]layout.FlexChild, 0, len(line))
	for _, tok := range line {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, tok.Text)
			lbl.TextSize = unit.Sp(12)
			lbl.Font.Typeface = "monospace"
			lbl.MaxLines = 1
			if tok.Set {
				lbl.Color = tok.Color
			}
			if tok.Bold {
				lbl.Font.Weight = font.Bold
			}
			return lbl.Layout(gtx)
		}))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

func (r *Renderer) layoutPDFSurface(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	pv := state.Preview.PDF
	if pv == nil {
		return layout.Dimensions{Size: gtx.Constraints.Max}
	}
	for _, b := range []struct {
		btn    *widget.Clickable
		action UIAction
	}{
		{&r.pdfPrev, ActionPDFPrev},
		{&r.pdfNext, ActionPDFNext},
		{&r.pdfZoomOut, ActionPDFZoomOut},
		{&r.pdfZoomIn, ActionPDFZoomIn},
		{&r.pdfFit, ActionPDFFit},
		{&r.pdfA4, ActionPDFA4},
	} {
		if b.btn.Clicked(gtx) {
			*eventOut = UIEvent{Action: b.action}
		}
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			size := gtx.Constraints.Max
			r.PreviewSize = size
			defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
			if pv.Rendered != nil {
				dsize := pv.RenderedSize
				origin := image.Pt(max(0, (size.X-dsize.X)/2), max(0, (size.Y-dsize.Y)/2))
				drawScaled(gtx, r.images.get(slotPDF, pv.Rendered), dsize, origin)
			} else {
				r.layoutPreviewMessage(gtx, "Rendering…")
			}
			r.canvasInput(gtx, false, eventOut)
			return layout.Dimensions{Size: size}
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			caption := fmt.Sprintf("Page %d of %d", pv.Page+1, pv.Pages)
			if !pv.Fit {
				caption += fmt.Sprintf(" · %.0f%%", pv.Zoom*100)
			}
			if pv.Artifact != "" && pv.Artifact != pv.Source {
				caption += " · converted"
			}
			return r.surfaceBar(gtx, caption,
				func(gtx layout.Context) layout.Dimensions { return r.toolButton(gtx, &r.pdfPrev, "‹", false) },
				func(gtx layout.Context) layout.Dimensions { return r.toolButton(gtx, &r.pdfNext, "›", false) },
				func(gtx layout.Context) layout.Dimensions { return r.toolButton(gtx, &r.pdfZoomOut, "−", false) },
				func(gtx layout.Context) layout.Dimensions { return r.toolButton(gtx, &r.pdfZoomIn, "+", false) },
				func(gtx layout.Context) layout.Dimensions { return r.toolButton(gtx, &r.pdfFit, "Fit", pv.Fit) },
				func(gtx layout.Context) layout.Dimensions { return r.toolButton(gtx, &r.pdfA4, "A4", pv.A4) },
			)
		}),
	)
}

func (r *Renderer) layoutMediaSurface(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	m := state.Media
	if r.mediaPlay.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionMediaToggle}
	}
	if r.mediaStop.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionMediaStop}
	}

	// Seek once the drag ends so the player is not restarted per frame.
	changed := r.seek.Update(gtx)
	switch {
	case r.seek.Dragging():
		r.seekActive = true
	case r.seekActive || changed:
		r.seekActive = false
		*eventOut = UIEvent{Action: ActionMediaSeek, Delta: float64(r.seek.Value)}
	case m.Duration > 0:
		r.seek.Value = float32(m.Position) / float32(m.Duration)
	default:
		r.seek.Value = 0
	}
	if r.volume.Update(gtx) {
		*eventOut = UIEvent{Action: ActionMediaVolume, Delta: float64(r.volume.Value)}
	} else if !r.volume.Dragging() {
		r.volume.Value = float32(m.Volume) / 100
	}

	playIcon := "play"
	if m.State == media.Playing {
		playIcon = "pause"
	}
	status := map[media.State]string{media.Stopped: "Stopped", media.Playing: "Playing", media.Paused: "Paused"}[m.State]

	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, status)
				lbl.Color = colGray
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Slider(r.Theme, &r.seek).Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Caption(r.Theme, media.FormatTime(m.Position)+" / "+media.FormatTime(m.Duration))
				lbl.Color = colGray
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return r.iconButton(gtx, &r.mediaPlay, playIcon, colAccent)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return r.iconButton(gtx, &r.mediaStop, "stop", colGray)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Caption(r.Theme, fmt.Sprintf("Volume %d", m.Volume))
						lbl.Color = colGray
						return lbl.Layout(gtx)
					}),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return material.Slider(r.Theme, &r.volume).Layout(gtx)
					}),
				)
			}),
		)
	})
}

func (r *Renderer) layoutDetails(gtx layout.Context, v *preview.View) layout.Dimensions {
	d := v.Details
	if d == nil {
		return r.layoutPreviewMessage(gtx, v.Message())
	}
	fields := d.Fields()
	// Rows: fields, then excerpt and message when present.
	n := len(fields)
	extra := []string{}
	if d.Message != "" {
		extra = append(extra, d.Message)
	}
	if d.Excerpt != "" {
		extra = append(extra, d.Excerpt)
	}
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.previewList.Layout(gtx, n+len(extra), func(gtx layout.Context, i int) layout.Dimensions {
			if i >= n {
				return layout.Inset{Top: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, extra[i-n])
					if extra[i-n] == d.Message {
						lbl.Color = colGray
					}
					return lbl.Layout(gtx)
				})
			}
			f := fields[i]
			return layout.Inset{Top: unit.Dp(3), Bottom: unit.Dp(3)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Flexed(0.35, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, f.Label)
						lbl.Color = colGray
						return lbl.Layout(gtx)
					}),
					layout.Flexed(0.65, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, f.Value)
						lbl.MaxLines = 2
						return lbl.Layout(gtx)
					}),
				)
			})
		})
	})
}
