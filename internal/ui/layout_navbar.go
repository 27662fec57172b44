package ui

import (
	"image"
	"image/color"
	"strings"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/view"
)

// layoutNavBar is back/forward/up/home, the breadcrumb or address editor,
// and refresh.
func (r *Renderer) layoutNavBar(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	nav := func(btn *widget.Clickable, icon string, enabled bool, action UIAction) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if btn.Clicked(gtx) && enabled {
				*eventOut = UIEvent{Action: action}
				gtx.Execute(key.FocusCmd{Tag: keyTag})
			}
			c := colAccent
			if !enabled {
				c = colDisabled
			}
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return r.iconButton(gtx, btn, icon, c)
			})
		})
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		nav(&r.backBtn, "back", state.CanBack, ActionBack),
		nav(&r.fwdBtn, "forward", state.CanForward, ActionForward),
		nav(&r.upBtn, "up", state.CanUp, ActionUp),
		nav(&r.homeBtn, "home", true, ActionHome),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
			if r.isEditing {
				return r.layoutAddressEditor(gtx, keyTag, eventOut)
			}
			return r.layoutBreadcrumb(gtx, state, keyTag, eventOut)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		nav(&r.refreshBtn, "refresh", true, ActionRefresh),
	)
}

func (r *Renderer) layoutAddressEditor(gtx layout.Context, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	for {
		evt, ok := r.pathEditor.Update(gtx)
		if !ok {
			break
		}
		if s, ok := evt.(widget.SubmitEvent); ok {
			r.isEditing = false
			*eventOut = UIEvent{Action: ActionSubmitAddress, Path: strings.TrimSpace(s.Text)}
			gtx.Execute(key.FocusCmd{Tag: keyTag})
		}
	}
	for {
		e, ok := gtx.Event(key.Filter{Focus: &r.pathEditor, Name: key.NameEscape})
		if !ok {
			break
		}
		if k, ok := e.(key.Event); ok && k.State == key.Press {
			r.isEditing = false
			gtx.Execute(key.FocusCmd{Tag: keyTag})
		}
	}
	return widget.Border{Color: colAccent, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					ed := material.Editor(r.Theme, &r.pathEditor, "Type a path and press Enter")
					ed.TextSize = unit.Sp(14)
					return ed.Layout(gtx)
				})
		})
}

// layoutBreadcrumb draws the clickable segments. The ellipsis of a
// collapsed breadcrumb, or a click on the empty area, opens the editor
// with the full path.
func (r *Renderer) layoutBreadcrumb(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	segs := state.Breadcrumb.Segments
	for len(r.breadcrumbBtns) < len(segs) {
		r.breadcrumbBtns = append(r.breadcrumbBtns, widget.Clickable{})
	}

	clicked := false
	for i, seg := range segs {
		if !r.breadcrumbBtns[i].Clicked(gtx) {
			continue
		}
		clicked = true
		if seg.IsEllipsis {
			r.startEditing(gtx, state.Breadcrumb.Expand())
			continue
		}
		*eventOut = UIEvent{Action: ActionNavigate, Path: seg.Path}
		gtx.Execute(key.FocusCmd{Tag: keyTag})
	}
	if r.pathClick.Clicked(gtx) && !clicked {
		r.startEditing(gtx, state.CurrentPath)
	}

	return material.Clickable(gtx, &r.pathClick, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		var children []layout.FlexChild
		for i, seg := range segs {
			if i > 0 {
				children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, " › ")
					lbl.Color = colGray
					return lbl.Layout(gtx)
				}))
			}
			last := i == len(segs)-1
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Clickable(gtx, &r.breadcrumbBtns[i], func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx,
						func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(r.Theme, seg.Name)
							lbl.MaxLines = 1
							switch {
							case seg.IsEllipsis:
								lbl.Color = colGray
							case last:
								lbl.Font.Weight = font.Bold
								lbl.Color = colBlack
							default:
								lbl.Color = colAccent
							}
							return lbl.Layout(gtx)
						})
				})
			}))
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

// layoutToolbar holds the mode switch and the view and preview toggles.
func (r *Renderer) layoutToolbar(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	emit := func(ev UIEvent) {
		*eventOut = ev
		gtx.Execute(key.FocusCmd{Tag: keyTag})
	}
	var children []layout.FlexChild
	for i := range r.modeBtns {
		m := view.Mode(i)
		if r.modeBtns[i].Clicked(gtx) {
			emit(UIEvent{Action: ActionSetMode, Mode: m})
		}
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.toolButton(gtx, &r.modeBtns[i], r.modeLabel(m), state.Mode == m)
		}))
	}
	toggle := func(btn *widget.Clickable, label string, on bool, action UIAction) layout.FlexChild {
		if btn.Clicked(gtx) {
			emit(UIEvent{Action: action})
		}
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return r.toolButton(gtx, btn, label, on)
			})
		})
	}
	children = append(children,
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		toggle(&r.hiddenBtn, "Hidden files", state.ShowHidden, ActionToggleHidden),
		toggle(&r.thumbsBtn, "Thumbnails", state.Thumbnails, ActionToggleThumbnails),
		toggle(&r.previewBtn, "Preview", state.PreviewVisible, ActionTogglePreview),
		layout.Flexed(1, layout.Spacer{}.Layout),
		toggle(&r.clearCacheBtn, "Clear office cache", false, ActionClearCache),
	)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

// iconButton is a clickable vector icon without a background.
func (r *Renderer) iconButton(gtx layout.Context, btn *widget.Clickable, icon string, c color.NRGBA) layout.Dimensions {
	size := gtx.Dp(24)
	return material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		drawIcon(gtx.Ops, icon, size, c)
		return layout.Dimensions{Size: image.Pt(size, size)}
	})
}

// drawIcon fills a simple vector icon of the given edge size.
func drawIcon(ops *op.Ops, icon string, size int, c color.NRGBA) {
	s := float32(size)
	// Parts that are not a single outline go down before the path starts.
	switch icon {
	case "refresh":
		ring := clip.Ellipse{Min: image.Pt(size/5, size/5), Max: image.Pt(size*4/5, size*4/5)}
		paint.FillShape(ops, c, clip.Stroke{Path: ring.Path(ops), Width: s * 0.1}.Op())
	case "pause":
		paint.FillShape(ops, c, clip.Rect{Min: image.Pt(size/4, size/6), Max: image.Pt(size*5/12, size*5/6)}.Op())
	}

	var p clip.Path
	p.Begin(ops)
	switch icon {
	case "back":
		p.MoveTo(f32.Pt(s*0.7, s*0.15))
		p.LineTo(f32.Pt(s*0.25, s*0.5))
		p.LineTo(f32.Pt(s*0.7, s*0.85))
		p.LineTo(f32.Pt(s*0.55, s*0.5))
	case "forward":
		p.MoveTo(f32.Pt(s*0.3, s*0.15))
		p.LineTo(f32.Pt(s*0.75, s*0.5))
		p.LineTo(f32.Pt(s*0.3, s*0.85))
		p.LineTo(f32.Pt(s*0.45, s*0.5))
	case "up":
		p.MoveTo(f32.Pt(s*0.15, s*0.7))
		p.LineTo(f32.Pt(s*0.5, s*0.25))
		p.LineTo(f32.Pt(s*0.85, s*0.7))
		p.LineTo(f32.Pt(s*0.5, s*0.55))
	case "home":
		p.MoveTo(f32.Pt(s*0.5, s*0.18))
		p.LineTo(f32.Pt(s*0.15, s*0.48))
		p.LineTo(f32.Pt(s*0.85, s*0.48))
		p.Close()
		paint.FillShape(ops, c, clip.Outline{Path: p.End()}.Op())
		p.Begin(ops)
		p.MoveTo(f32.Pt(s*0.25, s*0.48))
		p.LineTo(f32.Pt(s*0.25, s*0.82))
		p.LineTo(f32.Pt(s*0.75, s*0.82))
		p.LineTo(f32.Pt(s*0.75, s*0.48))
	case "refresh":
		p.MoveTo(f32.Pt(s*0.62, s*0.08))
		p.LineTo(f32.Pt(s*0.9, s*0.22))
		p.LineTo(f32.Pt(s*0.62, s*0.38))
	case "chevron-right":
		p.MoveTo(f32.Pt(s*0.35, s*0.2))
		p.LineTo(f32.Pt(s*0.75, s*0.5))
		p.LineTo(f32.Pt(s*0.35, s*0.8))
	case "chevron-down":
		p.MoveTo(f32.Pt(s*0.2, s*0.35))
		p.LineTo(f32.Pt(s*0.5, s*0.75))
		p.LineTo(f32.Pt(s*0.8, s*0.35))
	case "play":
		p.MoveTo(f32.Pt(s*0.25, s*0.15))
		p.LineTo(f32.Pt(s*0.85, s*0.5))
		p.LineTo(f32.Pt(s*0.25, s*0.85))
	case "pause":
		p.MoveTo(f32.Pt(s*7/12, s/6))
		p.LineTo(f32.Pt(s*0.75, s/6))
		p.LineTo(f32.Pt(s*0.75, s*5/6))
		p.LineTo(f32.Pt(s*7/12, s*5/6))
	case "stop":
		p.MoveTo(f32.Pt(s*0.22, s*0.22))
		p.LineTo(f32.Pt(s*0.78, s*0.22))
		p.LineTo(f32.Pt(s*0.78, s*0.78))
		p.LineTo(f32.Pt(s*0.22, s*0.78))
	case "close":
		w := s * 0.12
		p.MoveTo(f32.Pt(s*0.2, s*0.2+w))
		p.LineTo(f32.Pt(s*0.2+w, s*0.2))
		p.LineTo(f32.Pt(s*0.8, s*0.8-w))
		p.LineTo(f32.Pt(s*0.8-w, s*0.8))
		p.Close()
		p.MoveTo(f32.Pt(s*0.8-w, s*0.2))
		p.LineTo(f32.Pt(s*0.8, s*0.2+w))
		p.LineTo(f32.Pt(s*0.2+w, s*0.8))
		p.LineTo(f32.Pt(s*0.2, s*0.8-w))
	}
	p.Close()
	paint.FillShape(ops, c, clip.Outline{Path: p.End()}.Op())
}
