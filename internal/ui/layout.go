package ui

import (
	"fmt"
	"image"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/media"
	"github.com/justyntemme/vista/internal/view"
)

const (
	sidebarWidth    = 180
	minPreviewWidth = 220
	minSurfaceWidth = 280
	// mediaTick is how often the position readout refreshes while playing.
	mediaTick = 250 * time.Millisecond
)

// Layout draws one frame and returns the action the user asked for, if any.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()

	keyTag := &r.listState
	event.Op(gtx.Ops, keyTag)
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: keyTag})
		r.focused = true
	}
	eventOut := r.processGlobalInput(gtx, state, keyTag)

	if state.Media.State == media.Playing {
		gtx.Execute(op.InvalidateCmd{At: gtx.Now.Add(mediaTick)})
	}

	paint.FillShape(gtx.Ops, colWhite, clip.Rect{Max: gtx.Constraints.Max}.Op())
	layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
						func(gtx layout.Context) layout.Dimensions {
							return r.layoutNavBar(gtx, state, keyTag, &eventOut)
						})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
						func(gtx layout.Context) layout.Dimensions {
							return r.layoutToolbar(gtx, state, keyTag, &eventOut)
						})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutConfigErrorBanner(gtx, state)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions { return divider(gtx, layout.Horizontal) }),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return r.layoutBody(gtx, state, keyTag, &eventOut)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions { return divider(gtx, layout.Horizontal) }),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutStatusBar(gtx, state)
				}),
			)
		}),
		layout.Expanded(r.layoutToast),
	)
	return eventOut
}

// layoutBody is sidebar, active surface and, when shown, the preview pane.
func (r *Renderer) layoutBody(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	total := gtx.Constraints.Max.X
	side := gtx.Dp(sidebarWidth)
	showPreview := state.PreviewVisible && total-side > gtx.Dp(minSurfaceWidth+minPreviewWidth)
	if showPreview {
		if r.previewWidth <= 0 {
			r.previewWidth = total * max(10, state.PreviewPercent) / 100
		}
		r.previewResize.MinSize = gtx.Dp(minPreviewWidth)
		r.previewResize.MaxSize = total - side - gtx.Dp(minSurfaceWidth)
		r.previewWidth = max(r.previewResize.MinSize, min(r.previewWidth, r.previewResize.MaxSize))
	} else {
		r.PreviewSize = image.Point{}
	}

	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X, gtx.Constraints.Max.X = side, side
			paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return r.layoutSidebar(gtx, state, keyTag, eventOut)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions { return divider(gtx, layout.Vertical) }),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return r.layoutSurface(gtx, state, keyTag, eventOut)
		}),
	}
	if showPreview {
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				dims, w := r.previewResize.Layout(gtx, DefaultResizeHandleStyle(), r.previewWidth)
				r.previewWidth = w
				return dims
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X, gtx.Constraints.Max.X = r.previewWidth, r.previewWidth
				gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
				return r.layoutPreviewPane(gtx, state, keyTag, eventOut)
			}),
		)
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

// layoutSurface draws the sort header and the rows of the active mode.
func (r *Renderer) layoutSurface(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutColumnHeader(gtx, state, eventOut)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions { return divider(gtx, layout.Horizontal) }),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Stack{}.Layout(gtx,
				// Clicking empty space clears the selection.
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					if r.bgClick.Clicked(gtx) {
						*eventOut = UIEvent{Action: ActionSelect, NewIndex: -1}
						gtx.Execute(key.FocusCmd{Tag: keyTag})
					}
					return r.bgClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{Size: gtx.Constraints.Min}
					})
				}),
				layout.Stacked(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min = gtx.Constraints.Max
					if len(state.Entries) == 0 {
						return r.layoutEmpty(gtx, state)
					}
					if state.Mode == view.ModeIcon {
						return r.layoutFileGrid(gtx, state, keyTag, eventOut)
					}
					return r.layoutFileList(gtx, state, keyTag, eventOut)
				}),
			)
		}),
	)
}

func (r *Renderer) layoutEmpty(gtx layout.Context, state *State) layout.Dimensions {
	msg := "This folder is empty"
	if state.Loading {
		msg = "Loading…"
	}
	return layout.Inset{Top: unit.Dp(24)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.N.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, msg)
			lbl.Color = colGray
			return lbl.Layout(gtx)
		})
	})
}

func (r *Renderer) layoutStatusBar(gtx layout.Context, state *State) layout.Dimensions {
	left := fmt.Sprintf("%d items", len(state.Entries))
	if len(state.Entries) == 1 {
		left = "1 item"
	}
	if sel := state.Selected(); sel != nil {
		left += " · " + sel.Name
		if !sel.IsDir {
			left += " (" + formatSize(sel.Size) + ")"
		}
	}
	if state.Loading {
		left += " · Loading…"
	}
	right := fmt.Sprintf("Office cache: %d files, %s", state.CacheFiles, formatSize(state.CacheBytes))

	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Caption(r.Theme, left)
					lbl.Color = colGray
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Caption(r.Theme, right)
					lbl.Color = colGray
					return lbl.Layout(gtx)
				}),
			)
		})
}

// layoutConfigErrorBanner explains why the defaults are in use.
func (r *Renderer) layoutConfigErrorBanner(gtx layout.Context, state *State) layout.Dimensions {
	if state.ConfigError == "" {
		return layout.Dimensions{}
	}
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		lbl := material.Body2(r.Theme, "config.json could not be parsed, using defaults: "+state.ConfigError)
		lbl.Color = colDanger
		lbl.MaxLines = 2
		return lbl.Layout(gtx)
	})
	call := macro.Stop()
	paint.FillShape(gtx.Ops, colErrorBannerBg, clip.Rect{Max: dims.Size}.Op())
	call.Add(gtx.Ops)
	return dims
}
