package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
)

// toast is a transient status line shown above the bottom edge. It is
// written from the orchestrator's goroutines and read while drawing.
type toast struct {
	mu        sync.Mutex
	message   string
	kind      ToastType
	expiresAt time.Time
}

const toastDuration = 3 * time.Second

// ShowToast displays message until it expires.
func (r *Renderer) ShowToast(message string, kind ToastType) {
	r.toast.mu.Lock()
	r.toast.message = message
	r.toast.kind = kind
	r.toast.expiresAt = time.Now().Add(toastDuration)
	r.toast.mu.Unlock()
}

func (r *Renderer) ShowError(message string)   { r.ShowToast(message, ToastError) }
func (r *Renderer) ShowSuccess(message string) { r.ShowToast(message, ToastSuccess) }

// activeToast returns the current message, or "" once it has expired.
func (r *Renderer) activeToast(now time.Time) (string, ToastType, time.Time) {
	r.toast.mu.Lock()
	defer r.toast.mu.Unlock()
	if r.toast.message == "" || !now.Before(r.toast.expiresAt) {
		r.toast.message = ""
		return "", ToastInfo, time.Time{}
	}
	return r.toast.message, r.toast.kind, r.toast.expiresAt
}

func toastColors(kind ToastType) (bg, fg color.NRGBA) {
	switch kind {
	case ToastError:
		return color.NRGBA{R: 200, G: 50, B: 50, A: 240}, colWhite
	case ToastSuccess:
		return color.NRGBA{R: 50, G: 160, B: 80, A: 240}, colWhite
	}
	return color.NRGBA{R: 60, G: 60, B: 60, A: 240}, colWhite
}

func (r *Renderer) layoutToast(gtx layout.Context) layout.Dimensions {
	message, kind, expires := r.activeToast(gtx.Now)
	if message == "" {
		return layout.Dimensions{}
	}
	// Redraw when it is due to disappear.
	gtx.Execute(op.InvalidateCmd{At: expires})

	bg, fg := toastColors(kind)
	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(20), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(500)))
			gtx.Constraints.Min = image.Point{}

			macro := op.Record(gtx.Ops)
			dims := layout.Inset{Top: unit.Dp(12), Bottom: unit.Dp(12), Left: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(r.Theme, message)
					lbl.Color = fg
					return lbl.Layout(gtx)
				})
			call := macro.Stop()

			rr := gtx.Dp(unit.Dp(8))
			paint.FillShape(gtx.Ops, bg, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
			call.Add(gtx.Ops)
			return dims
		})
	})
}
