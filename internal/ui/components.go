package ui

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/dustin/go-humanize"

	"github.com/justyntemme/vista/internal/preview"
)

// toolButton is a flat text button; active ones get the accent colour.
func (r *Renderer) toolButton(gtx layout.Context, btn *widget.Clickable, label string, active bool) layout.Dimensions {
	b := material.Button(r.Theme, btn, label)
	b.Inset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}
	b.TextSize = unit.Sp(13)
	b.CornerRadius = unit.Dp(4)
	if active {
		b.Background, b.Color = colAccent, colWhite
	} else {
		b.Background, b.Color = color.NRGBA{}, colBlack
	}
	return b.Layout(gtx)
}

// panelShell draws content on a white box with a grey border.
func (r *Renderer) panelShell(gtx layout.Context, content layout.Widget) layout.Dimensions {
	return widget.Border{
		Color:        colLightGray,
		Width:        unit.Dp(1),
		CornerRadius: unit.Dp(4),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				paint.FillShape(gtx.Ops, colWhite, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(content),
		)
	})
}

// divider is a one-dp line across the given axis.
func divider(gtx layout.Context, axis layout.Axis) layout.Dimensions {
	sz := image.Pt(gtx.Constraints.Max.X, gtx.Dp(1))
	if axis == layout.Vertical {
		sz = image.Pt(gtx.Dp(1), gtx.Constraints.Max.Y)
	}
	paint.FillShape(gtx.Ops, colDivider, clip.Rect{Max: sz}.Op())
	return layout.Dimensions{Size: sz}
}

func formatSize(bytes int64) string {
	if bytes < 0 {
		return ""
	}
	return humanize.Bytes(uint64(bytes))
}

// typeLabel is the table's Type column.
func typeLabel(e *UIEntry) string {
	if e.IsDir {
		return "Folder"
	}
	return preview.Kind(e.Path)
}

func truncateFilename(name string, maxCells int) string {
	if maxCells <= 3 {
		return preview.TruncateWidth(name, maxCells)
	}
	ext := filepath.Ext(name)
	if ext == name || len(ext) >= maxCells-3 {
		return preview.TruncateWidth(name, maxCells)
	}
	base := strings.TrimSuffix(name, ext)
	cut := preview.TruncateWidth(base, maxCells-len(ext))
	if cut == base {
		return name
	}
	return cut + ext
}
