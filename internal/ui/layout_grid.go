package ui

import (
	"image"
	"image/color"
	"strings"

	"gioui.org/io/event"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/classify"
)

const (
	gridCellWidth = 96
	// gridNameCells is how many display cells of a name fit under an icon.
	gridNameCells = 14
)

// layoutFileGrid draws the icon surface as rows of fixed-width cells.
func (r *Renderer) layoutFileGrid(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	cell := gtx.Dp(gridCellWidth)
	cols := max(1, gtx.Constraints.Max.X/cell)
	r.gridColumns = cols
	n := len(state.Entries)
	rows := (n + cols - 1) / cols
	iconSize := gtx.Dp(unit.Dp(state.Mode.IconSize()))

	return r.gridState.Layout(gtx, rows, func(gtx layout.Context, row int) layout.Dimensions {
		children := make([]layout.FlexChild, 0, cols)
		for c := range cols {
			i := row*cols + c
			if i >= n {
				break
			}
			item := &state.Entries[i]
			r.handleEntryClick(gtx, item, i, keyTag, eventOut)
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X, gtx.Constraints.Max.X = cell, cell
				return r.layoutGridItem(gtx, state, item, iconSize, i == state.SelectedIndex)
			}))
		}
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
	})
}

func (r *Renderer) layoutGridItem(gtx layout.Context, state *State, item *UIEntry, iconSize int, selected bool) layout.Dimensions {
	return material.Clickable(gtx, &item.Clickable, func(gtx layout.Context) layout.Dimensions {
		macro := op.Record(gtx.Ops)
		dims := layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.drawGridIcon(gtx, state, item, iconSize)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Caption(r.Theme, truncateFilename(item.Name, gridNameCells))
					lbl.Alignment = text.Middle
					lbl.MaxLines = 2
					if item.IsDir {
						lbl.Color = colDirBlue
					}
					return lbl.Layout(gtx)
				}),
			)
		})
		call := macro.Stop()
		if selected {
			paint.FillShape(gtx.Ops, colSelected, clip.UniformRRect(image.Rectangle{Max: dims.Size}, gtx.Dp(6)).Op(gtx.Ops))
		}
		call.Add(gtx.Ops)
		return dims
	})
}

// drawGridIcon shows the cached thumbnail for images when thumbnails are on,
// asking the cache to load it otherwise, and a drawn icon meanwhile.
func (r *Renderer) drawGridIcon(gtx layout.Context, state *State, item *UIEntry, size int) layout.Dimensions {
	sz := image.Pt(size, size)
	if !item.IsDir && state.Thumbnails && r.thumbs != nil && classify.Classify(item.Path) == classify.Image {
		if thumb, _, ok := r.thumbs.Get(item.Path); ok {
			gtx.Constraints = layout.Exact(sz)
			return widget.Image{Src: thumb, Fit: widget.Contain, Position: layout.Center}.Layout(gtx)
		}
		r.thumbs.RequestLoad(item.Path)
	}
	if item.IsDir {
		drawFolderIcon(gtx.Ops, size, colAccent, colDirBlue)
	} else {
		drawFileIcon(gtx.Ops, size, item.Ext)
	}
	return layout.Dimensions{Size: sz}
}

// drawFolderIcon is a light body with an outline and a tab.
func drawFolderIcon(ops *op.Ops, size int, inner, outer color.NRGBA) {
	s := float32(size)
	x, y := int(s*0.12), int(s*0.28)
	w, h := int(s*0.76), int(s*0.58)
	body := image.Rect(x, y, x+w, y+h)

	light := color.NRGBA{
		R: uint8(min(255, int(inner.R)+180)),
		G: uint8(min(255, int(inner.G)+180)),
		B: uint8(min(255, int(inner.B)+180)),
		A: 255,
	}
	paint.FillShape(ops, light, clip.Rect(body).Op())
	strokeRect(ops, body, max(1, size/24), outer)

	tab := image.Rect(x, y-int(s*0.12), x+int(s*0.30), y+max(1, size/24))
	paint.FillShape(ops, outer, clip.Rect(tab).Op())
}

// drawFileIcon is a page with a folded corner and a colour band for the
// file's category.
func drawFileIcon(ops *op.Ops, size int, ext string) {
	s := float32(size)
	x, y := int(s*0.22), int(s*0.08)
	w, h := int(s*0.56), int(s*0.78)
	page := image.Rect(x, y, x+w, y+h)

	paint.FillShape(ops, color.NRGBA{R: 227, G: 242, B: 253, A: 255}, clip.Rect(page).Op())
	strokeRect(ops, page, max(1, size/24), colAccent)
	corner := int(s * 0.12)
	paint.FillShape(ops, colAccent, clip.Rect(image.Rect(x+w-corner, y, x+w, y+corner)).Op())

	if ext != "" {
		bw, bh := int(s*0.44), int(s*0.22)
		bx, by := size/2-bw/2, int(s*0.50)
		paint.FillShape(ops, extensionColor(ext), clip.Rect(image.Rect(bx, by, bx+bw, by+bh)).Op())
	}
}

func strokeRect(ops *op.Ops, r image.Rectangle, w int, c color.NRGBA) {
	paint.FillShape(ops, c, clip.Rect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w)).Op())
	paint.FillShape(ops, c, clip.Rect(image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y)).Op())
	paint.FillShape(ops, c, clip.Rect(image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y)).Op())
	paint.FillShape(ops, c, clip.Rect(image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y)).Op())
}

// extensionColor colours file icons by the category the preview pane
// would pick for them.
func extensionColor(ext string) color.NRGBA {
	switch classify.Classify("x." + strings.ToLower(ext)) {
	case classify.Image:
		return color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	case classify.Audio:
		return color.NRGBA{R: 156, G: 39, B: 176, A: 255}
	case classify.Video:
		return color.NRGBA{R: 255, G: 152, B: 0, A: 255}
	case classify.Pdf:
		return color.NRGBA{R: 244, G: 67, B: 54, A: 255}
	case classify.Office:
		return color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	case classify.Text:
		return color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	}
	return colAccent
}
