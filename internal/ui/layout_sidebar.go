package ui

import (
	"image"
	"image/color"
	"path/filepath"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/fs"
)

// layoutSidebar lists shortcuts, then drives under their own heading.
func (r *Renderer) layoutSidebar(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	for i := range state.Places {
		if state.Places[i].Clickable.Clicked(gtx) {
			*eventOut = UIEvent{Action: ActionNavigate, Path: state.Places[i].Path}
			gtx.Execute(key.FocusCmd{Tag: keyTag})
		}
	}

	// Rows are the places plus one heading per kind that has entries.
	type row struct {
		heading string
		place   *PlaceItem
	}
	var rows []row
	last := fs.PlaceKind(-1)
	for i := range state.Places {
		p := &state.Places[i]
		if p.Kind != last {
			last = p.Kind
			h := "Places"
			if p.Kind == fs.PlaceDrive {
				h = "Drives"
			}
			rows = append(rows, row{heading: h})
		}
		rows = append(rows, row{place: p})
	}

	return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.placesList.Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
			if rows[i].place == nil {
				return layout.Inset{Top: unit.Dp(10), Bottom: unit.Dp(4), Left: unit.Dp(12)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						lbl := material.Caption(r.Theme, rows[i].heading)
						lbl.Color = colGray
						return lbl.Layout(gtx)
					})
			}
			p := rows[i].place
			active := filepath.Clean(p.Path) == filepath.Clean(state.CurrentPath)
			return r.placeRow(gtx, p, active)
		})
	})
}

func (r *Renderer) placeRow(gtx layout.Context, p *PlaceItem, active bool) layout.Dimensions {
	return material.Clickable(gtx, &p.Clickable, func(gtx layout.Context) layout.Dimensions {
		macro := op.Record(gtx.Ops)
		dims := layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(12), Right: unit.Dp(8)}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						size := gtx.Dp(16)
						if p.Kind == fs.PlaceDrive {
							drawDriveIcon(gtx.Ops, size, colDriveIcon)
						} else {
							drawFolderIcon(gtx.Ops, size, colAccent, colDirBlue)
						}
						return layout.Dimensions{Size: image.Pt(size, size)}
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, p.Name)
						lbl.Color = colDirBlue
						lbl.MaxLines = 1
						return lbl.Layout(gtx)
					}),
				)
			})
		call := macro.Stop()
		if active {
			rr := gtx.Dp(4)
			paint.FillShape(gtx.Ops, colSelected, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
		}
		call.Add(gtx.Ops)
		return dims
	})
}

// drawDriveIcon is a rounded box with an activity light.
func drawDriveIcon(ops *op.Ops, size int, c color.NRGBA) {
	body := image.Rect(size/10, size*3/10, size*9/10, size*8/10)
	paint.FillShape(ops, c, clip.UniformRRect(body, size/8).Op(ops))
	led := image.Rect(size*6/10, size*5/10, size*7/10, size*6/10)
	paint.FillShape(ops, colWhite, clip.Rect(led).Op())
}
