package ui

import (
	"image"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/view"
)

// dateLayout is the table's Modified column.
const dateLayout = "2006-01-02 15:04"

type column struct {
	sort   view.SortColumn
	title  string
	weight float32
	end    bool // right-aligned
}

// visibleColumns are Name plus the optional columns switched on. The icon
// view shows the same header as a sort bar.
func visibleColumns(c view.Columns) []column {
	cols := []column{{view.SortByName, "Name", 0.5, false}}
	if c.Modified {
		cols = append(cols, column{view.SortByDate, "Modified", 0.25, false})
	}
	if c.Type {
		cols = append(cols, column{view.SortByType, "Type", 0.15, false})
	}
	if c.Size {
		cols = append(cols, column{view.SortBySize, "Size", 0.10, true})
	}
	return cols
}

func (r *Renderer) layoutColumnHeader(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	cols := visibleColumns(state.Columns)
	var children []layout.FlexChild
	for _, col := range cols {
		btn := &r.headerBtns[col.sort]
		if btn.Clicked(gtx) {
			*eventOut = UIEvent{Action: ActionSort, Column: col.sort}
		}
		title := col.title
		if state.Sort.Column == col.sort {
			if state.Sort.Ascending {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		children = append(children, layout.Flexed(col.weight, func(gtx layout.Context) layout.Dimensions {
			return material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(2)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min.X = gtx.Constraints.Max.X
					lbl := material.Body2(r.Theme, title)
					lbl.Font.Weight = font.SemiBold
					lbl.MaxLines = 1
					if col.end {
						lbl.Alignment = text.End
					}
					return lbl.Layout(gtx)
				})
			})
		}))
	}
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
		})
}

// handleEntryClick selects on a single click and opens on a double click.
func (r *Renderer) handleEntryClick(gtx layout.Context, item *UIEntry, i int, keyTag event.Tag, eventOut *UIEvent) {
	if !item.Clickable.Clicked(gtx) {
		return
	}
	r.isEditing = false
	gtx.Execute(key.FocusCmd{Tag: keyTag})
	now := gtx.Now
	if !item.LastClick.IsZero() && now.Sub(item.LastClick) < doubleClickInterval {
		item.LastClick = now.Add(-doubleClickInterval)
		*eventOut = openEvent(item)
		return
	}
	item.LastClick = now
	*eventOut = UIEvent{Action: ActionSelect, NewIndex: i}
}

// layoutFileList draws the table and tree surfaces.
func (r *Renderer) layoutFileList(gtx layout.Context, state *State, keyTag event.Tag, eventOut *UIEvent) layout.Dimensions {
	cols := visibleColumns(state.Columns)
	tree := state.Mode == view.ModeTree
	return r.listState.Layout(gtx, len(state.Entries), func(gtx layout.Context, i int) layout.Dimensions {
		item := &state.Entries[i]
		// The chevron sits inside the row, so the row sees its clicks too.
		expand := tree && item.IsDir && item.ExpandBtn.Clicked(gtx)
		r.handleEntryClick(gtx, item, i, keyTag, eventOut)
		if expand {
			*eventOut = UIEvent{Action: ActionToggleExpand, Path: item.Path}
		}
		return r.renderRow(gtx, state, item, cols, i == state.SelectedIndex, tree)
	})
}

func (r *Renderer) renderRow(gtx layout.Context, state *State, item *UIEntry, cols []column, selected, tree bool) layout.Dimensions {
	iconSize := gtx.Dp(unit.Dp(state.Mode.IconSize() / 2))
	return material.Clickable(gtx, &item.Clickable, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				if selected {
					paint.FillShape(gtx.Ops, colSelected, clip.Rect{Max: gtx.Constraints.Min}.Op())
				}
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return layout.Inset{Top: unit.Dp(5), Bottom: unit.Dp(5), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						children := make([]layout.FlexChild, 0, len(cols))
						for _, col := range cols {
							children = append(children, layout.Flexed(col.weight, func(gtx layout.Context) layout.Dimensions {
								if col.sort == view.SortByName {
									return r.nameCell(gtx, item, iconSize, tree)
								}
								return r.detailCell(gtx, item, col)
							}))
						}
						return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
					})
			}),
		)
	})
}

// nameCell is the indented name with its icon and, in the tree, the
// expand chevron.
func (r *Renderer) nameCell(gtx layout.Context, item *UIEntry, iconSize int, tree bool) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !tree {
				return layout.Dimensions{}
			}
			indent := gtx.Dp(unit.Dp(16 * item.Depth))
			size := gtx.Dp(16)
			dims := layout.Dimensions{Size: image.Pt(indent+size, size)}
			if !item.IsDir {
				return dims
			}
			icon := "chevron-right"
			if item.Expanded {
				icon = "chevron-down"
			}
			return layout.Inset{Left: unit.Dp(float32(16 * item.Depth))}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return r.iconButton16(gtx, item, icon)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if item.IsDir {
				drawFolderIcon(gtx.Ops, iconSize, colAccent, colDirBlue)
			} else {
				drawFileIcon(gtx.Ops, iconSize, item.Ext)
			}
			return layout.Dimensions{Size: image.Pt(iconSize, iconSize)}
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, item.Name)
			lbl.MaxLines = 1
			if item.IsDir {
				lbl.Color = colDirBlue
				lbl.Font.Weight = font.Bold
			}
			return lbl.Layout(gtx)
		}),
	)
}

func (r *Renderer) iconButton16(gtx layout.Context, item *UIEntry, icon string) layout.Dimensions {
	size := gtx.Dp(16)
	return item.ExpandBtn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		drawIcon(gtx.Ops, icon, size, colGray)
		return layout.Dimensions{Size: image.Pt(size, size)}
	})
}

func (r *Renderer) detailCell(gtx layout.Context, item *UIEntry, col column) layout.Dimensions {
	var s string
	switch col.sort {
	case view.SortByDate:
		s = item.ModTime.Format(dateLayout)
	case view.SortByType:
		s = typeLabel(item)
	case view.SortBySize:
		if !item.IsDir {
			s = formatSize(item.Size)
		}
	}
	lbl := material.Body2(r.Theme, s)
	lbl.Color = colGray
	lbl.MaxLines = 1
	if col.end {
		lbl.Alignment = text.End
	}
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return lbl.Layout(gtx)
}
