package ui

import (
	"image"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/vista/internal/preview"
)

// headingSizes are H1 through H6.
var headingSizes = [...]unit.Sp{24, 20, 18, 16, 14, 12}

// layoutBlocks renders rich blocks from markdown, org or converted office
// documents in the scrolling preview list.
func (r *Renderer) layoutBlocks(gtx layout.Context, blocks []preview.Block) layout.Dimensions {
	if len(blocks) == 0 {
		return r.layoutPreviewMessage(gtx, "Nothing to show")
	}
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.previewList.Layout(gtx, len(blocks), func(gtx layout.Context, i int) layout.Dimensions {
			return r.layoutBlock(gtx, blocks[i])
		})
	})
}

func (r *Renderer) layoutBlock(gtx layout.Context, b preview.Block) layout.Dimensions {
	switch b.Kind {
	case preview.BlockHeading:
		size := headingSizes[0]
		if b.Level >= 1 && b.Level <= len(headingSizes) {
			size = headingSizes[b.Level-1]
		}
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return r.layoutSpans(gtx, b.Spans, size, font.Bold)
		})
	case preview.BlockCode:
		return r.layoutCodeBlock(gtx, b)
	case preview.BlockQuote:
		return r.layoutQuote(gtx, b)
	case preview.BlockRule:
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			h := gtx.Dp(1)
			paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, h)}.Op())
			return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, h)}
		})
	case preview.BlockList:
		indent := 0
		if len(b.Spans) > 0 {
			indent = b.Spans[0].ListIndent
		}
		return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2), Left: unit.Dp(float32(16 * (indent + 1)))}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				return r.layoutSpans(gtx, b.Spans, 14, font.Normal)
			})
	case preview.BlockTable:
		return r.layoutTable(gtx, b)
	}
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.layoutSpans(gtx, b.Spans, 14, font.Normal)
	})
}

func (r *Renderer) layoutCodeBlock(gtx layout.Context, b preview.Block) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		radius := gtx.Dp(4)
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rect := image.Rectangle{Max: gtx.Constraints.Min}
				paint.FillShape(gtx.Ops, colCodeBlockBg, clip.UniformRRect(rect, radius).Op(gtx.Ops))
				paint.FillShape(gtx.Ops, colCodeBlockBorder, clip.Stroke{Path: clip.UniformRRect(rect, radius).Path(gtx.Ops), Width: 1}.Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, strings.TrimRight(b.PlainText(), "\n"))
					lbl.Font.Typeface = "monospace"
					lbl.TextSize = unit.Sp(12)
					return lbl.Layout(gtx)
				})
			}),
		)
	})
}

func (r *Renderer) layoutQuote(gtx layout.Context, b preview.Block) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		bar := gtx.Dp(3)
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				paint.FillShape(gtx.Ops, colBlockquoteBg, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(2)).Op(gtx.Ops))
				paint.FillShape(gtx.Ops, colBlockquoteLine, clip.Rect{Max: image.Pt(bar, gtx.Constraints.Min.Y)}.Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Left: unit.Dp(15), Right: unit.Dp(8)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						lbl := r.spanLabel(b.Spans, 14, font.Normal)
						lbl.Color = colGray
						return lbl.Layout(gtx)
					})
			}),
		)
	})
}

// layoutTable draws one monospace line per row so cells line up as well as
// the " | " separators allow.
func (r *Renderer) layoutTable(gtx layout.Context, b preview.Block) layout.Dimensions {
	rows := splitLines(b.Spans)
	children := make([]layout.FlexChild, 0, len(rows))
	for i, row := range rows {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			weight := font.Normal
			if i == 0 {
				weight = font.Bold
			}
			lbl := r.spanLabel(row, 12, weight)
			lbl.Font.Typeface = "monospace"
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		}))
	}
	return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

// layoutSpans renders styled spans as a wrapped paragraph. A label carries a
// single style, so the paragraph takes the one most of its text uses.
func (r *Renderer) layoutSpans(gtx layout.Context, spans []preview.Span, size unit.Sp, weight font.Weight) layout.Dimensions {
	return r.spanLabel(spans, size, weight).Layout(gtx)
}

func (r *Renderer) spanLabel(spans []preview.Span, size unit.Sp, weight font.Weight) material.LabelStyle {
	var sb strings.Builder
	var total, bold, italic, code, link int
	for _, s := range spans {
		if s.NewLine {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(s.Text)
		if s.ListItem {
			sb.WriteByte(' ')
			continue
		}
		n := len(s.Text)
		total += n
		if s.Bold {
			bold += n
		}
		if s.Italic {
			italic += n
		}
		if s.Code {
			code += n
		}
		if s.Link != "" {
			link += n
		}
	}
	lbl := material.Body1(r.Theme, sb.String())
	lbl.TextSize = size
	lbl.Font.Weight = weight
	if total > 0 {
		if bold*2 > total {
			lbl.Font.Weight = font.Bold
		}
		if italic*2 > total {
			lbl.Font.Style = font.Italic
		}
		if code*2 > total {
			lbl.Font.Typeface = "monospace"
		}
		if link*2 > total {
			lbl.Color = colAccent
		}
	}
	return lbl
}

// splitLines breaks spans at NewLine markers.
func splitLines(spans []preview.Span) [][]preview.Span {
	var lines [][]preview.Span
	var cur []preview.Span
	for _, s := range spans {
		if s.NewLine {
			lines = append(lines, cur)
			cur = nil
			continue
		}
		cur = append(cur, s)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}
