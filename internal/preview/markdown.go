package preview

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	goldtext "github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ParseMarkdown parses markdown content into blocks for rendering.
func ParseMarkdown(content string) []Block {
	source := []byte(content)
	doc := markdown.Parser().Parse(goldtext.NewReader(source))

	var blocks []Block
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: n.Level,
				Spans: inlineSpans(n, source, false, false, 0),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			blocks = append(blocks, Block{
				Kind:  BlockParagraph,
				Spans: inlineSpans(n, source, false, false, 0),
			})
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			blocks = append(blocks, Block{
				Kind:     BlockCode,
				Language: string(n.Language(source)),
				Spans:    []Span{{Text: linesText(n, source), CodeBlock: true}},
			})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			blocks = append(blocks, Block{
				Kind:  BlockCode,
				Spans: []Span{{Text: linesText(n, source), CodeBlock: true}},
			})
			return ast.WalkSkipChildren, nil

		case *ast.List:
			blocks = append(blocks, listBlocks(n, source, 0)...)
			return ast.WalkSkipChildren, nil

		case *ast.Blockquote:
			block := Block{Kind: BlockQuote}
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				if len(block.Spans) > 0 {
					block.Spans = append(block.Spans, Span{NewLine: true})
				}
				spans := inlineSpans(child, source, false, false, 0)
				for i := range spans {
					spans[i].Blockquote = true
				}
				block.Spans = append(block.Spans, spans...)
			}
			blocks = append(blocks, block)
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			blocks = append(blocks, Block{Kind: BlockRule})
			return ast.WalkSkipChildren, nil

		case *extast.Table:
			blocks = append(blocks, tableBlock(n, source))
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return blocks
}

func linesText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.String()
}

// inlineSpans extracts styled spans from inline content.
func inlineSpans(node ast.Node, source []byte, bold, italic bool, listIndent int) []Span {
	var spans []Span

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			if text := string(n.Segment.Value(source)); text != "" {
				spans = append(spans, Span{Text: text, Bold: bold, Italic: italic, ListIndent: listIndent})
			}
			if n.HardLineBreak() || n.SoftLineBreak() {
				spans = append(spans, Span{NewLine: true})
			}

		case *ast.String:
			spans = append(spans, Span{Text: string(n.Value), Bold: bold, Italic: italic, ListIndent: listIndent})

		case *ast.Emphasis:
			childBold, childItalic := bold, italic
			if n.Level == 1 {
				childItalic = true
			} else {
				childBold = true
			}
			spans = append(spans, inlineSpans(n, source, childBold, childItalic, listIndent)...)

		case *ast.CodeSpan:
			var code strings.Builder
			for seg := n.FirstChild(); seg != nil; seg = seg.NextSibling() {
				if t, ok := seg.(*ast.Text); ok {
					code.Write(t.Segment.Value(source))
				}
			}
			spans = append(spans, Span{Text: code.String(), Code: true, ListIndent: listIndent})

		case *ast.Link:
			linkSpans := inlineSpans(n, source, bold, italic, listIndent)
			for i := range linkSpans {
				linkSpans[i].Link = string(n.Destination)
			}
			spans = append(spans, linkSpans...)

		case *ast.AutoLink:
			url := string(n.URL(source))
			spans = append(spans, Span{Text: url, Link: url, ListIndent: listIndent})

		case *ast.Image:
			alt := string(n.Text(source))
			if alt == "" {
				alt = "[image]"
			}
			spans = append(spans, Span{Text: alt, Italic: true, ListIndent: listIndent})

		case *extast.Strikethrough:
			struck := inlineSpans(n, source, bold, italic, listIndent)
			for i := range struck {
				struck[i].Strike = true
			}
			spans = append(spans, struck...)

		case *extast.TaskCheckBox:
			box := "[ ] "
			if n.IsChecked {
				box = "[x] "
			}
			spans = append(spans, Span{Text: box, ListItem: true, ListIndent: listIndent})

		case *ast.RawHTML:
			// Inline HTML tags are dropped.

		default:
			spans = append(spans, inlineSpans(child, source, bold, italic, listIndent)...)
		}
	}

	return spans
}

// listBlocks emits one block per item; nested lists follow their parent
// item with Level increased.
func listBlocks(list *ast.List, source []byte, level int) []Block {
	var blocks []Block
	num := list.Start
	if num == 0 {
		num = 1
	}
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if list.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		block := Block{Kind: BlockList, Level: level, Spans: []Span{{Text: marker, ListItem: true, ListIndent: level}}}
		var nested []Block
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listBlocks(sub, source, level+1)...)
				continue
			}
			if len(block.Spans) > 1 {
				block.Spans = append(block.Spans, Span{NewLine: true})
			}
			block.Spans = append(block.Spans, inlineSpans(c, source, false, false, level+1)...)
		}
		blocks = append(blocks, block)
		blocks = append(blocks, nested...)
	}
	return blocks
}

// tableBlock lays a GFM table out as rows of cells separated by " | ".
func tableBlock(t *extast.Table, source []byte) Block {
	block := Block{Kind: BlockTable}
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		if len(block.Spans) > 0 {
			block.Spans = append(block.Spans, Span{NewLine: true})
		}
		_, header := row.(*extast.TableHeader)
		first := true
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if !first {
				block.Spans = append(block.Spans, Span{Text: " | "})
			}
			first = false
			cellSpans := inlineSpans(cell, source, header, false, 0)
			block.Spans = append(block.Spans, cellSpans...)
		}
	}
	return block
}
