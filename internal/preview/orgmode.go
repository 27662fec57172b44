package preview

import (
	"strconv"
	"strings"

	"github.com/justyntemme/organelle/ast"
	"github.com/justyntemme/organelle/lexer"
	"github.com/justyntemme/organelle/parser"
)

// ParseOrgMode parses org-mode content into the same blocks as markdown.
// A document the parser rejects renders as a single error paragraph.
func ParseOrgMode(content string) []Block {
	p := parser.New(lexer.New(content))
	doc := p.ParseDocument()

	if errs := p.Errors(); len(errs) > 0 {
		return []Block{{
			Kind:  BlockParagraph,
			Spans: []Span{{Text: "Parse error: " + strings.Join(errs, "; ")}},
		}}
	}

	var blocks []Block
	for _, node := range doc.Children {
		blocks = append(blocks, orgBlocks(node)...)
	}
	return blocks
}

func orgBlocks(node ast.Node) []Block {
	switch n := node.(type) {
	case *ast.Headline:
		return orgHeadline(n)
	case *ast.Paragraph:
		return []Block{orgParagraph(n)}
	case *ast.Block:
		return []Block{orgBlock(n)}
	case *ast.List:
		return orgList(n)
	case *ast.Keyword:
		return []Block{{
			Kind: BlockParagraph,
			Spans: []Span{
				{Text: titleCase(n.Key) + ": ", Bold: true},
				{Text: n.Value, Italic: true},
			},
		}}
	case *ast.HorizontalRule:
		return []Block{{Kind: BlockRule}}
	case *ast.Table:
		return []Block{orgTable(n)}
	}
	// Comments and drawers are not shown.
	return nil
}

// titleCase turns TITLE into Title.
func titleCase(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + strings.ToLower(key[1:])
}

func orgHeadline(h *ast.Headline) []Block {
	var spans []Span
	if h.Keyword != "" {
		spans = append(spans, Span{Text: h.Keyword + " ", Bold: true})
	}
	if h.Priority != "" {
		spans = append(spans, Span{Text: "[#" + h.Priority + "] ", Italic: true})
	}
	spans = append(spans, Span{Text: h.Title})
	if len(h.Tags) > 0 {
		spans = append(spans, Span{Text: " :" + strings.Join(h.Tags, ":") + ":", Italic: true, Code: true})
	}

	level := min(max(h.Level, 1), 6)
	blocks := []Block{{Kind: BlockHeading, Level: level, Spans: spans}}
	for _, child := range h.Children {
		blocks = append(blocks, orgBlocks(child)...)
	}
	return blocks
}

func orgParagraph(p *ast.Paragraph) Block {
	if len(p.Inline) == 0 {
		return Block{Kind: BlockParagraph, Spans: []Span{{Text: p.Content}}}
	}
	var spans []Span
	for _, elem := range p.Inline {
		spans = append(spans, orgInline(elem, false, false)...)
	}
	return Block{Kind: BlockParagraph, Spans: spans}
}

func orgInline(elem ast.InlineElement, bold, italic bool) []Span {
	nested := func(b, i bool, fallback Span) []Span {
		if len(elem.Children) == 0 {
			return []Span{fallback}
		}
		var spans []Span
		for _, child := range elem.Children {
			spans = append(spans, orgInline(child, b, i)...)
		}
		return spans
	}

	switch elem.Type {
	case ast.InlineText:
		if elem.Content == "" {
			return nil
		}
		return []Span{{Text: elem.Content, Bold: bold, Italic: italic}}
	case ast.InlineBold:
		return nested(true, italic, Span{Text: elem.Content, Bold: true, Italic: italic})
	case ast.InlineItalic, ast.InlineUnderline:
		return nested(bold, true, Span{Text: elem.Content, Bold: bold, Italic: true})
	case ast.InlineCode, ast.InlineVerbatim:
		return []Span{{Text: elem.Content, Code: true}}
	case ast.InlineStrikethrough:
		spans := nested(bold, italic, Span{Text: elem.Content})
		for i := range spans {
			spans[i].Strike = true
		}
		return spans
	case ast.InlineLink:
		text := elem.Content
		if text == "" {
			text = elem.URL
		}
		return []Span{{Text: text, Link: elem.URL}}
	}
	return nil
}

func orgBlock(b *ast.Block) Block {
	switch strings.ToUpper(b.Type) {
	case "SRC":
		return Block{Kind: BlockCode, Language: b.Language, Spans: []Span{{Text: b.Content, CodeBlock: true}}}
	case "EXAMPLE":
		return Block{Kind: BlockCode, Spans: []Span{{Text: b.Content, CodeBlock: true}}}
	case "QUOTE":
		return Block{Kind: BlockQuote, Spans: []Span{{Text: b.Content, Blockquote: true}}}
	}
	// VERSE, CENTER, EXPORT and the rest show as plain text.
	return Block{Kind: BlockParagraph, Spans: []Span{{Text: b.Content}}}
}

func orgList(l *ast.List) []Block {
	var blocks []Block
	for i, item := range l.Items {
		marker := "• "
		if l.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		switch item.Checkbox {
		case ast.CheckboxUnchecked:
			marker += "[ ] "
		case ast.CheckboxChecked:
			marker += "[X] "
		case ast.CheckboxPartial:
			marker += "[-] "
		}

		blocks = append(blocks, Block{
			Kind:  BlockList,
			Level: item.Indent,
			Spans: []Span{
				{Text: marker, ListItem: true, ListIndent: item.Indent},
				{Text: item.Content, ListIndent: item.Indent},
			},
		})

		for _, child := range item.Children {
			childBlocks := orgBlocks(child)
			for i := range childBlocks {
				childBlocks[i].Level++
				for j := range childBlocks[i].Spans {
					childBlocks[i].Spans[j].ListIndent++
				}
			}
			blocks = append(blocks, childBlocks...)
		}
	}
	return blocks
}

func orgTable(t *ast.Table) Block {
	block := Block{Kind: BlockTable}
	for _, row := range t.Rows {
		if row.Separator {
			continue
		}
		if len(block.Spans) > 0 {
			block.Spans = append(block.Spans, Span{NewLine: true})
		}
		block.Spans = append(block.Spans, Span{Text: strings.Join(row.Cells, " | ")})
	}
	return block
}
