package preview

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// ParseHTML turns a converted office document into blocks. It keeps the
// document's structure (headings, paragraphs, lists, tables, preformatted
// text) and drops styling, scripts and embedded objects.
func ParseHTML(r io.Reader) ([]Block, error) {
	cr, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(cr)
	if err != nil {
		return nil, err
	}
	w := &htmlWalker{}
	w.walk(doc)
	w.flush()
	return w.blocks, nil
}

type htmlWalker struct {
	blocks []Block
	cur    *Block
	bold   int
	italic int
	strike int
	link   string
	list   []bool // ordered flag per nesting level
	counts []int
	pre    bool
	row    []string
	cell   *strings.Builder
	table  *Block
}

func (w *htmlWalker) start(kind BlockKind, level int) {
	w.flush()
	w.cur = &Block{Kind: kind, Level: level}
}

func (w *htmlWalker) flush() {
	if w.cur == nil {
		return
	}
	if spans := w.cur.Spans; len(spans) > 0 && w.cur.Kind != BlockCode {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
		spans[len(spans)-1].Text = strings.TrimRight(spans[len(spans)-1].Text, " ")
	}
	if strings.TrimSpace(w.cur.PlainText()) != "" || w.cur.Kind == BlockRule {
		w.blocks = append(w.blocks, *w.cur)
	}
	w.cur = nil
}

func (w *htmlWalker) text(s string) {
	if w.cell != nil {
		w.cell.WriteString(s)
		return
	}
	if !w.pre {
		s = collapseSpace(s)
		if s == "" {
			return
		}
		if s[0] == ' ' && (w.cur == nil || endsWithSpace(w.cur.Spans)) {
			s = s[1:]
			if s == "" {
				return
			}
		}
	}
	if w.cur == nil {
		w.cur = &Block{Kind: BlockParagraph}
	}
	w.cur.Spans = append(w.cur.Spans, Span{
		Text:      s,
		Bold:      w.bold > 0,
		Italic:    w.italic > 0,
		Strike:    w.strike > 0,
		Link:      w.link,
		CodeBlock: w.pre,
	})
}

func (w *htmlWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		return
	}

	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Object, atom.Iframe, atom.Noscript:
		return
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		w.start(BlockHeading, int(n.Data[1]-'0'))
		w.children(n)
		w.flush()
		return
	case atom.P, atom.Div:
		if w.cell != nil {
			w.children(n)
			w.cell.WriteByte(' ')
			return
		}
		if w.cur != nil && w.cur.Kind == BlockList {
			// <li><p>text</p></li> stays one item.
			if hasText(w.cur.Spans[1:]) {
				w.cur.Spans = append(w.cur.Spans, Span{NewLine: true})
			}
			w.children(n)
			return
		}
		w.start(BlockParagraph, len(w.list))
		w.children(n)
		w.flush()
		return
	case atom.Pre:
		w.start(BlockCode, 0)
		w.pre = true
		w.children(n)
		w.pre = false
		w.flush()
		return
	case atom.Blockquote:
		w.start(BlockQuote, 0)
		w.children(n)
		w.flush()
		return
	case atom.Hr:
		w.start(BlockRule, 0)
		w.flush()
		return
	case atom.Br:
		if w.cell != nil {
			w.cell.WriteByte(' ')
		} else if w.cur != nil {
			w.cur.Spans = append(w.cur.Spans, Span{NewLine: true})
		}
		return
	case atom.Ul, atom.Ol:
		w.flush()
		w.list = append(w.list, n.DataAtom == atom.Ol)
		w.counts = append(w.counts, 0)
		w.children(n)
		w.flush()
		w.list = w.list[:len(w.list)-1]
		w.counts = w.counts[:len(w.counts)-1]
		return
	case atom.Li:
		depth := len(w.list) - 1
		marker := "• "
		if depth >= 0 && w.list[depth] {
			w.counts[depth]++
			marker = strconv.Itoa(w.counts[depth]) + ". "
		}
		w.start(BlockList, max(depth, 0))
		w.cur.Spans = append(w.cur.Spans, Span{Text: marker, ListItem: true, ListIndent: max(depth, 0)})
		w.children(n)
		w.flush()
		return
	case atom.Table:
		w.flush()
		outer := w.table
		w.table = &Block{Kind: BlockTable}
		w.children(n)
		if len(w.table.Spans) > 0 {
			w.blocks = append(w.blocks, *w.table)
		}
		w.table = outer
		return
	case atom.Tr:
		if w.table == nil {
			w.children(n)
			return
		}
		w.row = w.row[:0]
		w.children(n)
		if len(w.row) > 0 {
			if len(w.table.Spans) > 0 {
				w.table.Spans = append(w.table.Spans, Span{NewLine: true})
			}
			w.table.Spans = append(w.table.Spans, Span{Text: strings.Join(w.row, " | ")})
		}
		return
	case atom.Td, atom.Th:
		if w.table == nil {
			w.children(n)
			return
		}
		var b strings.Builder
		outer := w.cell
		w.cell = &b
		w.children(n)
		w.cell = outer
		w.row = append(w.row, collapseSpace(strings.TrimSpace(b.String())))
		return
	case atom.B, atom.Strong:
		w.bold++
		w.children(n)
		w.bold--
		return
	case atom.I, atom.Em:
		w.italic++
		w.children(n)
		w.italic--
		return
	case atom.S, atom.Strike, atom.Del:
		w.strike++
		w.children(n)
		w.strike--
		return
	case atom.A:
		outer := w.link
		for _, a := range n.Attr {
			if a.Key == "href" {
				w.link = a.Val
			}
		}
		w.children(n)
		w.link = outer
		return
	case atom.Img:
		for _, a := range n.Attr {
			if a.Key == "alt" && a.Val != "" {
				w.text("[" + a.Val + "]")
			}
		}
		return
	}
	w.children(n)
}

func (w *htmlWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	lead := isSpace(s[0])
	trail := isSpace(s[len(s)-1])
	f := strings.Fields(s)
	if len(f) == 0 {
		return " "
	}
	out := strings.Join(f, " ")
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

func endsWithSpace(spans []Span) bool {
	if len(spans) == 0 {
		return true
	}
	last := spans[len(spans)-1]
	return last.NewLine || strings.HasSuffix(last.Text, " ")
}

func hasText(spans []Span) bool {
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			return true
		}
	}
	return false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

