package preview

// Span is a styled run of rich text.
type Span struct {
	Text       string
	Bold       bool
	Italic     bool
	Code       bool
	Strike     bool
	Link       string // URL if this is a link
	ListItem   bool   // bullet or number marker
	ListIndent int
	Blockquote bool
	CodeBlock  bool
	NewLine    bool // Force newline after this span
}

// BlockKind is the layout a Block gets.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockCode      BlockKind = "code"
	BlockList      BlockKind = "list"
	BlockQuote     BlockKind = "quote"
	BlockRule      BlockKind = "hr"
	BlockTable     BlockKind = "table"
)

// Block is one block of rich content: markdown, org-mode and converted
// office HTML all parse into blocks so the pane renders them one way.
type Block struct {
	Kind     BlockKind
	Spans    []Span
	Level    int    // heading level (1-6) or list nesting
	Language string // code blocks
}

// PlainText joins the span text of a block.
func (b Block) PlainText() string {
	n := 0
	for _, s := range b.Spans {
		n += len(s.Text) + 1
	}
	buf := make([]byte, 0, n)
	for _, s := range b.Spans {
		if s.NewLine {
			buf = append(buf, '\n')
			continue
		}
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
