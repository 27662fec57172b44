package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/justyntemme/vista/internal/classify"
	"github.com/justyntemme/vista/internal/debug"
)

// DefaultMaxText is the largest text file shown in the pane.
const DefaultMaxText = 5 << 20

// highlightLimit bounds the content handed to the highlighter.
const highlightLimit = 1 << 20

// TextKind selects how the pane lays out a text file.
type TextKind int

const (
	TextPlain TextKind = iota
	TextCode
	TextJSON
	TextMarkdown
	TextOrg
)

// TextDoc is a loaded text preview.
type TextDoc struct {
	Path        string
	Kind        TextKind
	Content     string
	Encoding    string
	Blocks      []Block // markdown and org
	Lines       []Line  // highlighted code; nil when highlighting is off
	Placeholder string  // shown instead of Content when set
	Note        string  // e.g. invalid JSON
	Size        int64
}

// TextOptions control LoadText.
type TextOptions struct {
	MaxSize   int64
	Highlight bool
	Style     string
}

// LoadText reads path for the text surface. Files above MaxSize get a
// placeholder instead of content.
func LoadText(path string, opts TextOptions) (*TextDoc, error) {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxText
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}
	doc := &TextDoc{Path: path, Size: info.Size()}
	if info.Size() > opts.MaxSize {
		doc.Placeholder = fmt.Sprintf("File too large to preview (> %s)", sizeLimit(opts.MaxSize))
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadFailed(path, err)
	}
	if looksBinary(data) {
		doc.Placeholder = "Binary content is not shown."
		return doc, nil
	}
	doc.Content, doc.Encoding = decodeText(data)

	switch classify.Ext(path) {
	case "md", "markdown":
		doc.Kind = TextMarkdown
		doc.Blocks = ParseMarkdown(doc.Content)
	case "org":
		doc.Kind = TextOrg
		doc.Blocks = ParseOrgMode(doc.Content)
	case "json":
		doc.Kind = TextJSON
		var v any
		if err := json.Unmarshal([]byte(doc.Content), &v); err != nil {
			doc.Note = "Invalid JSON: " + err.Error()
		} else if pretty, err := json.MarshalIndent(v, "", "  "); err == nil {
			doc.Content = string(pretty)
		}
	default:
		if hasLexer(path) {
			doc.Kind = TextCode
		}
	}

	if opts.Highlight && (doc.Kind == TextCode || doc.Kind == TextJSON) && len(doc.Content) <= highlightLimit {
		doc.Lines = Highlight(path, doc.Content, opts.Style)
	}
	debug.Log(debug.PREVIEW, "LoadText %s: kind=%d enc=%s bytes=%d", path, doc.Kind, doc.Encoding, len(data))
	return doc, nil
}

func sizeLimit(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%d MB", n>>20)
	}
	return humanize.IBytes(uint64(n))
}

// looksBinary reports NUL bytes in the first 8 KiB of content that does
// not carry a UTF-16 byte order mark.
func looksBinary(data []byte) bool {
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		return false
	}
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) >= 0
}

// decodeText converts data to UTF-8: byte order marks first, then valid
// UTF-8, then GB18030 for legacy Chinese text, then Windows-1252.
func decodeText(data []byte) (string, string) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), "UTF-8"
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		if s, ok := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data); ok {
			return s, "UTF-16LE"
		}
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		if s, ok := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data); ok {
			return s, "UTF-16BE"
		}
	}
	if utf8.Valid(data) {
		return string(data), "UTF-8"
	}
	if s, ok := decodeWith(simplifiedchinese.GB18030, data); ok && !strings.ContainsRune(s, utf8.RuneError) {
		return s, "GB18030"
	}
	s, _ := decodeWith(charmap.Windows1252, data)
	return s, "Windows-1252"
}

func decodeWith(enc encoding.Encoding, data []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data), false
	}
	return string(out), true
}
