package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func normalize(s string) string { return strings.Join(strings.Fields(s), " ") }

func TestParseMarkdown(t *testing.T) {
	src := "# Title\n\nSome **bold** and *it* text.\n\n" +
		"1. one\n2. two\n   - nested\n\n" +
		"```go\nx := 1\n```\n\n" +
		"| a | b |\n|---|---|\n| 1 | 2 |\n\n" +
		"---\n"
	blocks := ParseMarkdown(src)

	want := []struct {
		kind  BlockKind
		level int
		text  string
	}{
		{BlockHeading, 1, "Title"},
		{BlockParagraph, 0, "Some bold and it text."},
		{BlockList, 0, "1. one"},
		{BlockList, 0, "2. two"},
		{BlockList, 1, "• nested"},
		{BlockCode, 0, "x := 1"},
		{BlockTable, 0, "a | b 1 | 2"},
		{BlockRule, 0, ""},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i, w := range want {
		b := blocks[i]
		if b.Kind != w.kind || b.Level != w.level || normalize(b.PlainText()) != w.text {
			t.Errorf("block %d = %s/%d %q, want %s/%d %q", i, b.Kind, b.Level, b.PlainText(), w.kind, w.level, w.text)
		}
	}
	if blocks[5].Language != "go" {
		t.Errorf("code language = %q", blocks[5].Language)
	}

	var bold, italic bool
	for _, s := range blocks[1].Spans {
		bold = bold || (s.Bold && s.Text == "bold")
		italic = italic || (s.Italic && s.Text == "it")
	}
	if !bold || !italic {
		t.Errorf("emphasis lost: %+v", blocks[1].Spans)
	}
}

func TestParseHTML(t *testing.T) {
	src := `<html><head><title>t</title><style>p{}</style></head><body>
<h2>Head</h2>
<p>Hello <b>bold</b> world</p>
<ul><li>one</li><li><p>two</p></li></ul>
<ol><li>a</li><li>b</li></ol>
<table><tr><th>x</th><th>y</th></tr><tr><td>1</td><td>2</td></tr></table>
<script>bad()</script>
<hr>
</body></html>`
	blocks, err := ParseHTML(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		kind BlockKind
		text string
	}{
		{BlockHeading, "Head"},
		{BlockParagraph, "Hello bold world"},
		{BlockList, "• one"},
		{BlockList, "• two"},
		{BlockList, "1. a"},
		{BlockList, "2. b"},
		{BlockTable, "x | y\n1 | 2"},
		{BlockRule, ""},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks: %+v", len(blocks), blocks)
	}
	for i, w := range want {
		if blocks[i].Kind != w.kind || blocks[i].PlainText() != w.text {
			t.Errorf("block %d = %s %q, want %s %q", i, blocks[i].Kind, blocks[i].PlainText(), w.kind, w.text)
		}
	}
	if blocks[0].Level != 2 {
		t.Errorf("heading level = %d", blocks[0].Level)
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
		enc  string
	}{
		{"utf8", []byte("héllo"), "héllo", "UTF-8"},
		{"utf8 bom", []byte("\xEF\xBB\xBFhi"), "hi", "UTF-8"},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", "UTF-16LE"},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", "UTF-16BE"},
		{"gb18030", []byte{0xD6, 0xD0, 0xCE, 0xC4}, "中文", "GB18030"},
		{"windows-1252", []byte("caf\xe9"), "café", "Windows-1252"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc := decodeText(tt.in)
			if got != tt.want || enc != tt.enc {
				t.Errorf("decodeText = %q %s, want %q %s", got, enc, tt.want, tt.enc)
			}
		})
	}
}

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	t.Run("too large", func(t *testing.T) {
		doc, err := LoadText(write("big.txt", strings.Repeat("x", 64)), TextOptions{MaxSize: 10})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(doc.Placeholder, "File too large to preview") || doc.Content != "" {
			t.Errorf("doc = %+v", doc)
		}
		if got := sizeLimit(DefaultMaxText); got != "5 MB" {
			t.Errorf("sizeLimit = %q", got)
		}
	})

	t.Run("binary", func(t *testing.T) {
		doc, err := LoadText(write("bin.txt", "a\x00b"), TextOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if doc.Placeholder == "" {
			t.Error("binary content shown")
		}
	})

	t.Run("json", func(t *testing.T) {
		doc, err := LoadText(write("a.json", `{"a":1}`), TextOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if doc.Kind != TextJSON || doc.Content != "{\n  \"a\": 1\n}" {
			t.Errorf("doc = %d %q", doc.Kind, doc.Content)
		}
		bad, _ := LoadText(write("b.json", `{`), TextOptions{})
		if !strings.HasPrefix(bad.Note, "Invalid JSON") || bad.Content != "{" {
			t.Errorf("bad json = %q %q", bad.Note, bad.Content)
		}
	})

	t.Run("code", func(t *testing.T) {
		doc, err := LoadText(write("main.go", "package main\n"), TextOptions{Highlight: true})
		if err != nil {
			t.Fatal(err)
		}
		if doc.Kind != TextCode || len(doc.Lines) == 0 {
			t.Fatalf("doc = %d, %d lines", doc.Kind, len(doc.Lines))
		}
		var b strings.Builder
		for _, tok := range doc.Lines[0] {
			b.WriteString(tok.Text)
		}
		if b.String() != "package main" {
			t.Errorf("line 0 = %q", b.String())
		}
		plain, _ := LoadText(write("other.go", "package other\n"), TextOptions{})
		if plain.Lines != nil {
			t.Error("highlighted with highlighting off")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadText(filepath.Join(dir, "nope.txt"), TextOptions{}); err == nil {
			t.Error("no error for missing file")
		}
	})
}
