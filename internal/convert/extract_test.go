package convert

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(body))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func TestExtractTextDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.docx")
	writeZip(t, path, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml": `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Quarterly</w:t></w:r><w:r><w:t xml:space="preserve"> report</w:t></w:r></w:p>
<w:p><w:r><w:t>Second   paragraph</w:t></w:r></w:p>
</w:body></w:document>`,
	})
	got, err := ExtractText(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Quarterly report\nSecond paragraph"
	if got != want {
		t.Errorf("ExtractText = %q, want %q", got, want)
	}
}

func TestExtractTextODF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.odt")
	writeZip(t, path, map[string]string{
		"content.xml": `<office:document-content xmlns:office="o" xmlns:text="t"><office:body>
<text:h>Title</text:h><text:p>Body text</text:p></office:body></office:document-content>`,
	})
	got, err := ExtractText(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Title\nBody text" {
		t.Errorf("ExtractText = %q", got)
	}
}

func TestExtractTextBinaryFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.doc")
	data := []byte{0xd0, 0xcf, 0x11, 0xe0, 'a', 'b', 0x00}
	data = append(data, []byte("Hello legacy world")...)
	data = append(data, 0x01, 0x02, 'x', 'y', 'z', 0x00)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ExtractText(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello legacy world" {
		t.Errorf("ExtractText = %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo", 3); got != "hél…" {
		t.Errorf("truncateRunes = %q", got)
	}
	if got := truncateRunes("abc", 10); got != "abc" {
		t.Errorf("truncateRunes = %q", got)
	}
	long := strings.Repeat("a", MaxExcerpt+10)
	if n := len([]rune(truncateRunes(long, MaxExcerpt))); n != MaxExcerpt+1 {
		t.Errorf("len = %d", n)
	}
}
