package pdf

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const infoOutput = `Title:           Report
Producer:        LibreOffice 7.6
Pages:           3
Encrypted:       no
Page size:       595.276 x 841.89 pts (A4)
Page rot:        0
`

const pageSizesOutput = `Page    1 size: 595.276 x 841.89 pts (A4)
Page    1 rot:  0
Page    2 size: 841.89 x 595.276 pts (A4)
Page    3 size: 612 x 792 pts (letter)
`

func TestParseInfo(t *testing.T) {
	pages, size := parseInfo([]byte(infoOutput))
	if pages != 3 {
		t.Errorf("pages = %d", pages)
	}
	if size != A4 {
		t.Errorf("size = %+v", size)
	}
	if _, size := parseInfo([]byte("Pages: 1\n")); size != A4 {
		t.Errorf("missing size should default to A4, got %+v", size)
	}
}

func TestParsePageSizes(t *testing.T) {
	sizes := parsePageSizes([]byte(pageSizesOutput))
	if len(sizes) != 3 {
		t.Fatalf("got %d sizes", len(sizes))
	}
	if sizes[2] != (Size{W: 841.89, H: 595.276}) || sizes[3] != (Size{W: 612, H: 792}) {
		t.Errorf("sizes = %+v", sizes)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"612 x 792 pts (letter)", true},
		{"612x792", false},
		{"0 x 792 pts", false},
		{"", false},
	}
	for _, tt := range tests {
		if _, ok := parseSize(tt.in); ok != tt.ok {
			t.Errorf("parseSize(%q) ok = %v", tt.in, ok)
		}
	}
}

func TestNewPopplerMissingTools(t *testing.T) {
	_, err := newPoppler(func(string) (string, error) { return "", os.ErrNotExist })
	if !errors.Is(err, ErrNoRenderer) {
		t.Errorf("err = %v, want ErrNoRenderer", err)
	}
}

func TestPopplerLoadAndRender(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	img.Set(1, 1, color.Black)
	pngPath := filepath.Join(dir, "page.png")
	f, _ := os.Create(pngPath)
	png.Encode(f, img)
	f.Close()

	infoTxt := filepath.Join(dir, "info.txt")
	sizesTxt := filepath.Join(dir, "sizes.txt")
	os.WriteFile(infoTxt, []byte(infoOutput), 0o644)
	os.WriteFile(sizesTxt, []byte(pageSizesOutput), 0o644)

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
			t.Fatal(err)
		}
		return p
	}
	tools := map[string]string{
		"pdfinfo":  write("pdfinfo", `if [ "$1" = "-f" ]; then cat `+sizesTxt+`; else cat `+infoTxt+`; fi`),
		"pdftoppm": write("pdftoppm", "cat "+pngPath),
	}
	p, err := newPoppler(func(name string) (string, error) { return tools[name], nil })
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := p.Render(ctx, 0, image.Pt(10, 10)); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("render before load: %v", err)
	}
	if err := p.Load(ctx, "/docs/report.pdf"); err != nil {
		t.Fatal(err)
	}
	if p.PageCount() != 3 {
		t.Errorf("PageCount = %d", p.PageCount())
	}
	if s, _ := p.PagePointSize(2); s != (Size{W: 612, H: 792}) {
		t.Errorf("page 3 size = %+v", s)
	}
	if _, err := p.PagePointSize(3); !errors.Is(err, ErrPageRange) {
		t.Errorf("PagePointSize(3) err = %v", err)
	}

	got, err := p.Render(ctx, 0, image.Pt(4, 6))
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 6 {
		t.Errorf("bounds = %v", got.Bounds())
	}
	if _, err := p.Render(ctx, 5, image.Pt(4, 6)); !errors.Is(err, ErrPageRange) {
		t.Errorf("render out of range: %v", err)
	}

	p.Close()
	if p.PageCount() != 0 {
		t.Error("Close should drop the document")
	}
}
