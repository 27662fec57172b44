package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"/a/photo.JPG", Image},
		{"/a/photo.jpeg", Image},
		{"scan.TIFF", Image},
		{"song.mp3", Audio},
		{"song.Opus", Audio},
		{"clip.mkv", Video},
		{"clip.3gp", Video},
		{"paper.pdf", Pdf},
		{"report.docx", Office},
		{"sheet.XLSX", Office},
		{"deck.odp", Office},
		{"notes.rtf", Office},
		{"main.go", Text},
		{"README.md", Text},
		{"CMakeLists.cmake", Text},
		{"archive.tar.gz", Unknown},
		{"Makefile", Unknown},
		{".bashrc", Unknown},
		{"trailingdot.", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	paths := []string{"a.png", "b.mp4", "c.docx", "d.txt", "e.bin", "f.pdf"}
	first := make([]Category, len(paths))
	for i, p := range paths {
		first[i] = Classify(p)
	}
	// Reverse order, repeated: results must not depend on call history.
	for round := 0; round < 3; round++ {
		for i := len(paths) - 1; i >= 0; i-- {
			if got := Classify(paths[i]); got != first[i] {
				t.Fatalf("round %d: Classify(%q) = %v, first call gave %v", round, paths[i], got, first[i])
			}
		}
	}
}

func TestClassifyPath(t *testing.T) {
	dir := t.TempDir()
	// A directory whose name looks like an image is still a directory.
	odd := filepath.Join(dir, "holiday.jpg")
	if err := os.Mkdir(odd, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := ClassifyPath(odd); got != Directory {
		t.Errorf("ClassifyPath(dir) = %v, want Directory", got)
	}
	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ClassifyPath(file); got != Text {
		t.Errorf("ClassifyPath(file) = %v, want Text", got)
	}
	if got := ClassifyPath(filepath.Join(dir, "gone.mp3")); got != Audio {
		t.Errorf("ClassifyPath(missing) = %v, want Audio", got)
	}
}

func TestCategoryString(t *testing.T) {
	if Pdf.String() != "PDF" || Category(99).String() != "Unknown" {
		t.Errorf("unexpected names: %s %s", Pdf, Category(99))
	}
	if !Audio.IsMedia() || Image.IsMedia() {
		t.Error("IsMedia mismatch")
	}
}
