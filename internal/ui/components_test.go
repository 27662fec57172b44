package ui

import (
	"testing"
	"time"

	"github.com/justyntemme/vista/internal/fs"
	"github.com/justyntemme/vista/internal/view"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-1, ""},
		{0, "0 B"},
		{1536, "1.5 kB"},
		{5_000_000, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.in); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	if got := typeLabel(&UIEntry{Name: "docs", Path: "/x/docs", IsDir: true}); got != "Folder" {
		t.Errorf("dir label = %q", got)
	}
	if got := typeLabel(&UIEntry{Name: "notes.txt", Path: "/x/notes.txt"}); got != "TXT File" {
		t.Errorf("file label = %q", got)
	}
	if got := typeLabel(&UIEntry{Name: "Makefile", Path: "/x/Makefile"}); got != "File" {
		t.Errorf("no-extension label = %q", got)
	}
}

func TestTruncateFilename(t *testing.T) {
	tests := []struct {
		name  string
		cells int
		want  string
	}{
		{"a.txt", 10, "a.txt"},
		{"abcdefghijkl.txt", 10, "abcde….txt"},
		{"abcdefghijkl", 6, "abcde…"},
		{".bashrc_long_name", 6, ".bash…"},
		{"abc.txt", 3, "ab…"},
	}
	for _, tt := range tests {
		if got := truncateFilename(tt.name, tt.cells); got != tt.want {
			t.Errorf("truncateFilename(%q, %d) = %q, want %q", tt.name, tt.cells, got, tt.want)
		}
	}
}

func TestVisibleColumns(t *testing.T) {
	cols := visibleColumns(view.Columns{Size: true, Modified: true})
	var got []view.SortColumn
	for _, c := range cols {
		got = append(got, c.sort)
	}
	want := []view.SortColumn{view.SortByName, view.SortByDate, view.SortBySize}
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("columns = %v, want %v", got, want)
		}
	}
	if only := visibleColumns(view.Columns{}); len(only) != 1 || only[0].sort != view.SortByName {
		t.Errorf("bare columns = %+v, want just Name", only)
	}
}

func TestNextIndex(t *testing.T) {
	tests := []struct {
		cur, n int
		down   bool
		want   int
	}{
		{-1, 5, true, 0},
		{-1, 5, false, 4},
		{0, 5, false, 0},
		{4, 5, true, 4},
		{2, 5, true, 3},
		{2, 5, false, 1},
		{9, 5, true, 0},
	}
	for _, tt := range tests {
		if got := nextIndex(tt.cur, tt.n, tt.down); got != tt.want {
			t.Errorf("nextIndex(%d, %d, %v) = %d, want %d", tt.cur, tt.n, tt.down, got, tt.want)
		}
	}
}

func TestOpenEvent(t *testing.T) {
	if ev := openEvent(&UIEntry{Path: "/x/dir", IsDir: true}); ev.Action != ActionNavigate || ev.Path != "/x/dir" {
		t.Errorf("dir open = %+v", ev)
	}
	if ev := openEvent(&UIEntry{Path: "/x/a.pdf"}); ev.Action != ActionOpen || ev.Path != "/x/a.pdf" {
		t.Errorf("file open = %+v", ev)
	}
}

func TestResizeHandleApply(t *testing.T) {
	h := ResizeHandle{Horizontal: true, Inverted: true, MinSize: 100, MaxSize: 400}
	tests := []struct {
		size, delta, want int
	}{
		{200, -50, 250}, // dragging left widens a right-hand pane
		{200, 50, 150},
		{200, 500, 100},
		{200, -500, 400},
	}
	for _, tt := range tests {
		if got := h.apply(tt.size, tt.delta); got != tt.want {
			t.Errorf("apply(%d, %d) = %d, want %d", tt.size, tt.delta, got, tt.want)
		}
	}
}

func TestNewEntries(t *testing.T) {
	mod := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := []view.Row{
		{Entry: fs.Entry{Name: "src", Path: "/p/src", IsDir: true, ModTime: mod}, Depth: 0, Expanded: true},
		{Entry: fs.Entry{Name: "main.go", Path: "/p/src/main.go", Size: 42, Ext: "go"}, Depth: 1},
	}
	got := NewEntries(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].IsDir || !got[0].Expanded || !got[0].ModTime.Equal(mod) {
		t.Errorf("dir row = %+v", got[0])
	}
	if got[1].Depth != 1 || got[1].Size != 42 || got[1].Ext != "go" || got[1].Path != "/p/src/main.go" {
		t.Errorf("file row = %+v", got[1])
	}
}

func TestStateSelected(t *testing.T) {
	s := State{Entries: []UIEntry{{Name: "a"}, {Name: "b"}}, SelectedIndex: 1}
	if sel := s.Selected(); sel == nil || sel.Name != "b" {
		t.Errorf("Selected() = %+v, want b", sel)
	}
	s.SelectedIndex = -1
	if s.Selected() != nil {
		t.Error("Selected() with no selection should be nil")
	}
	s.SelectedIndex = 7
	if s.Selected() != nil {
		t.Error("Selected() out of range should be nil")
	}
}
