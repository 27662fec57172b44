package app

import (
	"testing"

	"github.com/justyntemme/vista/internal/fs"
	"github.com/justyntemme/vista/internal/ui"
	"github.com/justyntemme/vista/internal/view"
)

func newTestShared(t *testing.T, entries []fs.Entry) *SharedState {
	t.Helper()
	vc := view.NewController(func(string, bool) ([]fs.Entry, error) { return entries, nil }, view.Options{
		Mode: view.ModeTable,
		Sort: view.DefaultSort,
	})
	vc.SetListing("/data", entries)
	s := &SharedState{State: &ui.State{SelectedIndex: -1}, View: vc}
	s.rebuildEntries()
	return s
}

func TestRebuildEntriesKeepsSelection(t *testing.T) {
	s := newTestShared(t, []fs.Entry{
		{Name: "a.txt", Path: "/data/a.txt", Size: 30, Ext: "txt"},
		{Name: "b.txt", Path: "/data/b.txt", Size: 10, Ext: "txt"},
		{Name: "c.txt", Path: "/data/c.txt", Size: 20, Ext: "txt"},
	})
	if got := len(s.State.Entries); got != 3 {
		t.Fatalf("entries = %d, want 3", got)
	}

	s.State.SelectedIndex = 0 // a.txt
	s.View.ToggleSort(view.SortBySize)
	s.rebuildEntries()

	sel := s.State.Selected()
	if sel == nil || sel.Path != "/data/a.txt" {
		t.Fatalf("selection = %+v, want a.txt", sel)
	}
	if s.State.SelectedIndex != 2 {
		t.Errorf("SelectedIndex = %d, want 2 after size sort", s.State.SelectedIndex)
	}
	if s.State.Sort.Column != view.SortBySize || !s.State.Sort.Ascending {
		t.Errorf("Sort = %+v, want size ascending", s.State.Sort)
	}
}

func TestRebuildEntriesDropsMissingSelection(t *testing.T) {
	s := newTestShared(t, []fs.Entry{
		{Name: "a.txt", Path: "/data/a.txt"},
		{Name: "b.txt", Path: "/data/b.txt"},
	})
	s.State.SelectedIndex = 1

	s.View.SetListing("/data", []fs.Entry{{Name: "a.txt", Path: "/data/a.txt"}})
	s.rebuildEntries()

	if s.State.SelectedIndex != -1 {
		t.Errorf("SelectedIndex = %d, want -1", s.State.SelectedIndex)
	}
}

func TestRebuildEntriesCopiesViewSettings(t *testing.T) {
	s := newTestShared(t, nil)
	s.View.SetMode(view.ModeIcon)
	s.View.SetThumbnails(true)
	s.View.SetColumns(view.Columns{Size: true})
	s.rebuildEntries()

	if s.State.Mode != view.ModeIcon {
		t.Errorf("Mode = %v, want icon", s.State.Mode)
	}
	if !s.State.Thumbnails {
		t.Error("Thumbnails not copied")
	}
	if !s.State.Columns.Size || s.State.Columns.Modified {
		t.Errorf("Columns = %+v", s.State.Columns)
	}
}
