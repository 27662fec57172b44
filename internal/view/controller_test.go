package view

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/justyntemme/vista/internal/fs"
)

type fakeLister struct {
	dirs  map[string][]fs.Entry
	calls map[string]int
}

func newFakeLister() *fakeLister {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	root := "/r"
	return &fakeLister{
		calls: map[string]int{},
		dirs: map[string][]fs.Entry{
			root: {
				{Name: "b.txt", Path: "/r/b.txt", Size: 30, Ext: "txt", ModTime: base.Add(3 * time.Hour)},
				{Name: "Zeta", Path: "/r/Zeta", IsDir: true, ModTime: base},
				{Name: "a.png", Path: "/r/a.png", Size: 10, Ext: "png", ModTime: base.Add(2 * time.Hour)},
				{Name: "alpha", Path: "/r/alpha", IsDir: true, ModTime: base.Add(time.Hour)},
				{Name: "c.go", Path: "/r/c.go", Size: 20, Ext: "go", ModTime: base.Add(time.Hour)},
			},
			"/r/alpha": {
				{Name: "z.md", Path: "/r/alpha/z.md", Ext: "md"},
				{Name: "m.md", Path: "/r/alpha/m.md", Ext: "md"},
			},
		},
	}
}

func (f *fakeLister) list(path string, showHidden bool) ([]fs.Entry, error) {
	f.calls[path]++
	e, ok := f.dirs[filepath.ToSlash(path)]
	if !ok {
		return nil, fs.ErrNotFound
	}
	return append([]fs.Entry(nil), e...), nil
}

func rowNames(rows []Row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Entry.Name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSetRootListsOnceAndSortsEverySurface(t *testing.T) {
	fl := newFakeLister()
	c := NewController(fl.list, Options{Sort: DefaultSort})
	if err := c.SetRoot("/r"); err != nil {
		t.Fatal(err)
	}
	if fl.calls["/r"] != 1 {
		t.Errorf("lister called %d times, want 1", fl.calls["/r"])
	}
	want := []string{"alpha", "Zeta", "a.png", "b.txt", "c.go"}
	for _, m := range []Mode{ModeTable, ModeIcon, ModeTree} {
		s := c.Surface(m)
		if !s.SortingEnabled() {
			t.Errorf("%v: sorting still disabled after root change", m)
		}
		if got := rowNames(s.Rows()); !equal(got, want) {
			t.Errorf("%v rows = %v, want %v", m, got, want)
		}
	}
}

func TestSurfaceSetRootDisablesSorting(t *testing.T) {
	s := newFlatSurface(ModeTable)
	s.SetSortingEnabled(true)
	s.SetRoot(&Listing{Root: "/r"})
	if s.SortingEnabled() {
		t.Error("re-rooting a surface should turn sorting off")
	}
}

func TestSwitchingModeDoesNotRelist(t *testing.T) {
	fl := newFakeLister()
	c := NewController(fl.list, Options{Sort: DefaultSort})
	c.SetRoot("/r")
	c.SetMode(ModeIcon)
	c.SetMode(ModeTree)
	c.SetMode(ModeTable)
	if fl.calls["/r"] != 1 {
		t.Errorf("lister called %d times, want 1", fl.calls["/r"])
	}
	if c.Mode() != ModeTable {
		t.Errorf("mode = %v", c.Mode())
	}
}

func TestSetSortAppliesToAllSurfaces(t *testing.T) {
	fl := newFakeLister()
	c := NewController(fl.list, Options{Sort: DefaultSort})
	c.SetRoot("/r")
	c.SetSort(SortOrder{Column: SortBySize, Ascending: false})
	want := []string{"Zeta", "alpha", "b.txt", "c.go", "a.png"}
	for _, m := range []Mode{ModeTable, ModeIcon, ModeTree} {
		if got := rowNames(c.Surface(m).Rows()); !equal(got, want) {
			t.Errorf("%v rows = %v, want %v", m, got, want)
		}
	}

	// A new root keeps the chosen order.
	c.SetRoot("/r")
	if got := rowNames(c.Rows()); !equal(got, want) {
		t.Errorf("after re-root rows = %v, want %v", got, want)
	}
}

func TestSortColumns(t *testing.T) {
	fl := newFakeLister()
	c := NewController(fl.list, Options{Sort: DefaultSort})
	c.SetRoot("/r")
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortOrder{SortByName, false}, []string{"Zeta", "alpha", "c.go", "b.txt", "a.png"}},
		{SortOrder{SortByType, true}, []string{"alpha", "Zeta", "c.go", "a.png", "b.txt"}},
		{SortOrder{SortByDate, true}, []string{"Zeta", "alpha", "c.go", "a.png", "b.txt"}},
	}
	for _, tt := range tests {
		c.SetSort(tt.order)
		if got := rowNames(c.Rows()); !equal(got, tt.want) {
			t.Errorf("%v asc=%v: rows = %v, want %v", tt.order.Column, tt.order.Ascending, got, tt.want)
		}
	}
}

func TestToggleSort(t *testing.T) {
	o := DefaultSort.Toggle(SortByName)
	if o.Column != SortByName || o.Ascending {
		t.Errorf("same column should flip: %+v", o)
	}
	o = o.Toggle(SortBySize)
	if o.Column != SortBySize || !o.Ascending {
		t.Errorf("new column should start ascending: %+v", o)
	}
}

func TestDisabledSurfaceSyncsWhenEnabled(t *testing.T) {
	fl := newFakeLister()
	c := NewController(fl.list, Options{Sort: DefaultSort})
	c.SetSurfaceEnabled(ModeIcon, false)
	c.SetRoot("/r")
	if rows := c.Surface(ModeIcon).Rows(); rows != nil {
		t.Errorf("disabled surface was updated: %v", rowNames(rows))
	}
	c.SetMode(ModeIcon)
	if !c.SurfaceEnabled(ModeIcon) {
		t.Fatal("switching to a mode should enable its surface")
	}
	if got := rowNames(c.Rows()); len(got) != 5 || got[0] != "alpha" {
		t.Errorf("icon rows = %v", got)
	}
	if fl.calls["/r"] != 1 {
		t.Errorf("enabling a surface re-listed (%d calls)", fl.calls["/r"])
	}
}

func TestTreeExpandCollapse(t *testing.T) {
	fl := newFakeLister()
	c := NewController(fl.list, Options{Sort: DefaultSort})
	c.SetRoot("/r")
	c.SetMode(ModeTree)

	if err := c.ToggleExpand("/r/alpha"); err != nil {
		t.Fatal(err)
	}
	rows := c.Rows()
	want := []string{"alpha", "m.md", "z.md", "Zeta", "a.png", "b.txt", "c.go"}
	if got := rowNames(rows); !equal(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	if !rows[0].Expanded || rows[1].Depth != 1 {
		t.Errorf("expanded/depth wrong: %+v %+v", rows[0], rows[1])
	}

	// Refresh keeps the expansion.
	if err := c.Refresh(); err != nil {
		t.Fatal(err)
	}
	if got := rowNames(c.Rows()); !equal(got, want) {
		t.Errorf("after refresh rows = %v", got)
	}

	c.ToggleExpand("/r/alpha")
	if n := len(c.Rows()); n != 5 {
		t.Errorf("after collapse %d rows", n)
	}

	// A root change drops expansion state.
	c.Expand("/r/alpha")
	c.SetRoot("/r")
	if n := len(c.Rows()); n != 5 {
		t.Errorf("root change kept expansion: %d rows", n)
	}

	if err := c.Expand("/elsewhere"); err == nil {
		t.Error("expanding outside the root should fail")
	}
}

func TestSetRootError(t *testing.T) {
	fl := newFakeLister()
	c := NewController(fl.list, Options{Sort: DefaultSort})
	c.SetRoot("/r")
	if err := c.SetRoot("/missing"); err == nil {
		t.Fatal("expected error")
	}
	if c.Root() != "/r" || len(c.Rows()) != 5 {
		t.Error("failed SetRoot must keep the previous listing")
	}
}

func TestModeHelpers(t *testing.T) {
	if ModeTable.IconSize() != 32 || ModeIcon.IconSize() != 48 || ModeTree.IconSize() != 24 {
		t.Error("icon sizes")
	}
	if ParseMode("tree") != ModeTree || ParseMode("bogus") != ModeTable {
		t.Error("ParseMode")
	}
	if ParseSortColumn("modified") != SortByDate || ParseSortColumn("") != SortByName {
		t.Error("ParseSortColumn")
	}
}

func TestSetListingUsesGivenEntries(t *testing.T) {
	l := newFakeLister()
	c := NewController(l.list, Options{Sort: DefaultSort})
	c.SetListing("/r", append([]fs.Entry(nil), l.dirs["/r"]...))
	if l.calls["/r"] != 0 {
		t.Errorf("SetListing listed %d times", l.calls["/r"])
	}
	want := []string{"alpha", "Zeta", "a.png", "b.txt", "c.go"}
	if got := rowNames(c.Rows()); !equal(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
	if c.Listing().Version != 1 {
		t.Errorf("version = %d", c.Listing().Version)
	}
}
