package view

import "github.com/justyntemme/vista/internal/fs"

// Mode selects one of the three presentations.
type Mode int

const (
	ModeTable Mode = iota
	ModeIcon
	ModeTree
)

var modeNames = [...]string{"table", "icon", "tree"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "table"
	}
	return modeNames[m]
}

// ParseMode maps a config value to a mode, defaulting to table.
func ParseMode(s string) Mode {
	for i, n := range modeNames {
		if n == s {
			return Mode(i)
		}
	}
	return ModeTable
}

// IconSize is the icon edge in dp for each mode.
func (m Mode) IconSize() int {
	switch m {
	case ModeIcon:
		return 48
	case ModeTree:
		return 24
	}
	return 32
}

// Listing is the one directory listing all surfaces observe.
type Listing struct {
	Root    string
	Entries []fs.Entry
	Version int // bumped on every root change or refresh
}

// Row is one visible line of a surface.
type Row struct {
	Entry    fs.Entry
	Depth    int  // tree indentation, 0 elsewhere
	Expanded bool // tree only
}

// Surface is one presentation of the shared listing. Re-rooting a surface
// turns its sorting off, the same as the item views of common toolkits;
// the Controller turns it back on.
type Surface interface {
	Mode() Mode
	SetRoot(l *Listing)
	SetSortingEnabled(on bool)
	SortingEnabled() bool
	Sort(o SortOrder)
	Rows() []Row
}

// flatSurface backs the table and icon presentations: an ordering over the
// shared entries.
type flatSurface struct {
	mode    Mode
	listing *Listing
	order   []int
	sorting bool
}

func newFlatSurface(m Mode) *flatSurface { return &flatSurface{mode: m} }

func (s *flatSurface) Mode() Mode { return s.mode }

func (s *flatSurface) SetRoot(l *Listing) {
	s.listing = l
	s.order = identity(len(l.Entries))
	s.sorting = false
}

func (s *flatSurface) SetSortingEnabled(on bool) { s.sorting = on }
func (s *flatSurface) SortingEnabled() bool      { return s.sorting }

func (s *flatSurface) Sort(o SortOrder) {
	if !s.sorting || s.listing == nil {
		return
	}
	sortIndices(s.listing.Entries, s.order, o)
}

func (s *flatSurface) Rows() []Row {
	if s.listing == nil {
		return nil
	}
	rows := make([]Row, len(s.order))
	for i, idx := range s.order {
		rows[i] = Row{Entry: s.listing.Entries[idx]}
	}
	return rows
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
