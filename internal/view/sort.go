package view

import (
	"sort"
	"strings"

	"github.com/justyntemme/vista/internal/fs"
)

// SortColumn is the table column a listing is ordered by. Column 0 is the
// name.
type SortColumn int

const (
	SortByName SortColumn = iota
	SortBySize
	SortByType
	SortByDate
)

func (c SortColumn) String() string {
	switch c {
	case SortBySize:
		return "size"
	case SortByType:
		return "type"
	case SortByDate:
		return "date"
	}
	return "name"
}

// ParseSortColumn maps a config value to a column, defaulting to name.
func ParseSortColumn(s string) SortColumn {
	switch strings.ToLower(s) {
	case "size":
		return SortBySize
	case "type":
		return SortByType
	case "date", "modified":
		return SortByDate
	}
	return SortByName
}

// SortOrder is a column plus direction.
type SortOrder struct {
	Column    SortColumn
	Ascending bool
}

// DefaultSort is name ascending.
var DefaultSort = SortOrder{Column: SortByName, Ascending: true}

// Toggle returns the order after the user clicks column: the same column
// flips direction, a new column starts ascending.
func (o SortOrder) Toggle(column SortColumn) SortOrder {
	if o.Column == column {
		return SortOrder{Column: column, Ascending: !o.Ascending}
	}
	return SortOrder{Column: column, Ascending: true}
}

// sortIndices orders idx (positions into entries) with directories first,
// then by the column, ties broken by name.
func sortIndices(entries []fs.Entry, idx []int, o SortOrder) {
	sort.SliceStable(idx, func(a, b int) bool {
		ei, ej := &entries[idx[a]], &entries[idx[b]]
		if ei.IsDir != ej.IsDir {
			return ei.IsDir
		}
		c := compare(ei, ej, o.Column)
		if c == 0 {
			c = strings.Compare(strings.ToLower(ei.Name), strings.ToLower(ej.Name))
		}
		if !o.Ascending {
			return c > 0
		}
		return c < 0
	})
}

func compare(a, b *fs.Entry, col SortColumn) int {
	switch col {
	case SortByDate:
		return a.ModTime.Compare(b.ModTime)
	case SortBySize:
		switch {
		case a.Size < b.Size:
			return -1
		case a.Size > b.Size:
			return 1
		}
		return 0
	case SortByType:
		return strings.Compare(a.Ext, b.Ext)
	}
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
