package view

import (
	"github.com/justyntemme/vista/internal/fs"
)

// treeNode holds a directory's loaded children.
type treeNode struct {
	entries []fs.Entry
	order   []int
}

// treeSurface shows the listing as the top level of a lazily expanded
// tree. Children of expanded folders are loaded through the Controller's
// lister and sorted with the same order as the top level.
type treeSurface struct {
	flatSurface
	expanded map[string]*treeNode
	sort     SortOrder
}

func newTreeSurface() *treeSurface {
	return &treeSurface{
		flatSurface: flatSurface{mode: ModeTree},
		expanded:    make(map[string]*treeNode),
	}
}

func (s *treeSurface) SetRoot(l *Listing) {
	s.flatSurface.SetRoot(l)
	s.expanded = make(map[string]*treeNode)
}

func (s *treeSurface) Sort(o SortOrder) {
	if !s.sorting {
		return
	}
	s.sort = o
	s.flatSurface.Sort(o)
	for _, n := range s.expanded {
		sortIndices(n.entries, n.order, o)
	}
}

func (s *treeSurface) expand(path string, children []fs.Entry) {
	n := &treeNode{entries: children, order: identity(len(children))}
	if s.sorting {
		sortIndices(n.entries, n.order, s.sort)
	}
	s.expanded[path] = n
}

func (s *treeSurface) collapse(path string) {
	delete(s.expanded, path)
}

func (s *treeSurface) isExpanded(path string) bool {
	_, ok := s.expanded[path]
	return ok
}

func (s *treeSurface) expandedPaths() []string {
	out := make([]string, 0, len(s.expanded))
	for p := range s.expanded {
		out = append(out, p)
	}
	return out
}

// Rows flattens the visible tree depth-first.
func (s *treeSurface) Rows() []Row {
	if s.listing == nil {
		return nil
	}
	var rows []Row
	var walk func(entries []fs.Entry, order []int, depth int)
	walk = func(entries []fs.Entry, order []int, depth int) {
		for _, idx := range order {
			e := entries[idx]
			n, open := s.expanded[e.Path]
			rows = append(rows, Row{Entry: e, Depth: depth, Expanded: open})
			if open && e.IsDir {
				walk(n.entries, n.order, depth+1)
			}
		}
	}
	walk(s.listing.Entries, s.order, 0)
	return rows
}
