// Package view keeps the table, icon and tree presentations rooted at the
// same directory and sorted the same way.
package view

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/fs"
)

// Lister loads the direct children of a directory.
type Lister func(path string, showHidden bool) ([]fs.Entry, error)

// Options seeds a Controller.
type Options struct {
	Mode       Mode
	Sort       SortOrder
	ShowHidden bool
	Thumbnails bool
	Columns    Columns
}

// Columns toggles the optional table columns.
type Columns struct {
	Size     bool
	Type     bool
	Modified bool
}

// Controller owns the shared listing and the three surfaces.
type Controller struct {
	lister   Lister
	listing  *Listing
	surfaces [3]Surface
	enabled  [3]bool
	tree     *treeSurface

	mode       Mode
	sort       SortOrder
	showHidden bool
	thumbnails bool
	columns    Columns
}

// NewController creates a controller with every surface enabled and no root.
func NewController(lister Lister, opts Options) *Controller {
	if lister == nil {
		lister = fs.List
	}
	tree := newTreeSurface()
	c := &Controller{
		lister:     lister,
		listing:    &Listing{},
		tree:       tree,
		mode:       opts.Mode,
		sort:       opts.Sort,
		showHidden: opts.ShowHidden,
		thumbnails: opts.Thumbnails,
		columns:    opts.Columns,
	}
	c.surfaces = [3]Surface{newFlatSurface(ModeTable), newFlatSurface(ModeIcon), tree}
	c.enabled = [3]bool{true, true, true}
	return c
}

// Root returns the current root directory.
func (c *Controller) Root() string { return c.listing.Root }

// Listing returns the shared listing.
func (c *Controller) Listing() *Listing { return c.listing }

// SetRoot lists path once and re-roots every enabled surface on it.
// Re-rooting disables sorting on each surface, so sorting is switched back
// on and the current order re-applied straight after.
func (c *Controller) SetRoot(path string) error {
	entries, err := c.lister(path, c.showHidden)
	if err != nil {
		debug.Log(debug.UI, "SetRoot %s: %v", path, err)
		return err
	}
	c.SetListing(path, entries)
	return nil
}

// SetListing re-roots the surfaces on entries already listed for path, as
// delivered by the background listing worker.
func (c *Controller) SetListing(path string, entries []fs.Entry) {
	c.listing = &Listing{Root: path, Entries: entries, Version: c.listing.Version + 1}
	for i, s := range c.surfaces {
		if !c.enabled[i] {
			continue
		}
		s.SetRoot(c.listing)
		c.resort(s)
	}
	debug.Log(debug.UI, "SetRoot %s: %d entries (v%d)", path, len(entries), c.listing.Version)
}

func (c *Controller) resort(s Surface) {
	s.SetSortingEnabled(true)
	s.Sort(c.sort)
}

// Refresh re-lists the current root, keeping sort order and the tree's
// expanded folders that still exist.
func (c *Controller) Refresh() error {
	if c.listing.Root == "" {
		return nil
	}
	expanded := c.tree.expandedPaths()
	if err := c.SetRoot(c.listing.Root); err != nil {
		return err
	}
	if !c.enabled[ModeTree] {
		return nil
	}
	for _, p := range expanded {
		if err := c.Expand(p); err != nil && !errors.Is(err, fs.ErrNotFound) {
			debug.Log(debug.UI, "Refresh: re-expand %s: %v", p, err)
		}
	}
	return nil
}

// SetSort applies o to every enabled surface.
func (c *Controller) SetSort(o SortOrder) {
	c.sort = o
	for i, s := range c.surfaces {
		if c.enabled[i] {
			s.Sort(o)
		}
	}
}

// ToggleSort flips or switches the sort column, as a header click does.
func (c *Controller) ToggleSort(col SortColumn) {
	c.SetSort(c.sort.Toggle(col))
}

func (c *Controller) Sort() SortOrder { return c.sort }

// SetMode switches the active surface. The listing is not re-read.
func (c *Controller) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	c.mode = m
	if !c.enabled[m] {
		c.SetSurfaceEnabled(m, true)
	}
}

func (c *Controller) Mode() Mode { return c.mode }

// SetSurfaceEnabled attaches or detaches a surface. A newly attached
// surface is rooted on the current listing and sorted.
func (c *Controller) SetSurfaceEnabled(m Mode, on bool) {
	if c.enabled[m] == on {
		return
	}
	c.enabled[m] = on
	if on && c.listing.Root != "" {
		s := c.surfaces[m]
		s.SetRoot(c.listing)
		c.resort(s)
	}
}

func (c *Controller) SurfaceEnabled(m Mode) bool { return c.enabled[m] }

// Surface returns the presentation for m.
func (c *Controller) Surface(m Mode) Surface { return c.surfaces[m] }

// Rows returns the visible rows of the active surface.
func (c *Controller) Rows() []Row { return c.surfaces[c.mode].Rows() }

// Expand loads path's children into the tree.
func (c *Controller) Expand(path string) error {
	if !c.isUnderRoot(path) {
		return os.ErrInvalid
	}
	children, err := c.lister(path, c.showHidden)
	if err != nil {
		return err
	}
	c.tree.expand(path, children)
	return nil
}

// Collapse hides path's children in the tree.
func (c *Controller) Collapse(path string) { c.tree.collapse(path) }

// ToggleExpand expands a collapsed folder or collapses an open one.
func (c *Controller) ToggleExpand(path string) error {
	if c.tree.isExpanded(path) {
		c.Collapse(path)
		return nil
	}
	return c.Expand(path)
}

func (c *Controller) isUnderRoot(path string) bool {
	rel, err := filepath.Rel(c.listing.Root, path)
	return err == nil && rel != "." && rel != ".." && !filepath.IsAbs(rel) &&
		!(len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator))
}

// SetShowHidden toggles dotfiles and re-lists.
func (c *Controller) SetShowHidden(on bool) error {
	if c.showHidden == on {
		return nil
	}
	c.showHidden = on
	return c.Refresh()
}

func (c *Controller) ShowHidden() bool { return c.showHidden }

// SetThumbnails toggles icon-view thumbnails. Icon lookups take the flag as
// an argument, so nothing holds a pointer back to the controller.
func (c *Controller) SetThumbnails(on bool) { c.thumbnails = on }

func (c *Controller) Thumbnails() bool { return c.thumbnails }

func (c *Controller) SetColumns(cols Columns) { c.columns = cols }

func (c *Controller) Columns() Columns { return c.columns }
