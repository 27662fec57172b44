package nav

import (
	"path/filepath"
	"strings"
)

// DefaultBreadcrumbThreshold is the segment count above which the middle
// of the breadcrumb collapses.
const DefaultBreadcrumbThreshold = 5

// breadcrumbTail is how many trailing segments stay visible when collapsed.
const breadcrumbTail = 3

// Segment is one clickable breadcrumb element.
type Segment struct {
	Name       string // display label ("/" for the root, "..." for the ellipsis)
	Path       string // cumulative path through this segment
	IsEllipsis bool
}

// Breadcrumb is the display model for a path.
type Breadcrumb struct {
	Full      string
	Segments  []Segment
	Collapsed bool
}

// Expand returns the path the address field should show when the
// ellipsis is activated.
func (b Breadcrumb) Expand() string { return b.Full }

// SplitPath splits a cleaned absolute path into its segments with cumulative
// targets. The root ("/", "C:\" or a UNC share) is the first segment.
func SplitPath(fullPath string) []Segment {
	if fullPath == "" {
		return nil
	}
	sep := string(filepath.Separator)
	clean := filepath.Clean(fullPath)

	var segs []Segment
	rest := clean
	if vol := filepath.VolumeName(clean); vol != "" {
		root := vol + sep
		segs = append(segs, Segment{Name: root, Path: root})
		rest = strings.TrimPrefix(clean[len(vol):], sep)
	} else if strings.HasPrefix(clean, sep) {
		segs = append(segs, Segment{Name: sep, Path: sep})
		rest = clean[len(sep):]
	}

	acc := ""
	if len(segs) > 0 {
		acc = segs[0].Path
	}
	for _, part := range strings.Split(rest, sep) {
		if part == "" {
			continue
		}
		// Join copes with roots that do or do not end in a separator.
		acc = filepath.Join(acc, part)
		segs = append(segs, Segment{Name: part, Path: acc})
	}
	return segs
}

// BuildBreadcrumb computes the breadcrumb for fullPath. When the segment
// count exceeds threshold, it shows the first segment, an ellipsis, then
// the last three segments.
func BuildBreadcrumb(fullPath string, threshold int) Breadcrumb {
	if threshold <= 0 {
		threshold = DefaultBreadcrumbThreshold
	}
	all := SplitPath(fullPath)
	b := Breadcrumb{Full: filepath.Clean(fullPath), Segments: all}
	if fullPath == "" {
		b.Full = ""
	}
	if len(all) <= threshold || len(all) <= breadcrumbTail+1 {
		return b
	}

	out := make([]Segment, 0, breadcrumbTail+2)
	out = append(out, all[0])
	out = append(out, Segment{Name: "...", Path: b.Full, IsEllipsis: true})
	out = append(out, all[len(all)-breadcrumbTail:]...)
	b.Segments = out
	b.Collapsed = true
	return b
}
