package nav

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestBuildBreadcrumbCollapses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	// "/" plus seven directories: eight segments.
	full := "/a/b/c/d/e/f/g"
	b := BuildBreadcrumb(full, 5)
	if !b.Collapsed {
		t.Fatal("expected collapsed breadcrumb")
	}
	want := []Segment{
		{Name: "/", Path: "/"},
		{Name: "...", Path: full, IsEllipsis: true},
		{Name: "e", Path: "/a/b/c/d/e"},
		{Name: "f", Path: "/a/b/c/d/e/f"},
		{Name: "g", Path: "/a/b/c/d/e/f/g"},
	}
	if len(b.Segments) != len(want) {
		t.Fatalf("segments = %+v", b.Segments)
	}
	for i := range want {
		if b.Segments[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, b.Segments[i], want[i])
		}
	}
	if b.Expand() != full {
		t.Errorf("Expand() = %q, want %q", b.Expand(), full)
	}
}

func TestBuildBreadcrumbShort(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	tests := []struct {
		path  string
		names []string
	}{
		{"/", []string{"/"}},
		{"/home", []string{"/", "home"}},
		{"/home/u/docs/x", []string{"/", "home", "u", "docs", "x"}},
		{"/home/u/docs/x/", []string{"/", "home", "u", "docs", "x"}},
	}
	for _, tt := range tests {
		b := BuildBreadcrumb(tt.path, 5)
		if b.Collapsed {
			t.Errorf("%s: should not collapse", tt.path)
		}
		if len(b.Segments) != len(tt.names) {
			t.Fatalf("%s: got %+v", tt.path, b.Segments)
		}
		for i, n := range tt.names {
			if b.Segments[i].Name != n {
				t.Errorf("%s: segment %d = %q, want %q", tt.path, i, b.Segments[i].Name, n)
			}
		}
		last := b.Segments[len(b.Segments)-1]
		if last.Path != filepath.Clean(tt.path) {
			t.Errorf("%s: last target %q", tt.path, last.Path)
		}
	}
}

func TestSplitPathCumulativeTargets(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	segs := SplitPath("/usr/local/share")
	want := []string{"/", "/usr", "/usr/local", "/usr/local/share"}
	for i, s := range segs {
		if s.Path != want[i] {
			t.Errorf("segment %d path = %q, want %q", i, s.Path, want[i])
		}
	}
}

func TestBreadcrumbThresholdBoundary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	// Exactly five segments stays expanded; six collapses.
	if BuildBreadcrumb("/a/b/c/d", 5).Collapsed {
		t.Error("5 segments collapsed")
	}
	b := BuildBreadcrumb("/a/b/c/d/e", 5)
	if !b.Collapsed || len(b.Segments) != 5 {
		t.Errorf("6 segments: %+v", b.Segments)
	}
}
