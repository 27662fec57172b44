package ui

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		name      string
		w, h, max int
		want      image.Point
	}{
		{"small kept", 40, 30, 64, image.Pt(40, 30)},
		{"landscape", 400, 200, 100, image.Pt(100, 50)},
		{"portrait", 100, 1000, 50, image.Pt(5, 50)},
		{"sliver", 1000, 1, 10, image.Pt(10, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scaleToFit(solid(tt.w, tt.h), tt.max).Bounds().Size()
			if got != tt.want {
				t.Errorf("scaleToFit(%dx%d, %d) = %v, want %v", tt.w, tt.h, tt.max, got, tt.want)
			}
		})
	}
}

func TestThumbnailCacheEvictsLeastRecent(t *testing.T) {
	tc := newThumbnailCache(2, 16, func(string) (image.Image, error) { return solid(32, 32), nil })

	for _, p := range []string{"a", "b"} {
		if !tc.load(p) {
			t.Fatalf("load(%s) failed", p)
		}
	}
	// Touch a so b is the oldest.
	if _, _, ok := tc.Get("a"); !ok {
		t.Fatal("a missing")
	}
	tc.load("c")

	if tc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tc.Len())
	}
	if _, _, ok := tc.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, p := range []string{"a", "c"} {
		if _, _, ok := tc.Get(p); !ok {
			t.Errorf("%s should be cached", p)
		}
	}
}

func TestThumbnailCacheGetReportsSourceSize(t *testing.T) {
	tc := newThumbnailCache(4, 16, func(string) (image.Image, error) { return solid(64, 32), nil })
	tc.load("wide.png")
	thumb, size, ok := tc.Get("wide.png")
	if !ok {
		t.Fatal("thumbnail missing")
	}
	if size != image.Pt(64, 32) {
		t.Errorf("source size = %v, want 64x32", size)
	}
	if got := thumb.Size(); got != image.Pt(16, 8) {
		t.Errorf("thumbnail size = %v, want 16x8", got)
	}
}

func TestThumbnailCacheDecodeError(t *testing.T) {
	tc := newThumbnailCache(4, 16, func(string) (image.Image, error) { return nil, errors.New("corrupt") })
	if tc.load("bad.jpg") {
		t.Error("load should fail")
	}
	if tc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tc.Len())
	}
	tc.pendingMu.Lock()
	pending := len(tc.pending)
	tc.pendingMu.Unlock()
	if pending != 0 {
		t.Errorf("pending = %d after failed load, want 0", pending)
	}
}

func TestThumbnailCacheBackgroundLoad(t *testing.T) {
	tc := newThumbnailCache(4, 16, func(string) (image.Image, error) { return solid(8, 8), nil })
	loaded := make(chan string, 1)
	tc.OnLoad = func(path string) { loaded <- path }
	go tc.backgroundLoader()
	defer tc.Stop()

	tc.RequestLoad("x.png")
	tc.RequestLoad("x.png") // deduplicated while pending

	select {
	case p := <-loaded:
		if p != "x.png" {
			t.Errorf("OnLoad(%q), want x.png", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("thumbnail was not loaded")
	}
	if _, _, ok := tc.Get("x.png"); !ok {
		t.Error("x.png should be cached")
	}
	tc.Stop() // second Stop is a no-op
}

func TestThumbnailCacheClear(t *testing.T) {
	tc := newThumbnailCache(4, 16, func(string) (image.Image, error) { return solid(8, 8), nil })
	tc.load("a")
	tc.load("b")
	tc.Clear()
	if tc.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", tc.Len())
	}
}
