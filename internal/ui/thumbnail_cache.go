package ui

import (
	"container/list"
	"image"
	"sync"

	"gioui.org/op/paint"
	"golang.org/x/image/draw"

	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/preview"
)

// ThumbnailCache is an LRU of scaled-down images for the icon view,
// filled by a background loader.
type ThumbnailCache struct {
	mu        sync.Mutex
	cache     map[string]*thumbnailEntry
	lru       *list.List // front = most recent
	maxSize   int
	maxPixels int // longest thumbnail edge

	pendingMu sync.Mutex
	pending   map[string]bool
	loadChan  chan string
	stopChan  chan struct{}
	stopOnce  sync.Once

	// OnLoad runs on the loader goroutine after a thumbnail is cached.
	OnLoad func(path string)

	decode func(path string) (image.Image, error)
}

type thumbnailEntry struct {
	path      string
	thumbnail paint.ImageOp
	size      image.Point // source size after EXIF orientation
	element   *list.Element
}

// NewThumbnailCache starts the loader. maxPixels bounds the longer edge.
func NewThumbnailCache(maxEntries, maxPixels int) *ThumbnailCache {
	tc := newThumbnailCache(maxEntries, maxPixels, decodeThumbnail)
	go tc.backgroundLoader()
	return tc
}

func newThumbnailCache(maxEntries, maxPixels int, decode func(string) (image.Image, error)) *ThumbnailCache {
	return &ThumbnailCache{
		cache:     make(map[string]*thumbnailEntry),
		lru:       list.New(),
		maxSize:   max(1, maxEntries),
		maxPixels: max(1, maxPixels),
		pending:   make(map[string]bool),
		loadChan:  make(chan string, 100),
		stopChan:  make(chan struct{}),
		decode:    decode,
	}
}

func decodeThumbnail(path string) (image.Image, error) {
	img, _, err := preview.DecodeImage(path)
	return img, err
}

// Get returns a cached thumbnail and its source size.
func (tc *ThumbnailCache) Get(path string) (paint.ImageOp, image.Point, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	entry, ok := tc.cache[path]
	if !ok {
		return paint.ImageOp{}, image.Point{}, false
	}
	tc.lru.MoveToFront(entry.element)
	return entry.thumbnail, entry.size, true
}

// RequestLoad queues path unless it is cached or already queued. A full
// queue drops the request; the next frame asks again.
func (tc *ThumbnailCache) RequestLoad(path string) {
	tc.mu.Lock()
	_, cached := tc.cache[path]
	tc.mu.Unlock()
	if cached {
		return
	}

	tc.pendingMu.Lock()
	if tc.pending[path] {
		tc.pendingMu.Unlock()
		return
	}
	tc.pending[path] = true
	tc.pendingMu.Unlock()

	select {
	case tc.loadChan <- path:
	default:
		tc.pendingMu.Lock()
		delete(tc.pending, path)
		tc.pendingMu.Unlock()
	}
}

// Clear drops every thumbnail, e.g. after a refresh.
func (tc *ThumbnailCache) Clear() {
	tc.mu.Lock()
	tc.cache = make(map[string]*thumbnailEntry)
	tc.lru = list.New()
	tc.mu.Unlock()

	tc.pendingMu.Lock()
	tc.pending = make(map[string]bool)
	tc.pendingMu.Unlock()

	debug.Log(debug.UI, "ThumbnailCache: cleared")
}

// Stop shuts the loader down. Safe to call twice.
func (tc *ThumbnailCache) Stop() {
	tc.stopOnce.Do(func() { close(tc.stopChan) })
}

// Len is the number of cached thumbnails.
func (tc *ThumbnailCache) Len() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.cache)
}

func (tc *ThumbnailCache) backgroundLoader() {
	for {
		select {
		case <-tc.stopChan:
			return
		case path := <-tc.loadChan:
			if tc.load(path) && tc.OnLoad != nil {
				tc.OnLoad(path)
			}
		}
	}
}

func (tc *ThumbnailCache) load(path string) bool {
	defer func() {
		tc.pendingMu.Lock()
		delete(tc.pending, path)
		tc.pendingMu.Unlock()
	}()

	img, err := tc.decode(path)
	if err != nil {
		debug.Log(debug.UI, "ThumbnailCache: decode %s: %v", path, err)
		return false
	}
	src := img.Bounds().Size()
	thumb := scaleToFit(img, tc.maxPixels)
	tc.put(path, paint.NewImageOp(thumb), src)
	debug.Log(debug.UI, "ThumbnailCache: cached %s (%dx%d -> %dx%d)",
		path, src.X, src.Y, thumb.Bounds().Dx(), thumb.Bounds().Dy())
	return true
}

// scaleToFit shrinks src so neither edge exceeds maxPixels. Smaller
// images are returned as is.
func scaleToFit(src image.Image, maxPixels int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPixels && h <= maxPixels {
		return src
	}
	scale := float64(maxPixels) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func (tc *ThumbnailCache) put(path string, thumb paint.ImageOp, size image.Point) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if entry, ok := tc.cache[path]; ok {
		entry.thumbnail, entry.size = thumb, size
		tc.lru.MoveToFront(entry.element)
		return
	}
	for tc.lru.Len() >= tc.maxSize {
		oldest := tc.lru.Back()
		old := oldest.Value.(*thumbnailEntry)
		delete(tc.cache, old.path)
		tc.lru.Remove(oldest)
		debug.Log(debug.UI, "ThumbnailCache: evicted %s", old.path)
	}
	entry := &thumbnailEntry{path: path, thumbnail: thumb, size: size}
	entry.element = tc.lru.PushFront(entry)
	tc.cache[path] = entry
}
