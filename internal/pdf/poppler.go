package pdf

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/justyntemme/vista/internal/debug"
)

// A4 is the fallback page size when pdfinfo reports none.
var A4 = Size{W: 595.276, H: 841.89}

const toolTimeout = 30 * time.Second

// Poppler renders with the pdfinfo and pdftoppm command line tools.
type Poppler struct {
	info  string
	toppm string

	mu    sync.Mutex
	path  string
	sizes []Size
}

// NewPoppler locates pdfinfo and pdftoppm on PATH.
func NewPoppler() (*Poppler, error) {
	return newPoppler(exec.LookPath)
}

func newPoppler(lookPath func(string) (string, error)) (*Poppler, error) {
	info, err := lookPath("pdfinfo")
	if err != nil {
		return nil, fmt.Errorf("%w: pdfinfo not found (install poppler-utils)", ErrNoRenderer)
	}
	toppm, err := lookPath("pdftoppm")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftoppm not found (install poppler-utils)", ErrNoRenderer)
	}
	return &Poppler{info: info, toppm: toppm}, nil
}

// Load reads the page count and per-page sizes of path.
func (p *Poppler) Load(ctx context.Context, path string) error {
	out, err := p.exec(ctx, p.info, path)
	if err != nil {
		return fmt.Errorf("pdfinfo %s: %w", path, err)
	}
	pages, def := parseInfo(out)
	if pages <= 0 {
		return fmt.Errorf("pdfinfo %s: no pages", path)
	}
	sizes := make([]Size, pages)
	for i := range sizes {
		sizes[i] = def
	}
	if pages > 1 {
		// Per-page sizes; a failure leaves every page at the default.
		out, err := p.exec(ctx, p.info, "-f", "1", "-l", strconv.Itoa(pages), path)
		if err == nil {
			for n, s := range parsePageSizes(out) {
				if n >= 1 && n <= pages {
					sizes[n-1] = s
				}
			}
		}
	}

	p.mu.Lock()
	p.path = path
	p.sizes = sizes
	p.mu.Unlock()
	debug.Log(debug.PREVIEW, "pdf loaded %s: %d pages", path, pages)
	return nil
}

func (p *Poppler) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sizes)
}

func (p *Poppler) PagePointSize(page int) (Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == "" {
		return Size{}, ErrNotLoaded
	}
	if page < 0 || page >= len(p.sizes) {
		return Size{}, ErrPageRange
	}
	return p.sizes[page], nil
}

// Render rasterises page (0-based) scaled to fit px.
func (p *Poppler) Render(ctx context.Context, page int, px image.Point) (image.Image, error) {
	p.mu.Lock()
	path, n := p.path, len(p.sizes)
	p.mu.Unlock()
	if path == "" {
		return nil, ErrNotLoaded
	}
	if page < 0 || page >= n {
		return nil, ErrPageRange
	}
	if px.X <= 0 || px.Y <= 0 {
		return nil, fmt.Errorf("render page %d: empty target %v", page, px)
	}
	num := strconv.Itoa(page + 1)
	out, err := p.exec(ctx, p.toppm, "-f", num, "-l", num, "-png", "-singlefile",
		"-scale-to-x", strconv.Itoa(px.X), "-scale-to-y", strconv.Itoa(px.Y), path)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm page %s: %w", num, err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode page %s: %w", num, err)
	}
	return img, nil
}

func (p *Poppler) Close() {
	p.mu.Lock()
	p.path = ""
	p.sizes = nil
	p.mu.Unlock()
}

func (p *Poppler) exec(ctx context.Context, bin string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// parseInfo extracts "Pages:" and the first "Page size:" from pdfinfo
// output. The size defaults to A4.
func parseInfo(out []byte) (pages int, size Size) {
	size = A4
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "Pages":
			pages, _ = strconv.Atoi(val)
		case "Page size":
			if s, ok := parseSize(val); ok {
				size = s
			}
		}
	}
	return pages, size
}

// parsePageSizes reads "Page    N size: W x H pts" lines.
func parsePageSizes(out []byte) map[int]Size {
	sizes := make(map[int]Size)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		f := strings.Fields(key)
		if len(f) != 3 || f[0] != "Page" || f[2] != "size" {
			continue
		}
		n, err := strconv.Atoi(f[1])
		if err != nil {
			continue
		}
		if s, ok := parseSize(strings.TrimSpace(val)); ok {
			sizes[n] = s
		}
	}
	return sizes
}

// parseSize parses "595.276 x 841.89 pts (A4)".
func parseSize(s string) (Size, bool) {
	f := strings.Fields(s)
	if len(f) < 3 || f[1] != "x" {
		return Size{}, false
	}
	w, err1 := strconv.ParseFloat(f[0], 64)
	h, err2 := strconv.ParseFloat(f[2], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return Size{}, false
	}
	return Size{W: w, H: h}, true
}
