package preview

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/justyntemme/vista/internal/classify"
	"github.com/justyntemme/vista/internal/debug"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// ImageInfo describes a decoded image.
type ImageInfo struct {
	Width, Height int // after orientation
	Format        string
	Orientation   int // EXIF orientation, 1 when absent
	Camera        string
	Taken         time.Time
}

// DecodeImage decodes path, applying its EXIF orientation.
func DecodeImage(path string) (image.Image, ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ImageInfo{}, statError(path, err)
	}
	defer f.Close()

	var (
		img    image.Image
		format string
	)
	switch ext := classify.Ext(path); ext {
	case "heic", "heif":
		if !heicSupported() {
			return nil, ImageInfo{}, loadFailed(path, fmt.Errorf("HEIC preview not supported on this platform"))
		}
		img, err = decodeHEIC(f)
		format = ext
	default:
		img, format, err = image.Decode(f)
	}
	if err != nil {
		debug.Log(debug.PREVIEW, "DecodeImage %s: %v", path, err)
		return nil, ImageInfo{}, loadFailed(path, err)
	}

	info := ImageInfo{Format: format, Orientation: 1}
	if format == "jpeg" || format == "tiff" {
		if _, err := f.Seek(0, io.SeekStart); err == nil {
			readExif(f, &info)
		}
	}
	if info.Orientation > 1 {
		img = orient(img, info.Orientation)
	}
	b := img.Bounds()
	info.Width, info.Height = b.Dx(), b.Dy()
	return img, info, nil
}

// ReadExif fills camera details for the details surface without decoding
// pixels.
func ReadExif(path string) (ImageInfo, bool) {
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, false
	}
	defer f.Close()
	info := ImageInfo{Orientation: 1}
	if cfg, format, err := image.DecodeConfig(f); err == nil {
		info.Width, info.Height, info.Format = cfg.Width, cfg.Height, format
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, info.Format != ""
	}
	readExif(f, &info)
	if info.Orientation >= 5 {
		info.Width, info.Height = info.Height, info.Width
	}
	return info, info.Format != "" || info.Camera != ""
}

func readExif(r io.Reader, info *ImageInfo) {
	x, err := exif.Decode(r)
	if err != nil {
		return
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil && o >= 1 && o <= 8 {
			info.Orientation = o
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			info.Camera = model
		}
	}
	if t, err := x.DateTime(); err == nil {
		info.Taken = t
	}
}

// orient returns img transformed so that EXIF orientation o displays
// upright.
func orient(img image.Image, o int) image.Image {
	b := img.Bounds()
	src := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	w, h := b.Dx(), b.Dy()

	dw, dh := w, h
	if o >= 5 {
		dw, dh = h, w
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch o {
			case 2: // mirror horizontal
				dx, dy = w-1-x, y
			case 3: // rotate 180
				dx, dy = w-1-x, h-1-y
			case 4: // mirror vertical
				dx, dy = x, h-1-y
			case 5: // transpose
				dx, dy = y, x
			case 6: // rotate 90 cw
				dx, dy = h-1-y, x
			case 7: // transverse
				dx, dy = h-1-y, w-1-x
			case 8: // rotate 90 ccw
				dx, dy = y, w-1-x
			default:
				dx, dy = x, y
			}
			si := src.PixOffset(x, y)
			di := dst.PixOffset(dx, dy)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
