package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/mattn/go-runewidth"

	"github.com/justyntemme/vista/internal/classify"
	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/fs"
)

// TimeLayout is how the details surface prints timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Info is the information surface for folders, unknown files and
// anything whose viewer failed.
type Info struct {
	Name     string
	Path     string
	Kind     string // "Folder", "File" or "<EXT> File"
	IsDir    bool
	Items    int   // folders
	Bytes    int64 // files
	MIME     string
	Modified time.Time
	Accessed time.Time // zero where the platform does not report it
	Image    *ImageInfo
	Excerpt  string // text pulled from office documents
	Message  string // why no richer preview is shown
}

// Field is one labelled row of the details surface.
type Field struct {
	Label string
	Value string
}

// BuildDetails stats path and collects its details. Directory sizes are
// item counts.
func BuildDetails(path string) (*Info, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}
	d := &Info{
		Name:     info.Name(),
		Path:     path,
		IsDir:    info.IsDir(),
		Modified: info.ModTime(),
		Accessed: accessTime(info),
	}
	if d.IsDir {
		d.Kind = "Folder"
		n, err := fs.CountEntries(path)
		if err != nil {
			debug.Log(debug.PREVIEW, "CountEntries %s: %v", path, err)
		}
		d.Items = n
		return d, nil
	}

	d.Kind = Kind(path)
	d.Bytes = info.Size()
	if mt, err := mimetype.DetectFile(path); err == nil {
		d.MIME = mt.String()
	}
	if classify.Classify(path) == classify.Image {
		if img, ok := ReadExif(path); ok {
			d.Image = &img
		}
	}
	return d, nil
}

// missingDetails describes a path that no longer exists.
func missingDetails(path string) *Info {
	return &Info{Name: filepath.Base(path), Path: path, Kind: Kind(path)}
}

// Kind names a file by extension: "PDF File", or "File" without one.
func Kind(path string) string {
	ext := classify.Ext(path)
	if ext == "" {
		return "File"
	}
	return strings.ToUpper(ext) + " File"
}

// SizeString is the size column: item count for folders, bytes otherwise.
func (d *Info) SizeString() string {
	if d.IsDir {
		if d.Items == 1 {
			return "1 item"
		}
		return fmt.Sprintf("%d items", d.Items)
	}
	return humanize.Bytes(uint64(d.Bytes))
}

// Fields lists the rows to display, skipping unknown values.
func (d *Info) Fields() []Field {
	f := []Field{
		{"Name", d.Name},
		{"Kind", d.Kind},
	}
	if d.IsDir || !d.Modified.IsZero() {
		f = append(f, Field{"Size", d.SizeString()})
	}
	if d.MIME != "" {
		f = append(f, Field{"Type", d.MIME})
	}
	if !d.Modified.IsZero() {
		f = append(f, Field{"Modified", d.Modified.Format(TimeLayout) + " (" + humanize.Time(d.Modified) + ")"})
	}
	if !d.Accessed.IsZero() {
		f = append(f, Field{"Accessed", d.Accessed.Format(TimeLayout)})
	}
	if img := d.Image; img != nil {
		if img.Width > 0 {
			f = append(f, Field{"Dimensions", fmt.Sprintf("%d × %d", img.Width, img.Height)})
		}
		if img.Camera != "" {
			f = append(f, Field{"Camera", img.Camera})
		}
		if !img.Taken.IsZero() {
			f = append(f, Field{"Taken", img.Taken.Format(TimeLayout)})
		}
	}
	return append(f, Field{"Path", d.Path})
}

// TruncateWidth shortens s to at most width display cells, ending in an
// ellipsis when cut. Wide runes count double.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
