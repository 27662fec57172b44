// Package classify maps file paths to preview categories using fixed
// extension tables.
package classify

import (
	"os"
	"path/filepath"
	"strings"
)

// Category is the content class of a path.
type Category int

const (
	Unknown Category = iota
	Directory
	Image
	Audio
	Video
	Pdf
	Office
	Text
)

var categoryNames = [...]string{
	Unknown:   "Unknown",
	Directory: "Directory",
	Image:     "Image",
	Audio:     "Audio",
	Video:     "Video",
	Pdf:       "PDF",
	Office:    "Office document",
	Text:      "Text",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// IsMedia reports whether c plays in the media surface.
func (c Category) IsMedia() bool { return c == Audio || c == Video }

var (
	imageExts = set("png", "jpg", "jpeg", "gif", "bmp", "webp", "tif", "tiff", "ico", "svg", "heic", "heif")
	audioExts = set("mp3", "wav", "flac", "aac", "ogg", "m4a", "wma", "ape", "opus")
	videoExts = set("mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v", "mpg", "mpeg", "3gp")
	pdfExts   = set("pdf")

	officeExts = set(
		"doc", "docx", "dot", "dotx",
		"xls", "xlsx", "xlt", "xltx",
		"ppt", "pptx", "pot", "potx",
		"odt", "ott", "ods", "ots", "odp", "otp",
		"rtf", "wps", "et", "dps",
	)

	textExts = set(
		"txt", "md", "markdown", "org",
		"c", "cc", "cpp", "h", "hpp", "go", "rs", "py", "js", "ts",
		"json", "yml", "yaml", "toml", "xml", "html", "htm", "css",
		"ini", "conf", "cfg", "log", "sh", "bash", "bat", "cmake", "pro", "csv",
	)
)

func set(exts ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		m[e] = struct{}{}
	}
	return m
}

// Ext returns the lower-cased extension of path without the dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Classify returns the category for path from its extension alone. It does
// no I/O, so directories are never reported; use ClassifyPath for that.
func Classify(path string) Category {
	ext := Ext(path)
	if ext == "" {
		return Unknown
	}
	switch {
	case has(imageExts, ext):
		return Image
	case has(audioExts, ext):
		return Audio
	case has(videoExts, ext):
		return Video
	case has(pdfExts, ext):
		return Pdf
	case has(officeExts, ext):
		return Office
	case has(textExts, ext):
		return Text
	}
	return Unknown
}

// ClassifyPath checks whether path is a directory and otherwise defers to
// Classify. A path that cannot be stat'ed is classified by extension.
func ClassifyPath(path string) Category {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Directory
	}
	return Classify(path)
}

func has(m map[string]struct{}, ext string) bool {
	_, ok := m[ext]
	return ok
}

// IsOffice reports whether path has an office document extension.
func IsOffice(path string) bool { return has(officeExts, Ext(path)) }

// Extensions returns the extensions in c's table in no particular order.
func Extensions(c Category) []string {
	var m map[string]struct{}
	switch c {
	case Image:
		m = imageExts
	case Audio:
		m = audioExts
	case Video:
		m = videoExts
	case Pdf:
		m = pdfExts
	case Office:
		m = officeExts
	case Text:
		m = textExts
	default:
		return nil
	}
	out := make([]string, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	return out
}
