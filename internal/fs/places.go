package fs

import (
	"os"
	"path/filepath"
)

type PlaceKind int

const (
	PlaceShortcut PlaceKind = iota
	PlaceDrive
)

// Place is a sidebar target.
type Place struct {
	Name string
	Path string
	Kind PlaceKind
}

// standardDirs are the home sub-directories offered as shortcuts.
var standardDirs = []string{"Desktop", "Documents", "Downloads", "Pictures", "Music", "Videos"}

// Shortcuts returns Home plus the standard folders under home that exist.
func Shortcuts(home string) []Place {
	if home == "" {
		return nil
	}
	out := []Place{{Name: "Home", Path: home, Kind: PlaceShortcut}}
	for _, name := range standardDirs {
		p := filepath.Join(home, name)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			out = append(out, Place{Name: name, Path: p, Kind: PlaceShortcut})
		}
	}
	return out
}

// Places returns shortcuts followed by mounted drives. Drive listing can
// block on dead network mounts, so call it off the UI goroutine.
func Places(home string) []Place {
	return append(Shortcuts(home), listDrives()...)
}
