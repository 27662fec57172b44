//go:build linux

package app

import (
	"os/exec"
)

// openers are tried in order; xdg-open is the freedesktop default.
var openers = [][]string{
	{"xdg-open"},
	{"gio", "open"},
	{"kde-open5"},
}

// platformOpen hands path to the desktop's default application.
func platformOpen(path string) error {
	var firstErr error
	for _, o := range openers {
		bin, err := exec.LookPath(o[0])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return exec.Command(bin, append(o[1:], path)...).Start()
	}
	return firstErr
}
