//go:build windows

package app

import "os/exec"

// platformOpen launches path through the shell's file associations.
func platformOpen(path string) error {
	// The empty argument is start's window title.
	return exec.Command("cmd", "/c", "start", "", path).Start()
}
