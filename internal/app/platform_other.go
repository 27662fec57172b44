//go:build !linux && !darwin && !windows

package app

import "os/exec"

func platformOpen(path string) error {
	return exec.Command("xdg-open", path).Start()
}
