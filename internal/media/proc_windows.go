//go:build windows

package media

import (
	"errors"
	"os/exec"
	"syscall"
)

var errNoSuspend = errors.New("process suspension not supported")

func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

func killProcess(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}

// Pause falls back to stop-and-restart.
func suspend(*exec.Cmd) error { return errNoSuspend }

func resume(*exec.Cmd) error { return errNoSuspend }
