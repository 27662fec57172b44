//go:build !windows

package media

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcess(cmd *exec.Cmd) error {
	return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
}

func suspend(cmd *exec.Cmd) error {
	return unix.Kill(-cmd.Process.Pid, unix.SIGSTOP)
}

func resume(cmd *exec.Cmd) error {
	return unix.Kill(-cmd.Process.Pid, unix.SIGCONT)
}
