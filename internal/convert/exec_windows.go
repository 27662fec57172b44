//go:build windows

package convert

import "os/exec"

func configureProcess(cmd *exec.Cmd) {}
