// ABOUTME: Unix-specific process group management for hook commands
// ABOUTME: Sets Setpgid and kills the whole group with SIGKILL on timeout

//go:build unix

package hooks

import (
	"os/exec"
	"syscall"
)

// setProcGroup runs the command in its own process group so children of the
// shell die with it.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcGroup kills the entire process group of the command.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		return cmd.Process.Kill()
	}
	return nil
}
