// ABOUTME: Process termination fallback for platforms without process groups
// ABOUTME: Kills only the shell process; WaitDelay bounds any orphaned pipes

//go:build !unix

package hooks

import "os/exec"

func setProcGroup(cmd *exec.Cmd) {}

func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
