// ABOUTME: Shell command runner for command hooks with a wall-clock timeout
// ABOUTME: Pipes the encoded input to stdin once and captures stdout/stderr and exit code

package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for the output pipes to close once the
// shell has exited or been killed. A hook that backgrounds a child still
// holding stdout ("notify &") pays this once; the child keeps running but
// loses its output pipes.
const waitDelay = 250 * time.Millisecond

// commandRun is the raw outcome of one process execution.
type commandRun struct {
	exitCode int
	stdout   string
	stderr   string
}

// errHookTimeout marks a hook that exceeded its deadline.
var errHookTimeout = errors.New("hook timed out")

// runCommand executes command through shell with stdin piped in and kills
// the process group when timeout elapses. A non-zero exit is not an error;
// only spawn failures, timeouts and cancellation are.
func runCommand(ctx context.Context, shell []string, command, dir string, env []string, stdin []byte, timeout time.Duration) (commandRun, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, shell[1:]...), command)
	cmd := exec.CommandContext(runCtx, shell[0], args...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = bytes.NewReader(stdin)
	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killProcGroup(cmd)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runCtx.Err() != nil {
		if ctx.Err() != nil {
			return commandRun{}, fmt.Errorf("hook canceled: %w", ctx.Err())
		}
		return commandRun{}, fmt.Errorf("%w after %v", errHookTimeout, timeout)
	}

	run := commandRun{stdout: stdout.String(), stderr: stderr.String()}
	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			run.exitCode = exitErr.ExitCode()
		case errors.Is(runErr, exec.ErrWaitDelay) && cmd.ProcessState != nil:
			// A background child kept stdout open after the shell exited.
			run.exitCode = cmd.ProcessState.ExitCode()
		default:
			return commandRun{}, fmt.Errorf("start hook command: %w", runErr)
		}
	}
	return run, nil
}
