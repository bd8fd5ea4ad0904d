// ABOUTME: Executor runs one hook definition (command or prompt) to a normalized result
// ABOUTME: Interprets the 0 / 2 / other exit-code protocol; never returns an error

package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/LordFoxFairy/nano-code-sub000/internal/log"
)

const (
	// DefaultCommandTimeout bounds command hooks without their own timeout.
	DefaultCommandTimeout = 60 * time.Second
	// DefaultPromptTimeout bounds prompt hooks without their own timeout.
	DefaultPromptTimeout = 30 * time.Second

	// BlockingExitCode is the exit status a command hook uses to veto.
	BlockingExitCode = 2

	// logStderrWidth caps stderr echoed into warning logs.
	logStderrWidth = 200
)

var errPromptPanic = errors.New("prompt callback panicked")

// PromptFunc sends a prompt to a language model and returns its text reply.
type PromptFunc func(ctx context.Context, prompt string) (string, error)

// ExecutorOptions configures an Executor. Zero values select defaults.
type ExecutorOptions struct {
	Prompt         PromptFunc
	CommandTimeout time.Duration
	PromptTimeout  time.Duration
	// Shell is the interpreter argv; the command is appended as the last argument.
	Shell []string
}

// Executor runs individual hooks.
type Executor struct {
	prompt         PromptFunc
	commandTimeout time.Duration
	promptTimeout  time.Duration
	shell          []string
}

// NewExecutor creates an executor, filling unset options with defaults.
func NewExecutor(opts ExecutorOptions) *Executor {
	e := &Executor{
		prompt:         opts.Prompt,
		commandTimeout: opts.CommandTimeout,
		promptTimeout:  opts.PromptTimeout,
		shell:          opts.Shell,
	}
	if e.commandTimeout <= 0 {
		e.commandTimeout = DefaultCommandTimeout
	}
	if e.promptTimeout <= 0 {
		e.promptTimeout = DefaultPromptTimeout
	}
	if len(e.shell) == 0 {
		e.shell = []string{"sh", "-c"}
	}
	return e
}

// ExecuteHook runs def against input. Every failure, including bad
// configuration, is reported through the result.
func (e *Executor) ExecuteHook(ctx context.Context, def HookDefinition, input HookInput, hctx HookContext) HookExecutionResult {
	start := time.Now()

	var res HookExecutionResult
	switch def.Type {
	case TypeCommand:
		res = e.executeCommand(ctx, def, input, hctx)
	case TypePrompt:
		res = e.executePrompt(ctx, def, input, hctx)
	default:
		res = HookExecutionResult{Error: fmt.Sprintf("unknown hook type %q", def.Type)}
	}

	res.HookID = def.ID
	res.Duration = time.Since(start)
	if !res.Success && res.Error != "" {
		log.Debug("hook %s (%s) failed: %s", def.ID, input.Event(), res.Error)
	}
	return res
}

func (e *Executor) timeoutFor(def HookDefinition) time.Duration {
	if def.Timeout > 0 {
		return def.Timeout
	}
	if def.Type == TypePrompt {
		return e.promptTimeout
	}
	return e.commandTimeout
}

func (e *Executor) executeCommand(ctx context.Context, def HookDefinition, input HookInput, hctx HookContext) HookExecutionResult {
	if strings.TrimSpace(def.Command) == "" {
		return HookExecutionResult{Error: "command hook has no command"}
	}

	stdin, err := encodeInput(input, hctx)
	if err != nil {
		return HookExecutionResult{Error: fmt.Sprintf("encode hook input: %v", err)}
	}

	command := substituteCommand(def.Command, hctx)
	env := append(os.Environ(), hookEnv(hctx)...)

	run, err := runCommand(ctx, e.shell, command, hctx.CWD, env, stdin, e.timeoutFor(def))
	if err != nil {
		return HookExecutionResult{Error: err.Error()}
	}

	code := run.exitCode
	res := HookExecutionResult{ExitCode: &code}
	stderr := strings.TrimSpace(run.stderr)

	switch code {
	case 0:
		out := parseCommandOutput(run.stdout)
		res.Success = true
		res.Output = &out
	case BlockingExitCode:
		msg := stderr
		if msg == "" {
			msg = fmt.Sprintf("blocked by hook %s", def.ID)
		}
		res.Output = &HookOutput{Continue: false, SystemMessage: msg}
		res.Error = "hook requested block (exit code 2)"
	default:
		log.Warn("hook %s exited with code %d: %s", def.ID, code, runewidth.Truncate(stderr, logStderrWidth, "..."))
		res.Error = fmt.Sprintf("hook exited with code %d", code)
		if stderr != "" {
			res.Error += ": " + stderr
		}
	}
	return res
}

// parseCommandOutput reads stdout of a successful hook: JSON HookOutput when
// it parses, otherwise the trimmed text becomes a system message.
func parseCommandOutput(stdout string) HookOutput {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return HookOutput{Continue: true}
	}
	out, err := decodeOutput([]byte(trimmed))
	if err != nil {
		return HookOutput{Continue: true, SystemMessage: trimmed}
	}
	return out
}

// promptReply carries the callback outcome out of its goroutine.
type promptReply struct {
	response string
	err      error
}

func (e *Executor) executePrompt(ctx context.Context, def HookDefinition, input HookInput, hctx HookContext) HookExecutionResult {
	if e.prompt == nil {
		return HookExecutionResult{Error: "prompt hook requires an LLM callback but none is configured"}
	}
	if strings.TrimSpace(def.Prompt) == "" {
		return HookExecutionResult{Error: "prompt hook has no prompt"}
	}

	timeout := e.timeoutFor(def)
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so a callback that ignores pctx can still finish and exit.
	done := make(chan promptReply, 1)
	prompt := substitutePrompt(def.Prompt, input, hctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- promptReply{err: fmt.Errorf("%w: %v", errPromptPanic, r)}
			}
		}()
		response, err := e.prompt(pctx, prompt)
		done <- promptReply{response: response, err: err}
	}()

	var reply promptReply
	select {
	case reply = <-done:
	case <-pctx.Done():
		if ctx.Err() != nil {
			return HookExecutionResult{Error: fmt.Sprintf("hook canceled: %v", ctx.Err())}
		}
		return HookExecutionResult{Error: fmt.Sprintf("%v after %v", errHookTimeout, timeout)}
	}

	if reply.err != nil {
		switch {
		case errors.Is(reply.err, errPromptPanic):
			return HookExecutionResult{Error: reply.err.Error()}
		case errors.Is(pctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			return HookExecutionResult{Error: fmt.Sprintf("%v after %v", errHookTimeout, timeout)}
		}
		return HookExecutionResult{Error: fmt.Sprintf("prompt callback failed: %v", reply.err)}
	}
	if strings.TrimSpace(reply.response) == "" {
		return HookExecutionResult{Error: "prompt callback returned an empty response"}
	}

	out := parsePromptResponse(def.ID, reply.response)
	return HookExecutionResult{Success: true, Output: &out}
}
