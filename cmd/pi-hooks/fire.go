// ABOUTME: fire subcommand: builds the event input from flags and runs the hooks once
// ABOUTME: -llm-command turns an external command into the prompt-hook callback

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/mailru/easyjson/jlexer"

	"github.com/LordFoxFairy/nano-code-sub000/pkg/sdk"
)

func runFire(args []string, stdout, stderr io.Writer) (int, error) {
	a, err := parseFireFlags(args, stderr)
	if err != nil {
		return exitError, err
	}

	event, err := sdk.ParseEvent(a.event)
	if err != nil {
		return exitError, err
	}
	input, err := buildInput(event, a)
	if err != nil {
		return exitError, err
	}

	opts := []sdk.Option{
		sdk.WithMaxConcurrency(a.maxConcurrency),
		sdk.WithSessionID(a.sessionID),
		sdk.WithProjectDir(a.projectDir),
		sdk.WithPluginRoot(a.pluginRoot),
	}
	if a.sequential {
		opts = append(opts, sdk.WithSequential())
	}
	if a.llmCommand != "" {
		opts = append(opts, sdk.WithPromptFunc(commandPrompt(a.llmCommand)))
	}

	client, _, err := newClient(a.commonArgs, opts...)
	if err != nil {
		return exitError, err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := client.Fire(ctx, input)
	if err != nil {
		return exitError, err
	}

	if a.jsonOut {
		if err := writeJSON(stdout, res); err != nil {
			return exitError, err
		}
	} else {
		newRenderer(stdout).result(res)
	}

	if res.Blocked() {
		return exitBlock, nil
	}
	return exitOK, nil
}

// buildInput maps flags onto the typed input for event.
func buildInput(event sdk.Event, a fireArgs) (sdk.Input, error) {
	switch event {
	case sdk.PreToolUse, sdk.PostToolUse:
		if a.tool == "" {
			return nil, fmt.Errorf("%s requires -tool", event)
		}
		toolInput, err := parseObject(a.input)
		if err != nil {
			return nil, fmt.Errorf("-input: %w", err)
		}
		if event == sdk.PreToolUse {
			return sdk.PreToolUseInput{ToolName: a.tool, ToolInput: toolInput}, nil
		}
		in := sdk.PostToolUseInput{ToolName: a.tool, ToolInput: toolInput, Error: a.toolErr}
		if a.result != "" {
			in.ToolResult = a.result
		}
		return in, nil
	case sdk.UserPromptSubmit:
		return sdk.UserPromptSubmitInput{Prompt: a.prompt}, nil
	case sdk.Stop:
		return sdk.StopInput{Reason: a.reason}, nil
	case sdk.SubagentStop:
		return sdk.SubagentStopInput{AgentName: a.agent, Reason: a.reason}, nil
	case sdk.SessionStart:
		return sdk.SessionStartInput{Source: a.source}, nil
	case sdk.SessionEnd:
		return sdk.SessionEndInput{Duration: a.duration}, nil
	case sdk.PreCompact:
		return sdk.PreCompactInput{CurrentTokens: a.tokens, MaxTokens: a.maxTokens}, nil
	case sdk.Notification:
		return sdk.NotificationInput{Type: a.notifyType, Message: a.message}, nil
	}
	return nil, fmt.Errorf("unsupported event %q", event)
}

// parseObject decodes a JSON object flag; empty means no input.
func parseObject(s string) (map[string]any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	in := jlexer.Lexer{Data: []byte(s)}
	v := in.Interface()
	in.Consumed()
	if err := in.Error(); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("expected a JSON object")
	}
	return obj, nil
}

// commandPrompt answers prompt hooks by running command through sh with the
// prompt on stdin. Its trimmed stdout is the reply.
func commandPrompt(command string) sdk.PromptFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Stdin = strings.NewReader(prompt)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", fmt.Errorf("%w: %s", err, msg)
			}
			return "", err
		}
		return strings.TrimSpace(stdout.String()), nil
	}
}
