// ABOUTME: CLI flag parsing using stdlib flag package, one FlagSet per subcommand
// ABOUTME: Shared flags (-config, -log-level) are registered on every subcommand

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// commonArgs are accepted by every subcommand that loads hooks.
type commonArgs struct {
	configs  stringList
	logLevel string
}

func (c *commonArgs) register(fs *flag.FlagSet) {
	fs.Var(&c.configs, "config", "Hooks file (JSON, YAML, or Markdown frontmatter); repeatable. Defaults to the standard locations")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

type fireArgs struct {
	commonArgs
	event          string
	tool           string
	input          string
	result         string
	toolErr        string
	prompt         string
	reason         string
	agent          string
	source         string
	duration       time.Duration
	tokens         int
	maxTokens      int
	notifyType     string
	message        string
	sequential     bool
	maxConcurrency int
	llmCommand     string
	pluginRoot     string
	projectDir     string
	sessionID      string
	jsonOut        bool
}

func parseFireFlags(args []string, stderr io.Writer) (fireArgs, error) {
	var a fireArgs
	fs := newFlagSet("fire", stderr)
	a.register(fs)

	fs.StringVar(&a.event, "event", "", "Event to fire (required)")
	fs.StringVar(&a.tool, "tool", "", "Tool name for PreToolUse/PostToolUse")
	fs.StringVar(&a.input, "input", "", "Tool input as a JSON object")
	fs.StringVar(&a.result, "result", "", "Tool result for PostToolUse")
	fs.StringVar(&a.toolErr, "error", "", "Tool error for PostToolUse")
	fs.StringVar(&a.prompt, "prompt", "", "User prompt for UserPromptSubmit")
	fs.StringVar(&a.reason, "reason", "", "Stop reason for Stop/SubagentStop")
	fs.StringVar(&a.agent, "agent", "", "Subagent name for SubagentStop")
	fs.StringVar(&a.source, "source", "", "Session source for SessionStart")
	fs.DurationVar(&a.duration, "duration", 0, "Session duration for SessionEnd")
	fs.IntVar(&a.tokens, "tokens", 0, "Current token count for PreCompact")
	fs.IntVar(&a.maxTokens, "max-tokens", 0, "Token limit for PreCompact")
	fs.StringVar(&a.notifyType, "type", "info", "Notification type")
	fs.StringVar(&a.message, "message", "", "Notification message")
	fs.BoolVar(&a.sequential, "sequential", false, "Run hooks one at a time, stopping at the first block")
	fs.IntVar(&a.maxConcurrency, "max-concurrency", 0, "Cap on concurrent hooks (0 = unlimited)")
	fs.StringVar(&a.llmCommand, "llm-command", "", "Shell command answering prompt hooks (prompt on stdin, reply on stdout)")
	fs.StringVar(&a.pluginRoot, "plugin-root", "", "Directory substituted for ${PLUGIN_ROOT} and ${SKILL_ROOT}")
	fs.StringVar(&a.projectDir, "project-dir", "", "Project directory passed to hooks (defaults to cwd)")
	fs.StringVar(&a.sessionID, "session", "", "Session id (generated when empty)")
	fs.BoolVar(&a.jsonOut, "json", false, "Print the result as JSON")

	if err := fs.Parse(args); err != nil {
		return a, err
	}
	if a.event == "" {
		return a, fmt.Errorf("fire: -event is required")
	}
	return a, nil
}

func parseCommonFlags(name string, args []string, stderr io.Writer) (commonArgs, error) {
	var a commonArgs
	fs := newFlagSet(name, stderr)
	a.register(fs)
	err := fs.Parse(args)
	return a, err
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pi-hooks "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}
