// ABOUTME: Hook lifecycle types: events, definitions, groups, context, outputs, results
// ABOUTME: Defines the contract between the agent loop and the hook manager

package hooks

import (
	"errors"
	"fmt"
	"time"

	"github.com/LordFoxFairy/nano-code-sub000/internal/config"
)

// HookEvent identifies a lifecycle event in the agent loop.
type HookEvent string

const (
	PreToolUse       HookEvent = "PreToolUse"
	PostToolUse      HookEvent = "PostToolUse"
	UserPromptSubmit HookEvent = "UserPromptSubmit"
	Stop             HookEvent = "Stop"
	SubagentStop     HookEvent = "SubagentStop"
	SessionStart     HookEvent = "SessionStart"
	SessionEnd       HookEvent = "SessionEnd"
	PreCompact       HookEvent = "PreCompact"
	Notification     HookEvent = "Notification"
)

var allEvents = []HookEvent{
	PreToolUse,
	PostToolUse,
	UserPromptSubmit,
	Stop,
	SubagentStop,
	SessionStart,
	SessionEnd,
	PreCompact,
	Notification,
}

// ErrUnknownEvent is returned for event names outside the fixed set. It is
// the same sentinel config.Hooks.Validate wraps.
var ErrUnknownEvent = config.ErrUnknownEvent

// ErrInvalidHook is returned when a hook group cannot be registered.
var ErrInvalidHook = errors.New("invalid hook")

// AllEvents returns every hook event in canonical order.
func AllEvents() []HookEvent {
	out := make([]HookEvent, len(allEvents))
	copy(out, allEvents)
	return out
}

// EventNames returns the string form of every event in canonical order.
func EventNames() []string {
	names := make([]string, len(allEvents))
	for i, e := range allEvents {
		names[i] = string(e)
	}
	return names
}

// ParseEvent validates name against the fixed event set. The error carries a
// suggestion when the name is close to a known event.
func ParseEvent(name string) (HookEvent, error) {
	for _, e := range allEvents {
		if string(e) == name {
			return e, nil
		}
	}
	if s := config.SuggestName(name, EventNames()); s != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownEvent, name, s)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownEvent, name)
}

// usesToolMatcher reports whether groups for this event are filtered by tool name.
func (e HookEvent) usesToolMatcher() bool {
	return e == PreToolUse || e == PostToolUse
}

// HookType selects how a hook definition is executed.
type HookType string

const (
	TypeCommand HookType = "command"
	TypePrompt  HookType = "prompt"
)

// HookDefinition is one registered hook.
type HookDefinition struct {
	ID      string
	Type    HookType
	Command string
	Prompt  string
	Timeout time.Duration // zero means the executor default for Type
	Once    bool
	Enabled *bool // nil means enabled
}

// IsEnabled reports whether the hook should run; definitions default to enabled.
func (d HookDefinition) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// HookGroup pairs a tool-name matcher with an ordered list of hooks.
type HookGroup struct {
	Matcher string
	Hooks   []HookDefinition
}

// HookContext is the session-scoped environment handed to every hook.
type HookContext struct {
	SessionID      string
	CWD            string
	ProjectDir     string
	PluginRoot     string
	TranscriptPath string
	EnvFilePath    string
}

// projectDir returns ProjectDir, falling back to CWD.
func (c HookContext) projectDir() string {
	if c.ProjectDir != "" {
		return c.ProjectDir
	}
	return c.CWD
}

// ContextUpdate is a partial merge onto HookContext; nil fields are left alone.
type ContextUpdate struct {
	SessionID      *string
	CWD            *string
	ProjectDir     *string
	PluginRoot     *string
	TranscriptPath *string
	EnvFilePath    *string
}

func (u ContextUpdate) apply(c *HookContext) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.SessionID, u.SessionID)
	set(&c.CWD, u.CWD)
	set(&c.ProjectDir, u.ProjectDir)
	set(&c.PluginRoot, u.PluginRoot)
	set(&c.TranscriptPath, u.TranscriptPath)
	set(&c.EnvFilePath, u.EnvFilePath)
}

// HookOutput is what a single hook returns, on stdout or from the LLM.
type HookOutput struct {
	Continue           bool
	SystemMessage      string
	AdditionalContext  string
	HookSpecificOutput map[string]any
}

// HookExecutionResult is the normalized outcome of running one hook.
// Success reports infrastructure health, not the block/continue verdict.
type HookExecutionResult struct {
	HookID   string
	Success  bool
	ExitCode *int
	Output   *HookOutput
	Duration time.Duration
	Error    string
}

// continues treats a missing output as continue=true.
func (r HookExecutionResult) continues() bool {
	return r.Output == nil || r.Output.Continue
}

// HookEventResult aggregates every hook run for one event.
type HookEventResult struct {
	Event              HookEvent
	AllPassed          bool
	Continue           bool
	SystemMessages     []string
	AdditionalContext  []string
	HookSpecificOutput map[string]any
	Results            []HookExecutionResult
	TotalDuration      time.Duration
}

// Blocked is the negation of Continue, for agent loops that read better that way.
func (r HookEventResult) Blocked() bool {
	return !r.Continue
}
