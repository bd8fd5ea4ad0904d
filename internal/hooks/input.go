// ABOUTME: Event-specific hook inputs as a sealed sum type keyed by HookEvent
// ABOUTME: One struct per event so illegal field combinations cannot be built

package hooks

import "time"

// HookInput is the payload for one event. Only the types in this file
// implement it.
type HookInput interface {
	Event() HookEvent
	isHookInput()
}

// PreToolUseInput is raised before a tool runs.
type PreToolUseInput struct {
	ToolName  string
	ToolInput map[string]any
}

// PostToolUseInput is raised after a tool returns. Error is the tool's
// error text, empty on success.
type PostToolUseInput struct {
	ToolName   string
	ToolInput  map[string]any
	ToolResult any
	Error      string
}

// UserPromptSubmitInput is raised when the user submits a prompt.
type UserPromptSubmitInput struct {
	Prompt string
}

// StopInput is raised when the main agent wants to stop.
type StopInput struct {
	Reason string
}

// SubagentStopInput is raised when a subagent wants to stop.
type SubagentStopInput struct {
	AgentName string
	Reason    string
}

// SessionStartInput is raised once per session. Source is optional
// ("startup", "resume", "clear").
type SessionStartInput struct {
	Source string
}

// SessionEndInput is raised when the session closes.
type SessionEndInput struct {
	Duration time.Duration
}

// PreCompactInput is raised before context compaction. Trigger is optional
// ("manual" or "auto").
type PreCompactInput struct {
	CurrentTokens int
	MaxTokens     int
	Trigger       string
}

// NotificationInput carries an agent notification.
type NotificationInput struct {
	Type    string
	Message string
}

func (PreToolUseInput) Event() HookEvent       { return PreToolUse }
func (PostToolUseInput) Event() HookEvent      { return PostToolUse }
func (UserPromptSubmitInput) Event() HookEvent { return UserPromptSubmit }
func (StopInput) Event() HookEvent             { return Stop }
func (SubagentStopInput) Event() HookEvent     { return SubagentStop }
func (SessionStartInput) Event() HookEvent     { return SessionStart }
func (SessionEndInput) Event() HookEvent       { return SessionEnd }
func (PreCompactInput) Event() HookEvent       { return PreCompact }
func (NotificationInput) Event() HookEvent     { return Notification }

func (PreToolUseInput) isHookInput()       {}
func (PostToolUseInput) isHookInput()      {}
func (UserPromptSubmitInput) isHookInput() {}
func (StopInput) isHookInput()             {}
func (SubagentStopInput) isHookInput()     {}
func (SessionStartInput) isHookInput()     {}
func (SessionEndInput) isHookInput()       {}
func (PreCompactInput) isHookInput()       {}
func (NotificationInput) isHookInput()     {}

// toolNameOf returns the tool name for tool events and "" otherwise.
func toolNameOf(in HookInput) string {
	switch v := in.(type) {
	case PreToolUseInput:
		return v.ToolName
	case PostToolUseInput:
		return v.ToolName
	}
	return ""
}
