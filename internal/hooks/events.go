// ABOUTME: One convenience entry point per lifecycle event for the agent loop
// ABOUTME: Each builds the event's typed input and delegates to ExecuteHooks

package hooks

import (
	"context"
	"time"
)

// PreToolUse fires before toolName runs with toolInput.
func (m *Manager) PreToolUse(ctx context.Context, toolName string, toolInput map[string]any) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, PreToolUseInput{ToolName: toolName, ToolInput: toolInput})
}

// PostToolUse fires after toolName returned toolResult or failed with toolErr.
func (m *Manager) PostToolUse(ctx context.Context, toolName string, toolInput map[string]any, toolResult any, toolErr error) (HookEventResult, error) {
	in := PostToolUseInput{ToolName: toolName, ToolInput: toolInput, ToolResult: toolResult}
	if toolErr != nil {
		in.Error = toolErr.Error()
	}
	return m.ExecuteHooks(ctx, in)
}

// UserPromptSubmit fires when the user submits prompt.
func (m *Manager) UserPromptSubmit(ctx context.Context, prompt string) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, UserPromptSubmitInput{Prompt: prompt})
}

// Stop fires when the agent is about to stop.
func (m *Manager) Stop(ctx context.Context, reason string) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, StopInput{Reason: reason})
}

// SubagentStop fires when agentName is about to stop.
func (m *Manager) SubagentStop(ctx context.Context, agentName, reason string) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, SubagentStopInput{AgentName: agentName, Reason: reason})
}

// SessionStart fires when a session begins; source may be empty.
func (m *Manager) SessionStart(ctx context.Context, source string) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, SessionStartInput{Source: source})
}

// SessionEnd fires when the session closes after duration.
func (m *Manager) SessionEnd(ctx context.Context, duration time.Duration) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, SessionEndInput{Duration: duration})
}

// PreCompact fires before the context is compacted.
func (m *Manager) PreCompact(ctx context.Context, currentTokens, maxTokens int) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, PreCompactInput{CurrentTokens: currentTokens, MaxTokens: maxTokens})
}

// Notification fires for agent notifications.
func (m *Manager) Notification(ctx context.Context, notificationType, message string) (HookEventResult, error) {
	return m.ExecuteHooks(ctx, NotificationInput{Type: notificationType, Message: message})
}
