// ABOUTME: Wire codec for hooks: HookInput to stdin JSON, stdout/LLM JSON to HookOutput
// ABOUTME: Uses easyjson jwriter/jlexer for stable field order and reflection-free decoding

package hooks

import (
	"encoding/json"
	"strings"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// encodeInput renders the JSON document written to a command hook's stdin.
// Context fields come first so every event shares the same envelope.
func encodeInput(in HookInput, hctx HookContext) ([]byte, error) {
	w := &jwriter.Writer{}
	w.RawByte('{')
	w.RawString(`"event":`)
	w.String(string(in.Event()))
	w.RawString(`,"hook_event_name":`)
	w.String(string(in.Event()))
	stringField(w, "session_id", hctx.SessionID)
	stringField(w, "cwd", hctx.CWD)
	stringField(w, "project_dir", hctx.projectDir())
	stringField(w, "transcript_path", hctx.TranscriptPath)

	switch v := in.(type) {
	case PreToolUseInput:
		stringField(w, "tool_name", v.ToolName)
		anyField(w, "tool_input", v.ToolInput)
	case PostToolUseInput:
		stringField(w, "tool_name", v.ToolName)
		anyField(w, "tool_input", v.ToolInput)
		if v.ToolResult != nil {
			anyField(w, "tool_result", v.ToolResult)
		}
		stringField(w, "error", v.Error)
	case UserPromptSubmitInput:
		stringField(w, "user_prompt", v.Prompt)
		// Claude Code hook scripts read "prompt".
		stringField(w, "prompt", v.Prompt)
	case StopInput:
		stringField(w, "stop_reason", v.Reason)
	case SubagentStopInput:
		stringField(w, "agent_name", v.AgentName)
		stringField(w, "stop_reason", v.Reason)
	case SessionStartInput:
		stringField(w, "source", v.Source)
	case SessionEndInput:
		w.RawString(`,"session_duration_ms":`)
		w.Int64(v.Duration.Milliseconds())
	case PreCompactInput:
		w.RawString(`,"current_token_count":`)
		w.Int(v.CurrentTokens)
		w.RawString(`,"max_tokens":`)
		w.Int(v.MaxTokens)
		stringField(w, "trigger", v.Trigger)
	case NotificationInput:
		stringField(w, "notification_type", v.Type)
		stringField(w, "message", v.Message)
	}

	w.RawByte('}')
	return w.BuildBytes()
}

// stringField writes ,"name":"value" and skips empty values.
func stringField(w *jwriter.Writer, name, value string) {
	if value == "" {
		return
	}
	w.RawString(`,"` + name + `":`)
	w.String(value)
}

func anyField(w *jwriter.Writer, name string, value any) {
	w.RawString(`,"` + name + `":`)
	if value == nil {
		w.RawString("null")
		return
	}
	w.Raw(json.Marshal(value))
}

// marshalValue renders v as compact JSON for prompt templates; nil becomes "".
func marshalValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// decodeOutput parses a HookOutput JSON object. A missing "continue" means
// true. The Claude Code "decision"/"reason" and "stopReason" fields are
// honored as aliases for continue=false and systemMessage.
func decodeOutput(data []byte) (HookOutput, error) {
	out := HookOutput{Continue: true}
	var decision, reason, stopReason string

	in := &jlexer.Lexer{Data: data}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "continue":
			out.Continue = in.Bool()
		case "systemMessage":
			out.SystemMessage = in.String()
		case "additionalContext":
			out.AdditionalContext = in.String()
		case "hookSpecificOutput":
			if m, ok := in.Interface().(map[string]any); ok && len(m) > 0 {
				out.HookSpecificOutput = m
			}
		case "decision":
			decision = in.String()
		case "reason":
			reason = in.String()
		case "stopReason":
			stopReason = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()
	if err := in.Error(); err != nil {
		return HookOutput{}, err
	}

	if strings.EqualFold(decision, "block") {
		out.Continue = false
	}
	if out.SystemMessage == "" {
		switch {
		case reason != "" && !out.Continue:
			out.SystemMessage = reason
		case stopReason != "" && !out.Continue:
			out.SystemMessage = stopReason
		}
	}
	if out.AdditionalContext == "" && out.HookSpecificOutput != nil {
		if ac, ok := out.HookSpecificOutput["additionalContext"].(string); ok {
			out.AdditionalContext = ac
		}
	}
	return out, nil
}
