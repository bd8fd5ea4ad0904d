// ABOUTME: Placeholder substitution for command strings and prompt templates
// ABOUTME: Fixed allow-lists only; unknown placeholders are left untouched

package hooks

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// substituteCommand replaces ${SKILL_ROOT}, ${PLUGIN_ROOT}, ${PROJECT_DIR}
// and ${CWD} with context values before the shell sees the command.
// Placeholders outside the allow-list, or whose value is empty, stay literal.
func substituteCommand(command string, hctx HookContext) string {
	if !strings.Contains(command, "${") {
		return command
	}
	values := map[string]string{
		"SKILL_ROOT":  hctx.PluginRoot,
		"PLUGIN_ROOT": hctx.PluginRoot,
		"PROJECT_DIR": hctx.projectDir(),
		"CWD":         hctx.CWD,
	}
	return placeholderPattern.ReplaceAllStringFunc(command, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := values[name]; ok && v != "" {
			return v
		}
		return match
	})
}

// substitutePrompt fills $TOOL_NAME, $TOOL_INPUT, $TOOL_RESULT, $USER_PROMPT,
// $EVENT and $ARGUMENTS from the input. Fields the event does not carry
// become "".
func substitutePrompt(template string, in HookInput, hctx HookContext) string {
	var toolName, toolInput, toolResult, userPrompt string
	switch v := in.(type) {
	case PreToolUseInput:
		toolName = v.ToolName
		toolInput = marshalValue(v.ToolInput)
	case PostToolUseInput:
		toolName = v.ToolName
		toolInput = marshalValue(v.ToolInput)
		toolResult = marshalValue(v.ToolResult)
	case UserPromptSubmitInput:
		userPrompt = v.Prompt
	}

	var arguments string
	if data, err := encodeInput(in, hctx); err == nil {
		arguments = string(data)
	}

	r := strings.NewReplacer(
		"$TOOL_NAME", toolName,
		"$TOOL_INPUT", toolInput,
		"$TOOL_RESULT", toolResult,
		"$USER_PROMPT", userPrompt,
		"$EVENT", string(in.Event()),
		"$ARGUMENTS", arguments,
	)
	return r.Replace(template)
}

// hookEnv builds the environment overlay for command hooks.
func hookEnv(hctx HookContext) []string {
	env := []string{
		"SESSION_ID=" + hctx.SessionID,
		"CWD=" + hctx.CWD,
		"PROJECT_DIR=" + hctx.projectDir(),
	}
	if hctx.PluginRoot != "" {
		env = append(env, "PLUGIN_ROOT="+hctx.PluginRoot)
	}
	if hctx.TranscriptPath != "" {
		env = append(env, "TRANSCRIPT_PATH="+hctx.TranscriptPath)
	}
	if hctx.EnvFilePath != "" {
		env = append(env, "ENV_FILE="+hctx.EnvFilePath)
	}
	return env
}
