// ABOUTME: Tests for command placeholder and prompt template substitution
// ABOUTME: Unknown placeholders must survive; absent prompt fields become empty

package hooks

import (
	"slices"
	"strings"
	"testing"
)

func TestSubstituteCommand(t *testing.T) {
	t.Parallel()

	hctx := HookContext{CWD: "/cwd", ProjectDir: "/proj", PluginRoot: "/s"}
	tests := []struct {
		in, want string
	}{
		{"${SKILL_ROOT}/x.py", "/s/x.py"},
		{"${PLUGIN_ROOT}/bin/run", "/s/bin/run"},
		{"cd ${PROJECT_DIR} && ls ${CWD}", "cd /proj && ls /cwd"},
		{"echo ${FOO}", "echo ${FOO}"},
		{"echo $PROJECT_DIR", "echo $PROJECT_DIR"},
		{"no placeholders", "no placeholders"},
	}
	for _, tt := range tests {
		if got := substituteCommand(tt.in, hctx); got != tt.want {
			t.Errorf("substituteCommand(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubstituteCommand_EmptyValuesStayLiteral(t *testing.T) {
	t.Parallel()

	got := substituteCommand("${SKILL_ROOT}/x.py in ${PROJECT_DIR}", HookContext{CWD: "/cwd"})
	if got != "${SKILL_ROOT}/x.py in /cwd" {
		t.Errorf("got %q", got)
	}
}

func TestSubstitutePrompt(t *testing.T) {
	t.Parallel()

	tmpl := "event=$EVENT tool=$TOOL_NAME input=$TOOL_INPUT result=$TOOL_RESULT prompt=$USER_PROMPT"

	got := substitutePrompt(tmpl, PostToolUseInput{
		ToolName:   "Bash",
		ToolInput:  map[string]any{"command": "ls"},
		ToolResult: map[string]any{"exit": 0},
	}, HookContext{})
	want := `event=PostToolUse tool=Bash input={"command":"ls"} result={"exit":0} prompt=`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}

	got = substitutePrompt(tmpl, UserPromptSubmitInput{Prompt: "delete everything"}, HookContext{})
	want = "event=UserPromptSubmit tool= input= result= prompt=delete everything"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestSubstitutePrompt_Arguments(t *testing.T) {
	t.Parallel()

	got := substitutePrompt("Review: $ARGUMENTS", StopInput{Reason: "done"}, HookContext{SessionID: "s"})
	if !strings.Contains(got, `"stop_reason":"done"`) || !strings.Contains(got, `"session_id":"s"`) {
		t.Errorf("$ARGUMENTS not expanded to the input JSON: %q", got)
	}
}

func TestHookEnv(t *testing.T) {
	t.Parallel()

	env := hookEnv(HookContext{SessionID: "s", CWD: "/c"})
	for _, want := range []string{"SESSION_ID=s", "CWD=/c", "PROJECT_DIR=/c"} {
		if !slices.Contains(env, want) {
			t.Errorf("env missing %q: %v", want, env)
		}
	}
	if len(env) != 3 {
		t.Errorf("optional variables should be absent: %v", env)
	}

	env = hookEnv(HookContext{PluginRoot: "/p", TranscriptPath: "/t", EnvFilePath: "/e"})
	for _, want := range []string{"PLUGIN_ROOT=/p", "TRANSCRIPT_PATH=/t", "ENV_FILE=/e"} {
		if !slices.Contains(env, want) {
			t.Errorf("env missing %q: %v", want, env)
		}
	}
}
