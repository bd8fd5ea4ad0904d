// ABOUTME: Tests for hooks declaration loading, merging, and validation
// ABOUTME: JSON and YAML must load identically; sources merge additively

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var knownEvents = []string{
	"PreToolUse", "PostToolUse", "UserPromptSubmit", "Stop", "SubagentStop",
	"SessionStart", "SessionEnd", "PreCompact", "Notification",
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_JSONAndYAMLAgree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "hooks.json", `{
		"PreToolUse": [
			{"matcher": "Edit|Write", "hooks": [
				{"type": "command", "command": "echo lint", "timeout": 2.5, "once": true}
			]}
		]
	}`)
	yamlPath := writeFile(t, dir, "hooks.yaml", `
PreToolUse:
  - matcher: Edit|Write
    hooks:
      - type: command
        command: echo lint
        timeout: 2.5
        once: true
`)

	for _, p := range []string{jsonPath, yamlPath} {
		h, err := LoadFile(p)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", p, err)
		}
		g := h["PreToolUse"]
		if len(g) != 1 || g[0].Matcher != "Edit|Write" || len(g[0].Hooks) != 1 {
			t.Fatalf("%s: unexpected groups %+v", p, g)
		}
		hc := g[0].Hooks[0]
		if hc.Command != "echo lint" || !hc.Once {
			t.Errorf("%s: unexpected hook %+v", p, hc)
		}
		if hc.TimeoutDuration() != 2500*time.Millisecond {
			t.Errorf("%s: TimeoutDuration = %v", p, hc.TimeoutDuration())
		}
		if hc.Enabled != nil {
			t.Errorf("%s: Enabled should be unset", p)
		}
	}
}

func TestLoadFile_SettingsWrapper(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "settings.json", `{
		"model": "ignored",
		"hooks": {
			"Stop": [{"hooks": [{"type": "prompt", "prompt": "Is the task done?", "enabled": false}]}]
		}
	}`)

	h, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	hooks := h["Stop"][0].Hooks
	if len(hooks) != 1 || hooks[0].Prompt != "Is the task done?" {
		t.Fatalf("unexpected hooks %+v", hooks)
	}
	if hooks[0].Enabled == nil || *hooks[0].Enabled {
		t.Error("expected enabled=false to be preserved")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v; want ErrNotExist", err)
	}

	bad := writeFile(t, dir, "bad.json", `{"PreToolUse": [`)
	_, err := LoadFile(bad)
	if err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("malformed file: err = %v; want parsing error", err)
	}
}

func TestLoadFiles_Additive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"PreToolUse": [{"matcher": "Bash", "hooks": [{"type": "command", "command": "echo a"}]}]}`)
	b := writeFile(t, dir, "b.yml", "PreToolUse:\n  - matcher: Bash\n    hooks:\n      - type: command\n        command: echo b\nStop:\n  - hooks:\n      - type: command\n        command: echo stop\n")

	h, err := LoadFiles(a, b)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	groups := h["PreToolUse"]
	if len(groups) != 2 {
		t.Fatalf("expected 2 PreToolUse groups, got %d", len(groups))
	}
	if groups[0].Hooks[0].Command != "echo a" || groups[1].Hooks[0].Command != "echo b" {
		t.Errorf("groups out of encounter order: %+v", groups)
	}
	if h.Count() != 3 {
		t.Errorf("Count = %d; want 3", h.Count())
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	a := Hooks{"Stop": {{Hooks: []HookConfig{{Command: "a"}}}}}
	b := Hooks{"Stop": {{Hooks: []HookConfig{{Command: "b"}}}}}

	m := a.Merge(b)
	if len(m["Stop"]) != 2 {
		t.Fatalf("merged Stop groups = %d; want 2", len(m["Stop"]))
	}
	if len(a["Stop"]) != 1 || len(b["Stop"]) != 1 {
		t.Error("Merge modified its inputs")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hooks   Hooks
		wantErr string
	}{
		{"valid", Hooks{"PreToolUse": {{Matcher: ".*"}}}, ""},
		{"typo gets suggestion", Hooks{"PreToolUs": nil}, `did you mean "PreToolUse"`},
		{"case mismatch gets suggestion", Hooks{"sessionstart": nil}, `did you mean "SessionStart"`},
		{"unknown without suggestion", Hooks{"Zzz": nil}, `unknown hook event "Zzz"`},
		{"negative timeout", Hooks{"Stop": {{Hooks: []HookConfig{{Command: "x", Timeout: -1}}}}}, "negative timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.hooks.Validate(knownEvents)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v; want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownEventIsSentinel(t *testing.T) {
	t.Parallel()

	err := Hooks{"Nope": nil}.Validate(knownEvents)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v; want ErrUnknownEvent", err)
	}
}

func TestSuggestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"PreTool", "PreToolUse"},
		{"SessionStrt", "SessionStart"},
		{"notification", "Notification"},
		{"", ""},
		{"qqq", ""},
	}
	for _, tt := range tests {
		if got := SuggestName(tt.in, knownEvents); got != tt.want {
			t.Errorf("SuggestName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestExistingHooksFiles(t *testing.T) {
	project := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	if got := ExistingHooksFiles(project); len(got) != 0 {
		t.Fatalf("expected no files, got %v", got)
	}

	if err := os.MkdirAll(ProjectDir(project), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, ProjectDir(project), "hooks.json", `{}`)
	writeFile(t, ProjectDir(project), "hooks.local.json", `{}`)

	got := ExistingHooksFiles(project)
	if len(got) != 2 || got[0] != ProjectHooksFile(project) || got[1] != LocalHooksFile(project) {
		t.Errorf("ExistingHooksFiles = %v", got)
	}
}
