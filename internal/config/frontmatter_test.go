// ABOUTME: Tests for frontmatter parsing and Markdown hooks declarations
// ABOUTME: Covers CRLF, missing and unterminated blocks, and the hooks key of a SKILL.md

package config

import (
	"os"
	"path/filepath"
	"testing"
)

type skillFM struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func TestParseFrontmatter_Basic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantBody string
	}{
		{"standard", "---\nname: lint\n---\nbody content", "lint", "body content"},
		{"crlf", "---\r\nname: fmt\r\n---\r\nbody here", "fmt", "body here"},
		{"empty block", "---\n---\nonly body", "", "only body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, body, err := ParseFrontmatter[skillFM](tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if body != tt.wantBody {
				t.Errorf("Body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseFrontmatter_NoFrontmatter(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"# Title\n\ntext", "", "----\nname: x\n----\n"} {
		got, body, err := ParseFrontmatter[skillFM](input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if got.Name != "" {
			t.Errorf("%q: expected zero value, got %+v", input, got)
		}
		if body != input {
			t.Errorf("Body = %q, want original %q", body, input)
		}
	}
}

func TestParseFrontmatter_Unterminated(t *testing.T) {
	t.Parallel()

	_, _, err := ParseFrontmatter[skillFM]("---\nname: test\nbody without closing")
	if err == nil {
		t.Fatal("expected error for unterminated frontmatter")
	}
}

func TestLoadFile_MarkdownHooks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "SKILL.md")
	content := "---\nname: guard\nhooks:\n  PreToolUse:\n    - matcher: Bash\n      hooks:\n        - type: command\n          command: ${SKILL_ROOT}/guard.sh\n          timeout: 5\n---\n# Guard skill\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	groups := h["PreToolUse"]
	if len(groups) != 1 || len(groups[0].Hooks) != 1 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	hc := groups[0].Hooks[0]
	if hc.Command != "${SKILL_ROOT}/guard.sh" {
		t.Errorf("Command = %q; reserved placeholder must survive loading", hc.Command)
	}
	if hc.TimeoutDuration().Seconds() != 5 {
		t.Errorf("Timeout = %v; want 5s", hc.TimeoutDuration())
	}
}

func TestLoadFile_MarkdownWithoutHooks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "AGENT.md")
	if err := os.WriteFile(path, []byte("---\nname: plain\n---\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if h.Count() != 0 {
		t.Errorf("Count = %d; want 0", h.Count())
	}
}
