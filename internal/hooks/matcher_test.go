// ABOUTME: Tests for the tool-name matcher and group filtering
// ABOUTME: Covers alternation, wildcard, exact names, invalid patterns, and ordering

package hooks

import (
	"fmt"
	"testing"
)

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		tool    string
		want    bool
	}{
		{"A|B", "A", true},
		{"A|B", "B", true},
		{"A|B", "C", false},
		{"Edit|Write", "Write", true},
		{".*", "anything", true},
		{".*", "mcp__github__create_issue", true},
		{"Bash", "Bash", true},
		{"^Bash$", "bash", false},
		{"^mcp__.*", "mcp__fs__read", true},
		{"", "Bash", false},
		{".*", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.pattern, tt.tool); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v; want %v", tt.pattern, tt.tool, got, tt.want)
		}
	}
}

func TestMatches_InvalidPatternFailsClosed(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"[invalid", "(unclosed", "*", "a{2,1}", `\`} {
		if Matches(p, "Bash") {
			t.Errorf("Matches(%q, Bash) = true; invalid patterns must not match", p)
		}
		// Second call goes through the cache.
		if Matches(p, "Bash") {
			t.Errorf("cached Matches(%q, Bash) = true", p)
		}
	}
}

func TestFindMatchingHooks_OrderAndDuplicates(t *testing.T) {
	t.Parallel()

	groups := []HookGroup{
		{Matcher: "Bash", Hooks: []HookDefinition{{ID: "1"}}},
		{Matcher: "Edit|Write", Hooks: []HookDefinition{{ID: "2"}}},
		{Matcher: ".*", Hooks: []HookDefinition{{ID: "3"}}},
		{Matcher: "Bash", Hooks: []HookDefinition{{ID: "4"}}},
		{Matcher: "[bad", Hooks: []HookDefinition{{ID: "5"}}},
	}

	got := FindMatchingHooks("Bash", groups)
	want := []string{"1", "3", "4"}
	if len(got) != len(want) {
		t.Fatalf("got %d groups; want %d", len(got), len(want))
	}
	for i, g := range got {
		if g.Hooks[0].ID != want[i] {
			t.Errorf("group[%d] = %s; want %s", i, g.Hooks[0].ID, want[i])
		}
	}

	if got := FindMatchingHooks("", groups); len(got) != 0 {
		t.Errorf("empty tool name matched %d groups", len(got))
	}
}

func TestNormalizeMatcher(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"": ".*", "*": ".*", "Bash": "Bash", ".*": ".*"} {
		if got := normalizeMatcher(in); got != want {
			t.Errorf("normalizeMatcher(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestValidMatcher(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"", "*", "Bash", "Edit|Write", "^mcp__.*"} {
		if !ValidMatcher(p) {
			t.Errorf("ValidMatcher(%q) = false", p)
		}
	}
	for _, p := range []string{"[", "(unclosed", "a{2,1}"} {
		if ValidMatcher(p) {
			t.Errorf("ValidMatcher(%q) = true", p)
		}
	}
}

func TestMatches_PatternCacheIsBounded(t *testing.T) {
	t.Parallel()

	for i := 0; i < maxCachedPatterns+100; i++ {
		p := fmt.Sprintf("^Tool%d$", i)
		if !Matches(p, fmt.Sprintf("Tool%d", i)) {
			t.Fatalf("Matches(%q) = false", p)
		}
	}
	entries := 0
	patternCache.Range(func(any, any) bool { entries++; return true })
	if entries > maxCachedPatterns {
		t.Errorf("cache map has %d entries; cap is %d", entries, maxCachedPatterns)
	}

	// Past the cap, patterns still compile and match correctly.
	if !Matches("^Overflow(Tool)?$", "OverflowTool") || Matches("^Overflow$", "Other") {
		t.Error("uncached patterns must still match")
	}
}
