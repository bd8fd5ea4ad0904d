// ABOUTME: Tests for terminal width helpers
// ABOUTME: Covers wide runes, ANSI styling, truncation tails, and padding

package display

import "testing"

func TestWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"日本", 4},
		{"\x1b[1mbold\x1b[0m", 4},
		{"\x1b]8;;http://x\x07link\x1b]8;;\x07", 4},
		{"é", 1},
	}
	for _, tt := range tests {
		if got := Width(tt.in); got != tt.want {
			t.Errorf("Width(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	if got := StripANSI("\x1b[31mred\x1b[0m plain"); got != "red plain" {
		t.Errorf("StripANSI = %q", got)
	}
	if got := StripANSI("no escapes"); got != "no escapes" {
		t.Errorf("StripANSI = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		limit int
		tail  string
		want  string
	}{
		{"fits", "short", 10, "...", "short"},
		{"exact", "12345", 5, "...", "12345"},
		{"ascii", "hello world", 8, "...", "hello..."},
		{"wide runes", "日本語テキスト", 7, "…", "日本語…"},
		{"keeps escapes", "\x1b[1mhello world\x1b[0m", 6, "…", "\x1b[1mhello…\x1b[0m"},
		{"zero limit", "abc", 0, "…", ""},
		{"tail wider than limit", "abcdef", 2, "...", ".."},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.limit, tt.tail)
		if got != tt.want {
			t.Errorf("%s: Truncate(%q, %d) = %q; want %q", tt.name, tt.in, tt.limit, got, tt.want)
		}
		if tt.limit > 0 && Width(got) > tt.limit {
			t.Errorf("%s: width %d exceeds limit %d", tt.name, Width(got), tt.limit)
		}
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	if got := PadRight("日本", 6); got != "日本  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Errorf("PadRight must not cut: %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"single":          "single",
		"one\ntwo":        "one …",
		"  padded\n\n  ": "padded",
		"crlf\r\nsecond": "crlf …",
	}
	for in, want := range tests {
		if got := FirstLine(in); got != want {
			t.Errorf("FirstLine(%q) = %q; want %q", in, got, want)
		}
	}
}
