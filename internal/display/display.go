// ABOUTME: Terminal width helpers for CLI output: grapheme-aware width, truncation, padding
// ABOUTME: ANSI escape sequences count as zero columns and are never split

package display

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// StripANSI removes CSI and OSC escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			i = skipEscape(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipEscape returns the index just past the escape sequence at s[i].
func skipEscape(s string, i int) int {
	i++ // ESC
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7E {
				return i + 1
			}
		}
		return i
	case ']':
		for i++; i < len(s); i++ {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	default:
		return i + 1
	}
}

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	plain := StripANSI(s)
	w := 0
	state := -1
	for plain != "" {
		var cluster string
		cluster, plain, _, state = uniseg.FirstGraphemeClusterInString(plain, state)
		w += clusterWidth(cluster)
	}
	return w
}

func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

// Truncate shortens s to at most limit columns, ending with tail when it cut
// anything. Escape sequences are kept so styling is not left open.
func Truncate(s string, limit int, tail string) string {
	if limit <= 0 {
		return ""
	}
	if Width(s) <= limit {
		return s
	}
	budget := limit - Width(tail)
	if budget < 0 {
		return runewidth.Truncate(tail, limit, "")
	}

	var b strings.Builder
	col := 0
	cut := false
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			end := skipEscape(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		w := clusterWidth(cluster)
		if !cut && col+w > budget {
			b.WriteString(tail)
			cut = true
		}
		if !cut {
			b.WriteString(cluster)
			col += w
		}
		i += len(cluster)
	}
	return b.String()
}

// PadRight appends spaces until s fills width columns.
func PadRight(s string, width int) string {
	if gap := width - Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// FirstLine returns the first line of s, marking dropped lines with an ellipsis.
func FirstLine(s string) string {
	line, rest, found := strings.Cut(strings.TrimSpace(s), "\n")
	if found && strings.TrimSpace(rest) != "" {
		return strings.TrimRight(line, "\r") + " …"
	}
	return strings.TrimRight(line, "\r")
}
