// ABOUTME: Human and JSON rendering of hook results and registrations
// ABOUTME: Styles with lipgloss and renders hook messages as markdown only on a terminal

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/LordFoxFairy/nano-code-sub000/internal/display"
	"github.com/LordFoxFairy/nano-code-sub000/pkg/sdk"
)

const (
	defaultWidth = 100
	detailWidth  = 60
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	blockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

type renderer struct {
	w      io.Writer
	styled bool
	width  int
}

// newRenderer styles output only when w is a terminal.
func newRenderer(w io.Writer) *renderer {
	r := &renderer{w: w, width: defaultWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.styled = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			r.width = cols
		}
	}
	return r
}

func (r *renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

// result prints the verdict line, one line per hook, then collected messages.
func (r *renderer) result(res sdk.Result) {
	verdict := r.style(passStyle, "continue")
	if res.Blocked() {
		verdict = r.style(blockStyle, "blocked")
	}
	fmt.Fprintf(r.w, "%s: %s (%d hook(s), %s)\n", r.style(headStyle, string(res.Event)), verdict,
		len(res.Results), res.TotalDuration.Round(time.Millisecond))

	idWidth := 0
	for _, hr := range res.Results {
		idWidth = max(idWidth, display.Width(hr.HookID))
	}
	for _, hr := range res.Results {
		fmt.Fprintf(r.w, "  %s %s  %s\n", r.mark(hr), display.PadRight(hr.HookID, idWidth), r.detail(hr))
	}

	if len(res.SystemMessages) > 0 {
		fmt.Fprintln(r.w, r.style(headStyle, "messages:"))
		for _, msg := range res.SystemMessages {
			fmt.Fprintln(r.w, r.markdown(msg))
		}
	}
	if len(res.AdditionalContext) > 0 {
		fmt.Fprintln(r.w, r.style(headStyle, "additional context:"))
		for _, c := range res.AdditionalContext {
			fmt.Fprintln(r.w, "  "+c)
		}
	}
}

func (r *renderer) mark(hr sdk.ExecutionResult) string {
	switch {
	case hr.Output != nil && !hr.Output.Continue:
		return r.style(blockStyle, "✘")
	case !hr.Success:
		return r.style(warnStyle, "!")
	}
	return r.style(passStyle, "✔")
}

func (r *renderer) detail(hr sdk.ExecutionResult) string {
	var parts []string
	if hr.ExitCode != nil {
		parts = append(parts, fmt.Sprintf("exit %d", *hr.ExitCode))
	}
	parts = append(parts, hr.Duration.Round(time.Millisecond).String())
	if hr.Error != "" {
		parts = append(parts, display.Truncate(display.FirstLine(hr.Error), detailWidth, "…"))
	}
	return r.style(dimStyle, strings.Join(parts, "  "))
}

// markdown renders msg through glamour on a terminal and indents it otherwise.
func (r *renderer) markdown(msg string) string {
	if r.styled {
		tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(r.width-4))
		if err == nil {
			if out, err := tr.Render(msg); err == nil {
				return strings.TrimRight(out, "\n ")
			}
		}
	}
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// groups prints one row per registered hook.
func (r *renderer) groups(events []sdk.Event, lookup func(sdk.Event) []sdk.Group) int {
	type row struct{ event, matcher, id, kind, body string }
	var rows []row
	for _, e := range events {
		for _, g := range lookup(e) {
			for _, h := range g.Hooks {
				body := h.Command
				if h.Type == sdk.TypePrompt {
					body = h.Prompt
				}
				id := h.ID
				if h.Once {
					id += " (once)"
				}
				if !h.IsEnabled() {
					id += " (disabled)"
				}
				rows = append(rows, row{string(e), g.Matcher, id, string(h.Type), display.FirstLine(body)})
			}
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(r.w, "no hooks registered")
		return 0
	}

	widths := [4]int{len("EVENT"), len("MATCHER"), len("ID"), len("TYPE")}
	for _, rw := range rows {
		for i, cell := range []string{rw.event, rw.matcher, rw.id, rw.kind} {
			widths[i] = max(widths[i], display.Width(cell))
		}
	}
	line := func(cells [5]string) string {
		var b strings.Builder
		for i := 0; i < 4; i++ {
			b.WriteString(display.PadRight(cells[i], widths[i]))
			b.WriteString("  ")
		}
		used := widths[0] + widths[1] + widths[2] + widths[3] + 8
		b.WriteString(display.Truncate(cells[4], max(r.width-used, 10), "…"))
		return strings.TrimRight(b.String(), " ")
	}

	fmt.Fprintln(r.w, r.style(headStyle, line([5]string{"EVENT", "MATCHER", "ID", "TYPE", "COMMAND/PROMPT"})))
	for _, rw := range rows {
		fmt.Fprintln(r.w, line([5]string{rw.event, rw.matcher, rw.id, rw.kind, rw.body}))
	}
	return len(rows)
}

// jsonResult is the stable JSON shape of an event result.
type jsonResult struct {
	Event              string           `json:"event"`
	Continue           bool             `json:"continue"`
	AllPassed          bool             `json:"allPassed"`
	SystemMessages     []string         `json:"systemMessages,omitempty"`
	AdditionalContext  []string         `json:"additionalContext,omitempty"`
	HookSpecificOutput map[string]any   `json:"hookSpecificOutput,omitempty"`
	DurationMS         int64            `json:"durationMs"`
	Results            []jsonHookResult `json:"results"`
}

type jsonHookResult struct {
	HookID     string         `json:"hookId"`
	Success    bool           `json:"success"`
	ExitCode   *int           `json:"exitCode,omitempty"`
	Continue   bool           `json:"continue"`
	Message    string         `json:"systemMessage,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMS int64          `json:"durationMs"`
	Specific   map[string]any `json:"hookSpecificOutput,omitempty"`
}

func writeJSON(w io.Writer, res sdk.Result) error {
	out := jsonResult{
		Event:              string(res.Event),
		Continue:           res.Continue,
		AllPassed:          res.AllPassed,
		SystemMessages:     res.SystemMessages,
		AdditionalContext:  res.AdditionalContext,
		HookSpecificOutput: res.HookSpecificOutput,
		DurationMS:         res.TotalDuration.Milliseconds(),
		Results:            make([]jsonHookResult, 0, len(res.Results)),
	}
	for _, hr := range res.Results {
		jr := jsonHookResult{
			HookID:     hr.HookID,
			Success:    hr.Success,
			ExitCode:   hr.ExitCode,
			Continue:   true,
			Error:      hr.Error,
			DurationMS: hr.Duration.Milliseconds(),
		}
		if hr.Output != nil {
			jr.Continue = hr.Output.Continue
			jr.Message = hr.Output.SystemMessage
			jr.Specific = hr.Output.HookSpecificOutput
		}
		out.Results = append(out.Results, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
