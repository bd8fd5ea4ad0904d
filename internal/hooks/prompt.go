// ABOUTME: Prompt-hook response parsing: structured JSON first, keyword heuristic fallback
// ABOUTME: Fallback normalizes text with x/text and fails open on ambiguous answers

package hooks

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/LordFoxFairy/nano-code-sub000/internal/log"
)

var (
	allowWords = map[string]bool{
		"allow": true, "allowed": true, "approve": true, "approved": true,
		"yes": true, "continue": true,
	}
	denyWords = map[string]bool{
		"deny": true, "denied": true, "reject": true, "rejected": true,
		"no": true, "block": true, "blocked": true,
	}
)

// parsePromptResponse interprets an LLM reply. JSON (bare, fenced, or
// embedded in prose) is decoded as HookOutput; anything else goes through
// interpretText.
func parsePromptResponse(hookID, response string) HookOutput {
	trimmed := strings.TrimSpace(response)
	for _, candidate := range jsonCandidates(trimmed) {
		if out, err := decodeOutput([]byte(candidate)); err == nil {
			return out
		}
	}
	log.Info("prompt hook %s: response is not JSON, using keyword fallback", hookID)
	return interpretText(trimmed)
}

// jsonCandidates returns the substrings worth trying as a JSON object.
func jsonCandidates(s string) []string {
	candidates := []string{s}
	if strings.HasPrefix(s, "```") {
		body := strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		}
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
		candidates = append(candidates, strings.TrimSpace(body))
	}
	if i, j := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}'); i >= 0 && j > i {
		candidates = append(candidates, s[i:j+1])
	}
	return candidates
}

// interpretText is the best-effort path: an allow word wins, then a deny
// word blocks, otherwise the hook fails open with the raw text as message.
func interpretText(text string) HookOutput {
	words := normalizeWords(text)
	for _, w := range words {
		if allowWords[w] {
			return HookOutput{Continue: true}
		}
	}
	for _, w := range words {
		if denyWords[w] {
			return HookOutput{Continue: false, SystemMessage: text}
		}
	}
	return HookOutput{Continue: true, SystemMessage: text}
}

// normalizeWords applies NFKC and case folding, then splits on non-letters.
// Casers are stateful, so each call builds its own.
func normalizeWords(text string) []string {
	folded := cases.Fold().String(norm.NFKC.String(text))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
