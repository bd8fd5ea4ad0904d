// ABOUTME: "Did you mean" suggestions for misspelled names via sahilm/fuzzy
// ABOUTME: Case-insensitive exact matches win over fuzzy subsequence matches

package config

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SuggestName returns the candidate closest to name, or "" when nothing is close.
func SuggestName(name string, candidates []string) string {
	if name == "" {
		return ""
	}
	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
