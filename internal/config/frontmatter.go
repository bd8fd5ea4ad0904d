// ABOUTME: YAML frontmatter extraction for skill and agent Markdown files
// ABOUTME: Lets a SKILL.md declare hooks under a "hooks:" key between --- delimiters

package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter decodes the YAML block at the top of content into T and
// returns the remaining body. Content without an opening delimiter yields
// (zero T, content, nil); an opening delimiter without a closing one is an
// error. CRLF line endings are accepted.
func ParseFrontmatter[T any](content string) (T, string, error) {
	var fm T

	text := strings.ReplaceAll(content, "\r\n", "\n")
	rest, ok := strings.CutPrefix(text, frontmatterDelimiter+"\n")
	if !ok {
		return fm, content, nil
	}

	var block, body string
	switch {
	case rest == frontmatterDelimiter:
		// empty block, no body
	case strings.HasPrefix(rest, frontmatterDelimiter+"\n"):
		body = rest[len(frontmatterDelimiter)+1:]
	default:
		var found bool
		block, body, found = strings.Cut(rest, "\n"+frontmatterDelimiter)
		if !found {
			return fm, "", errors.New("unterminated frontmatter: missing closing ---")
		}
		body = strings.TrimPrefix(body, "\n")
	}

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return fm, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	return fm, body, nil
}
