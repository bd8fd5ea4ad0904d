// ABOUTME: Tool-name matcher for hook groups using cached regular expressions
// ABOUTME: Invalid patterns fail closed: the group is skipped, never force-run

package hooks

import (
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/LordFoxFairy/nano-code-sub000/internal/log"
)

// matchAll is the canonical pattern for groups registered without a matcher.
const matchAll = ".*"

// compiledPattern caches a compile result; re is nil for invalid patterns.
type compiledPattern struct {
	re *regexp.Regexp
}

// maxCachedPatterns caps patternCache. Patterns seen after the cap is
// reached are compiled on every call.
const maxCachedPatterns = 512

var (
	patternCache     sync.Map // pattern string -> compiledPattern
	patternCacheSize atomic.Int64
)

func compilePattern(pattern string) *regexp.Regexp {
	if v, ok := patternCache.Load(pattern); ok {
		return v.(compiledPattern).re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Debug("hook matcher %q is not a valid pattern: %v", pattern, err)
		re = nil
	}
	if patternCacheSize.Add(1) > maxCachedPatterns {
		patternCacheSize.Add(-1)
		return re
	}
	v, loaded := patternCache.LoadOrStore(pattern, compiledPattern{re: re})
	if loaded {
		patternCacheSize.Add(-1)
	}
	return v.(compiledPattern).re
}

// Matches reports whether toolName matches pattern. Pipe-separated names
// such as "Edit|Write" work as regex alternation. An empty pattern, an empty
// tool name, or an invalid pattern never match.
func Matches(pattern, toolName string) bool {
	if pattern == "" || toolName == "" {
		return false
	}
	re := compilePattern(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(toolName)
}

// FindMatchingHooks returns, in input order, every group whose matcher
// matches toolName. Duplicates are kept.
func FindMatchingHooks(toolName string, groups []HookGroup) []HookGroup {
	var matched []HookGroup
	for _, g := range groups {
		if Matches(g.Matcher, toolName) {
			matched = append(matched, g)
		}
	}
	return matched
}

// normalizeMatcher maps the "match everything" spellings to matchAll.
func normalizeMatcher(pattern string) string {
	switch pattern {
	case "", "*":
		return matchAll
	}
	return pattern
}

// ValidMatcher reports whether pattern compiles. Invalid matchers are
// accepted at registration but never match, so tooling can warn about them.
func ValidMatcher(pattern string) bool {
	return compilePattern(normalizeMatcher(pattern)) != nil
}
