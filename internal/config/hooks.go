// ABOUTME: Hooks declaration schema and loaders for JSON, YAML, and Markdown frontmatter
// ABOUTME: Multiple sources merge additively; event names are validated with suggestions

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnknownEvent is returned when a declaration names an event outside the
// known set.
var ErrUnknownEvent = errors.New("unknown hook event")

// HookConfig is one hook as declared in a configuration file.
type HookConfig struct {
	ID      string  `json:"id,omitempty" yaml:"id,omitempty"`
	Type    string  `json:"type,omitempty" yaml:"type,omitempty"`
	Command string  `json:"command,omitempty" yaml:"command,omitempty"`
	Prompt  string  `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Timeout float64 `json:"timeout,omitempty" yaml:"timeout,omitempty"` // seconds
	Once    bool    `json:"once,omitempty" yaml:"once,omitempty"`
	Enabled *bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// TimeoutDuration converts the declared timeout in seconds; zero means default.
func (h HookConfig) TimeoutDuration() time.Duration {
	if h.Timeout <= 0 {
		return 0
	}
	return time.Duration(h.Timeout * float64(time.Second))
}

// GroupConfig is a matcher plus the hooks it selects.
type GroupConfig struct {
	Matcher string       `json:"matcher,omitempty" yaml:"matcher,omitempty"`
	Hooks   []HookConfig `json:"hooks" yaml:"hooks"`
}

// Hooks maps event names to ordered hook groups.
type Hooks map[string][]GroupConfig

// settingsFile is the wrapper form: {"hooks": {...}} inside a larger settings file.
type settingsFile struct {
	Hooks Hooks `json:"hooks" yaml:"hooks"`
}

// Merge appends other's groups after h's, per event, and returns the result.
// Neither input is modified.
func (h Hooks) Merge(other Hooks) Hooks {
	out := make(Hooks, len(h)+len(other))
	for event, groups := range h {
		out[event] = append([]GroupConfig(nil), groups...)
	}
	for event, groups := range other {
		out[event] = append(out[event], groups...)
	}
	return out
}

// Count returns the number of hooks across all events.
func (h Hooks) Count() int {
	n := 0
	for _, groups := range h {
		for _, g := range groups {
			n += len(g.Hooks)
		}
	}
	return n
}

// Validate checks event names against known and rejects negative timeouts.
// Hook type and command/prompt presence are left to execution time.
func (h Hooks) Validate(known []string) error {
	valid := make(map[string]bool, len(known))
	for _, k := range known {
		valid[k] = true
	}

	var errs []error
	for event, groups := range h {
		if !valid[event] {
			if s := SuggestName(event, known); s != "" {
				errs = append(errs, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownEvent, event, s))
			} else {
				errs = append(errs, fmt.Errorf("%w %q", ErrUnknownEvent, event))
			}
			continue
		}
		for gi, g := range groups {
			for hi, hc := range g.Hooks {
				if hc.Timeout < 0 {
					errs = append(errs, fmt.Errorf("%s[%d].hooks[%d]: negative timeout %v", event, gi, hi, hc.Timeout))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// LoadFile reads a hooks declaration. The format follows the extension:
// .yaml/.yml use YAML, .md reads the "hooks" key of the YAML frontmatter,
// anything else is JSON. Both the bare event map and a settings file with a
// top-level "hooks" key are accepted.
func LoadFile(path string) (Hooks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var h Hooks
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		h, err = parseYAML(data)
	case ".md", ".markdown":
		h, err = parseMarkdown(string(data))
	default:
		h, err = parseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	ResolveEnvVars(h)
	return h, nil
}

// LoadFiles loads every path in order and merges them additively.
func LoadFiles(paths ...string) (Hooks, error) {
	merged := Hooks{}
	for _, p := range paths {
		h, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		merged = merged.Merge(h)
	}
	return merged, nil
}

func parseJSON(data []byte) (Hooks, error) {
	var wrapped settingsFile
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Hooks != nil {
		return wrapped.Hooks, nil
	}
	var h Hooks
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return h, nil
}

func parseYAML(data []byte) (Hooks, error) {
	var wrapped settingsFile
	if err := yaml.Unmarshal(data, &wrapped); err == nil && wrapped.Hooks != nil {
		return wrapped.Hooks, nil
	}
	var h Hooks
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return h, nil
}

func parseMarkdown(content string) (Hooks, error) {
	fm, _, err := ParseFrontmatter[settingsFile](content)
	if err != nil {
		return nil, err
	}
	if fm.Hooks == nil {
		return Hooks{}, nil
	}
	return fm.Hooks, nil
}
