// ABOUTME: Environment variable expansion in hook declarations
// ABOUTME: Replaces ${VAR} with set env values; reserved hook placeholders and unset vars stay literal

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// reservedPlaceholders are substituted by the hook executor from the session
// context, so load-time expansion must leave them alone.
var reservedPlaceholders = map[string]bool{
	"SKILL_ROOT":  true,
	"PLUGIN_ROOT": true,
	"PROJECT_DIR": true,
	"CWD":         true,
}

// ResolveEnvVars expands ${VAR} patterns in matchers, commands and prompts.
func ResolveEnvVars(h Hooks) {
	for event, groups := range h {
		for gi := range groups {
			groups[gi].Matcher = expandEnv(groups[gi].Matcher)
			for hi := range groups[gi].Hooks {
				hc := &groups[gi].Hooks[hi]
				hc.Command = expandEnv(hc.Command)
				hc.Prompt = expandEnv(hc.Prompt)
			}
		}
		h[event] = groups
	}
}

// expandEnv replaces ${VAR} with the value of VAR when it is set.
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if reservedPlaceholders[varName] {
			return match
		}
		if v, ok := os.LookupEnv(varName); ok {
			return v
		}
		return match
	})
}
