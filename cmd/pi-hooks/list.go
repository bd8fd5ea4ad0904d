// ABOUTME: list and validate subcommands over the resolved hooks files
// ABOUTME: validate reports every file's errors instead of stopping at the first

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/LordFoxFairy/nano-code-sub000/internal/config"
	"github.com/LordFoxFairy/nano-code-sub000/internal/hooks"
	"github.com/LordFoxFairy/nano-code-sub000/pkg/sdk"
)

func runList(args []string, stdout, stderr io.Writer) error {
	c, err := parseCommonFlags("list", args, stderr)
	if err != nil {
		return err
	}
	client, files, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	if len(files) == 0 {
		fmt.Fprintln(stdout, "no hooks files found")
		return nil
	}
	r := newRenderer(stdout)
	r.groups(sdk.Events(), client.Groups)
	return nil
}

// errValidation reports that at least one file failed validation.
var errValidation = errors.New("validation failed")

func runValidate(args []string, stdout, stderr io.Writer) error {
	c, err := parseCommonFlags("validate", args, stderr)
	if err != nil {
		return err
	}
	if err := applyLogLevel(c.logLevel); err != nil {
		return err
	}
	files, err := configFiles(c)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(stdout, "no hooks files found")
		return nil
	}

	failed := false
	for _, path := range files {
		problems := validateFile(path)
		if len(problems) == 0 {
			fmt.Fprintf(stdout, "ok   %s\n", path)
			continue
		}
		failed = true
		fmt.Fprintf(stdout, "FAIL %s\n", path)
		for _, p := range problems {
			fmt.Fprintf(stdout, "     %s\n", p)
		}
	}
	if failed {
		return errValidation
	}
	return nil
}

// validateFile loads path and returns one line per problem found.
func validateFile(path string) []string {
	h, err := config.LoadFile(path)
	if err != nil {
		return []string{err.Error()}
	}

	var problems []string
	if err := h.Validate(hooks.EventNames()); err != nil {
		problems = append(problems, strings.Split(err.Error(), "\n")...)
	}
	for _, event := range hooks.EventNames() {
		for gi, g := range h[event] {
			if !hooks.ValidMatcher(g.Matcher) {
				problems = append(problems, fmt.Sprintf("%s[%d]: matcher %q is not a valid regular expression; it will never match", event, gi, g.Matcher))
			}
			for hi, hc := range g.Hooks {
				if p := checkHook(hc); p != "" {
					problems = append(problems, fmt.Sprintf("%s[%d].hooks[%d]: %s", event, gi, hi, p))
				}
			}
		}
	}

	m := hooks.NewManager(hooks.ManagerOptions{})
	if err := m.LoadFromConfig(h); err != nil && len(problems) == 0 {
		problems = append(problems, err.Error())
	}
	return problems
}

func checkHook(hc config.HookConfig) string {
	switch hooks.HookType(hc.Type) {
	case "":
		if hc.Command == "" && hc.Prompt == "" {
			return "hook needs a command or a prompt"
		}
	case hooks.TypeCommand:
		if strings.TrimSpace(hc.Command) == "" {
			return "command hook has no command"
		}
	case hooks.TypePrompt:
		if strings.TrimSpace(hc.Prompt) == "" {
			return "prompt hook has no prompt"
		}
	default:
		return fmt.Sprintf("unknown hook type %q", hc.Type)
	}
	return ""
}
