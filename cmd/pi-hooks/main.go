// ABOUTME: CLI entry point for pi-hooks: fire, list, and validate lifecycle hook configs
// ABOUTME: Exit status is 0 on success, 1 on error, and 2 when fired hooks block

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/LordFoxFairy/nano-code-sub000/internal/config"
	pilog "github.com/LordFoxFairy/nano-code-sub000/internal/log"
	"github.com/LordFoxFairy/nano-code-sub000/pkg/sdk"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitOK    = 0
	exitError = 1
	exitBlock = 2
)

const usage = `usage: pi-hooks <command> [flags]

commands:
  fire      fire one lifecycle event and print the verdict
  list      show registered hooks
  validate  check hooks files for errors
  version   print version information

Run "pi-hooks <command> -h" for command flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitError
	}

	var err error
	code := exitOK
	switch args[0] {
	case "fire":
		code, err = runFire(args[1:], stdout, stderr)
	case "list":
		err = runList(args[1:], stdout, stderr)
	case "validate":
		err = runValidate(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "pi-hooks %s (%s) built %s\n", version, commit, date)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitError
	}

	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return code
}

// applyLogLevel sets the log level from the flag, if given.
func applyLogLevel(name string) error {
	if name == "" {
		return nil
	}
	lvl, ok := pilog.ParseLevel(name)
	if !ok {
		return fmt.Errorf("invalid log level %q", name)
	}
	pilog.SetLevel(lvl)
	return nil
}

// configFiles returns the explicit -config paths or, when none were given,
// the standard hooks files for the current directory. A -config value with
// glob syntax ("hooks/**/*.yaml") expands to its sorted matches.
func configFiles(c commonArgs) ([]string, error) {
	if len(c.configs) > 0 {
		var files []string
		for _, p := range c.configs {
			if !hasGlobMeta(p) {
				files = append(files, p)
				continue
			}
			matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("-config %q: %w", p, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("-config %q matches no files", p)
			}
			sort.Strings(matches)
			files = append(files, matches...)
		}
		return files, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.ExistingHooksFiles(cwd), nil
}

// newClient builds an SDK client over the resolved config files.
func newClient(c commonArgs, extra ...sdk.Option) (*sdk.Client, []string, error) {
	if err := applyLogLevel(c.logLevel); err != nil {
		return nil, nil, err
	}
	files, err := configFiles(c)
	if err != nil {
		return nil, nil, err
	}
	client, err := sdk.New(append([]sdk.Option{sdk.WithConfigFiles(files...)}, extra...)...)
	if err != nil {
		return nil, nil, err
	}
	return client, files, nil
}

func hasGlobMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
