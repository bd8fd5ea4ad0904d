// ABOUTME: Public SDK for embedding the lifecycle hook engine in an agent loop
// ABOUTME: Wraps the internal manager with functional options and re-exported types

package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/LordFoxFairy/nano-code-sub000/internal/config"
	"github.com/LordFoxFairy/nano-code-sub000/internal/hooks"
	pilog "github.com/LordFoxFairy/nano-code-sub000/internal/log"
)

// Re-exported types so callers outside this module can build inputs and
// read results.
type (
	Event           = hooks.HookEvent
	Input           = hooks.HookInput
	Result          = hooks.HookEventResult
	ExecutionResult = hooks.HookExecutionResult
	Output          = hooks.HookOutput
	Context         = hooks.HookContext
	ContextUpdate   = hooks.ContextUpdate
	Group           = hooks.HookGroup
	Definition      = hooks.HookDefinition
	PromptFunc      = hooks.PromptFunc
	Stats           = hooks.Stats
	Config          = config.Hooks
	GroupConfig     = config.GroupConfig
	HookConfig      = config.HookConfig

	PreToolUseInput       = hooks.PreToolUseInput
	PostToolUseInput      = hooks.PostToolUseInput
	UserPromptSubmitInput = hooks.UserPromptSubmitInput
	StopInput             = hooks.StopInput
	SubagentStopInput     = hooks.SubagentStopInput
	SessionStartInput     = hooks.SessionStartInput
	SessionEndInput       = hooks.SessionEndInput
	PreCompactInput       = hooks.PreCompactInput
	NotificationInput     = hooks.NotificationInput
)

const (
	PreToolUse       = hooks.PreToolUse
	PostToolUse      = hooks.PostToolUse
	UserPromptSubmit = hooks.UserPromptSubmit
	Stop             = hooks.Stop
	SubagentStop     = hooks.SubagentStop
	SessionStart     = hooks.SessionStart
	SessionEnd       = hooks.SessionEnd
	PreCompact       = hooks.PreCompact
	Notification     = hooks.Notification

	TypeCommand = hooks.TypeCommand
	TypePrompt  = hooks.TypePrompt
)

// Client owns a hook manager for one agent session.
type Client struct {
	manager *hooks.Manager
	ctx     context.Context
	cancel  context.CancelFunc
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	paths          []string
	discoverRoot   string
	configs        []config.Hooks
	mode           hooks.ExecutionMode
	maxConcurrency int
	prompt         hooks.PromptFunc
	commandTimeout time.Duration
	promptTimeout  time.Duration
	shell          []string
	hctx           hooks.HookContext
	reload         time.Duration
}

// files returns the hooks files to load now, in merge order.
func (c *clientConfig) files() []string {
	var files []string
	if c.discoverRoot != "" {
		files = config.ExistingHooksFiles(c.discoverRoot)
	}
	return append(files, c.paths...)
}

// watched returns every path whose creation or edit should trigger a reload.
func (c *clientConfig) watched() []string {
	var paths []string
	if c.discoverRoot != "" {
		paths = append(paths,
			config.GlobalHooksFile(),
			config.ProjectHooksFile(c.discoverRoot),
			config.LocalHooksFile(c.discoverRoot))
	}
	return append(paths, c.paths...)
}

// load reads every file source and merges the in-memory configs after them.
func (c *clientConfig) load() (config.Hooks, error) {
	merged, err := config.LoadFiles(c.files()...)
	if err != nil {
		return nil, fmt.Errorf("loading hooks: %w", err)
	}
	for _, h := range c.configs {
		merged = merged.Merge(h)
	}
	return merged, nil
}

// WithConfigFiles loads hooks from each path, in order.
func WithConfigFiles(paths ...string) Option {
	return func(c *clientConfig) {
		c.paths = append(c.paths, paths...)
	}
}

// WithDiscovery loads the global, project and local hooks files that exist
// for projectRoot, before any WithConfigFiles paths.
func WithDiscovery(projectRoot string) Option {
	return func(c *clientConfig) {
		c.discoverRoot = projectRoot
	}
}

// WithConfig registers an already-parsed declaration.
func WithConfig(cfg Config) Option {
	return func(c *clientConfig) {
		c.configs = append(c.configs, cfg)
	}
}

// WithReload polls the hooks files every interval and replaces all
// registrations when one changes. Hooks added with AddHook are dropped on
// reload; a file that fails to load leaves the previous hooks active.
func WithReload(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.reload = interval
	}
}

// WithSequential runs hooks one at a time, stopping at the first block.
func WithSequential() Option {
	return func(c *clientConfig) {
		c.mode = hooks.ModeSequential
	}
}

// WithMaxConcurrency caps concurrent hooks per event in parallel mode.
func WithMaxConcurrency(n int) Option {
	return func(c *clientConfig) {
		c.maxConcurrency = n
	}
}

// WithPromptFunc supplies the LLM callback used by prompt hooks.
func WithPromptFunc(fn PromptFunc) Option {
	return func(c *clientConfig) {
		c.prompt = fn
	}
}

// WithTimeouts overrides the default command and prompt hook timeouts.
// Zero keeps the default.
func WithTimeouts(command, prompt time.Duration) Option {
	return func(c *clientConfig) {
		c.commandTimeout = command
		c.promptTimeout = prompt
	}
}

// WithShell sets the interpreter argv for command hooks, e.g. {"bash", "-c"}.
func WithShell(argv ...string) Option {
	return func(c *clientConfig) {
		c.shell = argv
	}
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(c *clientConfig) {
		c.hctx.SessionID = id
	}
}

// WithCWD sets the working directory hooks run in.
func WithCWD(dir string) Option {
	return func(c *clientConfig) {
		c.hctx.CWD = dir
	}
}

// WithProjectDir sets PROJECT_DIR for hooks.
func WithProjectDir(dir string) Option {
	return func(c *clientConfig) {
		c.hctx.ProjectDir = dir
	}
}

// WithPluginRoot sets the directory substituted for ${PLUGIN_ROOT} and ${SKILL_ROOT}.
func WithPluginRoot(dir string) Option {
	return func(c *clientConfig) {
		c.hctx.PluginRoot = dir
	}
}

// WithTranscriptPath sets the transcript file path passed to hooks.
func WithTranscriptPath(path string) Option {
	return func(c *clientConfig) {
		c.hctx.TranscriptPath = path
	}
}

// New creates a client and registers every configured hook source.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	m := hooks.NewManager(hooks.ManagerOptions{
		Mode:           cfg.mode,
		MaxConcurrency: cfg.maxConcurrency,
		Executor: hooks.NewExecutor(hooks.ExecutorOptions{
			Prompt:         cfg.prompt,
			CommandTimeout: cfg.commandTimeout,
			PromptTimeout:  cfg.promptTimeout,
			Shell:          cfg.shell,
		}),
		Context: cfg.hctx,
	})

	for _, path := range cfg.files() {
		h, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading hooks: %w", err)
		}
		if err := m.LoadFromConfig(h); err != nil {
			return nil, fmt.Errorf("registering hooks from %s: %w", path, err)
		}
	}
	for _, h := range cfg.configs {
		if err := m.LoadFromConfig(h); err != nil {
			return nil, fmt.Errorf("registering hooks: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{manager: m, ctx: ctx, cancel: cancel}
	if cfg.reload > 0 {
		w := config.NewWatcher(cfg.watched(), cfg.reload)
		go w.Run(ctx, func() { c.reload(cfg) })
	}
	return c, nil
}

func (c *Client) reload(cfg *clientConfig) {
	h, err := cfg.load()
	if err == nil {
		err = c.manager.ReplaceConfig(h)
	}
	if err != nil {
		pilog.Warn("hooks reload failed, keeping previous hooks: %v", err)
	}
}

// Fire runs the hooks for input. Running hooks are stopped if either ctx
// or the client (via Close) is done.
func (c *Client) Fire(ctx context.Context, input Input) (Result, error) {
	fireCtx, fireCancel := context.WithCancel(c.ctx)
	defer fireCancel()

	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	stop := context.AfterFunc(ctx, fireCancel)
	defer stop()

	return c.manager.ExecuteHooks(fireCtx, input)
}

// AddHook registers a group for event.
func (c *Client) AddHook(event Event, group Group) error {
	return c.manager.AddHook(event, group)
}

// RemoveHook unregisters the hook with id.
func (c *Client) RemoveHook(id string) bool {
	return c.manager.RemoveHook(id)
}

// UpdateContext merges u into the session context.
func (c *Client) UpdateContext(u ContextUpdate) {
	c.manager.UpdateContext(u)
}

// Context returns the current session context.
func (c *Client) Context() Context {
	return c.manager.Context()
}

// Stats returns registration counts and execution counters.
func (c *Client) Stats() Stats {
	return c.manager.Stats()
}

// Groups returns the groups registered for event.
func (c *Client) Groups(event Event) []Group {
	return c.manager.Groups(event)
}

// Close cancels in-flight Fire calls and stops reloading.
func (c *Client) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

// ParseEvent validates an event name, suggesting a close match on error.
func ParseEvent(name string) (Event, error) {
	return hooks.ParseEvent(name)
}

// Events returns every lifecycle event in canonical order.
func Events() []Event {
	return hooks.AllEvents()
}
