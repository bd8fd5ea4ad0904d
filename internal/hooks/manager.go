// ABOUTME: Hook manager: registry of hook groups per event plus the execution state machine
// ABOUTME: Selects hooks via matcher, dedups once-hooks, runs parallel or sequential, aggregates

package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/LordFoxFairy/nano-code-sub000/internal/config"
	"github.com/LordFoxFairy/nano-code-sub000/internal/log"
)

// ExecutionMode decides how the hooks of one event are scheduled.
type ExecutionMode int

const (
	// ModeParallel runs every selected hook concurrently and never stops early.
	ModeParallel ExecutionMode = iota
	// ModeSequential runs hooks in registration order and stops at the first block.
	ModeSequential
)

func (m ExecutionMode) String() string {
	if m == ModeSequential {
		return "sequential"
	}
	return "parallel"
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Mode ExecutionMode
	// MaxConcurrency caps parallel hook processes per event; 0 means no cap.
	MaxConcurrency int
	// Executor runs individual hooks; nil uses NewExecutor with defaults.
	Executor *Executor
	// Context seeds the session context. Empty SessionID and CWD are filled in.
	Context HookContext
}

// Manager owns registered hooks and fires them for lifecycle events.
// It is safe for concurrent use.
type Manager struct {
	mode           ExecutionMode
	maxConcurrency int
	executor       *Executor

	mu     sync.RWMutex
	groups map[HookEvent][]HookGroup

	ctxMu sync.RWMutex
	hctx  HookContext

	once sync.Map // "event/id" -> struct{}

	eventsFired   atomic.Int64
	hooksExecuted atomic.Int64
	blocks        atomic.Int64
	hooksFailed   atomic.Int64
}

// NewManager creates a manager with one empty group list per event.
func NewManager(opts ManagerOptions) *Manager {
	ex := opts.Executor
	if ex == nil {
		ex = NewExecutor(ExecutorOptions{})
	}

	hctx := opts.Context
	if hctx.SessionID == "" {
		hctx.SessionID = uuid.NewString()
	}
	if hctx.CWD == "" {
		if cwd, err := os.Getwd(); err == nil {
			hctx.CWD = cwd
		}
	}

	groups := make(map[HookEvent][]HookGroup, len(allEvents))
	for _, e := range allEvents {
		groups[e] = nil
	}

	return &Manager{
		mode:           opts.Mode,
		maxConcurrency: opts.MaxConcurrency,
		executor:       ex,
		groups:         groups,
		hctx:           hctx,
	}
}

// Mode returns the execution mode fixed at construction.
func (m *Manager) Mode() ExecutionMode {
	return m.mode
}

// AddHook appends a group to event. An empty or "*" matcher becomes ".*",
// missing hook IDs are generated, and a missing type is inferred from
// which of command/prompt is set.
func (m *Manager) AddHook(event HookEvent, group HookGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addLocked(event, group)
}

func (m *Manager) addLocked(event HookEvent, group HookGroup) error {
	existing, ok := m.groups[event]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownEvent, event)
	}

	g := HookGroup{
		Matcher: normalizeMatcher(group.Matcher),
		Hooks:   make([]HookDefinition, len(group.Hooks)),
	}
	seen := make(map[string]bool, len(group.Hooks))
	for i, def := range group.Hooks {
		if def.ID == "" {
			def.ID = uuid.NewString()
		}
		if def.Type == "" {
			switch {
			case def.Command != "":
				def.Type = TypeCommand
			case def.Prompt != "":
				def.Type = TypePrompt
			}
		}
		if seen[def.ID] || m.hasIDLocked(def.ID) {
			return fmt.Errorf("%w: duplicate hook id %q", ErrInvalidHook, def.ID)
		}
		seen[def.ID] = true
		g.Hooks[i] = def
	}

	m.groups[event] = append(existing, g)
	log.Debug("registered %d hook(s) for %s (matcher %q)", len(g.Hooks), event, g.Matcher)
	return nil
}

func (m *Manager) hasIDLocked(id string) bool {
	for _, groups := range m.groups {
		for _, g := range groups {
			for _, d := range g.Hooks {
				if d.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// LoadFromConfig appends every group in cfg. Sources are additive: calling
// it once per configuration file accumulates hooks. Nothing is registered
// when cfg references an unknown event or repeats an id.
func (m *Manager) LoadFromConfig(cfg config.Hooks) error {
	if err := cfg.Validate(EventNames()); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[HookEvent][]HookGroup, len(m.groups))
	for e, g := range m.groups {
		snapshot[e] = g
	}

	var errs []error
	for _, event := range allEvents {
		for _, gc := range cfg[string(event)] {
			if err := m.addLocked(event, groupFromConfig(gc)); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", event, err))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		m.groups = snapshot
		return err
	}
	return nil
}

// ReplaceConfig swaps every registration for the groups in cfg, as when
// hooks files are edited during a session. Once-hook state is kept. On error
// the previous registrations stay in place.
func (m *Manager) ReplaceConfig(cfg config.Hooks) error {
	if err := cfg.Validate(EventNames()); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.groups
	m.groups = make(map[HookEvent][]HookGroup, len(allEvents))
	for _, e := range allEvents {
		m.groups[e] = nil
	}
	for _, event := range allEvents {
		for _, gc := range cfg[string(event)] {
			if err := m.addLocked(event, groupFromConfig(gc)); err != nil {
				m.groups = previous
				return fmt.Errorf("%s: %w", event, err)
			}
		}
	}
	log.Info("hooks replaced: %d hook(s) registered", cfg.Count())
	return nil
}

func groupFromConfig(gc config.GroupConfig) HookGroup {
	g := HookGroup{Matcher: gc.Matcher, Hooks: make([]HookDefinition, 0, len(gc.Hooks))}
	for _, hc := range gc.Hooks {
		g.Hooks = append(g.Hooks, HookDefinition{
			ID:      hc.ID,
			Type:    HookType(hc.Type),
			Command: hc.Command,
			Prompt:  hc.Prompt,
			Timeout: hc.TimeoutDuration(),
			Once:    hc.Once,
			Enabled: hc.Enabled,
		})
	}
	return g
}

// RemoveHook drops the hook with id from whichever group holds it.
// Groups left empty are removed too.
func (m *Manager) RemoveHook(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for event, groups := range m.groups {
		for gi, g := range groups {
			for hi, d := range g.Hooks {
				if d.ID != id {
					continue
				}
				hooks := append(append([]HookDefinition{}, g.Hooks[:hi]...), g.Hooks[hi+1:]...)
				updated := append([]HookGroup{}, groups[:gi]...)
				if len(hooks) > 0 {
					updated = append(updated, HookGroup{Matcher: g.Matcher, Hooks: hooks})
				}
				m.groups[event] = append(updated, groups[gi+1:]...)
				return true
			}
		}
	}
	return false
}

// Groups returns a copy of the groups registered for event.
func (m *Manager) Groups(event HookEvent) []HookGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]HookGroup, len(m.groups[event]))
	copy(out, m.groups[event])
	return out
}

// UpdateContext merges u into the session context. In-flight executions
// keep the snapshot they started with.
func (m *Manager) UpdateContext(u ContextUpdate) {
	m.ctxMu.Lock()
	defer m.ctxMu.Unlock()
	u.apply(&m.hctx)
}

// Context returns a snapshot of the session context.
func (m *Manager) Context() HookContext {
	m.ctxMu.RLock()
	defer m.ctxMu.RUnlock()
	return m.hctx
}

// ResetOnce forgets which once-hooks have run, e.g. for a new session.
func (m *Manager) ResetOnce() {
	m.once.Clear()
}

func onceKey(event HookEvent, id string) string {
	return string(event) + "/" + id
}

func (m *Manager) onceDone(event HookEvent, id string) bool {
	_, done := m.once.Load(onceKey(event, id))
	return done
}

// claimOnce atomically marks a once-hook as run; false means another call
// already claimed it.
func (m *Manager) claimOnce(event HookEvent, id string) bool {
	_, loaded := m.once.LoadOrStore(onceKey(event, id), struct{}{})
	return !loaded
}

// selectHooks returns the enabled hooks that apply to event, in group
// registration order, minus once-hooks that already ran.
func (m *Manager) selectHooks(event HookEvent, toolName string) []HookDefinition {
	m.mu.RLock()
	groups := m.groups[event]
	m.mu.RUnlock()

	if event.usesToolMatcher() {
		groups = FindMatchingHooks(toolName, groups)
	}

	var defs []HookDefinition
	for _, g := range groups {
		for _, d := range g.Hooks {
			if !d.IsEnabled() {
				continue
			}
			if d.Once && m.onceDone(event, d.ID) {
				continue
			}
			defs = append(defs, d)
		}
	}
	return defs
}

// ExecuteHooks runs every hook that applies to input and aggregates the
// verdict. Individual hook failures are reported in the result; the error
// is reserved for misuse such as a nil input.
func (m *Manager) ExecuteHooks(ctx context.Context, input HookInput) (HookEventResult, error) {
	if input == nil {
		return HookEventResult{}, errors.New("execute hooks: nil input")
	}
	event := input.Event()
	if !m.knownEvent(event) {
		return HookEventResult{}, fmt.Errorf("execute hooks: %w %q", ErrUnknownEvent, event)
	}
	m.eventsFired.Add(1)

	defs := m.selectHooks(event, toolNameOf(input))
	if len(defs) == 0 {
		return HookEventResult{
			Event:     event,
			AllPassed: true,
			Continue:  true,
			Results:   []HookExecutionResult{},
		}, nil
	}

	hctx := m.Context()
	log.Debug("firing %s: %d hook(s), %s mode", event, len(defs), m.mode)

	start := time.Now()
	var results []HookExecutionResult
	if m.mode == ModeSequential {
		results = m.runSequential(ctx, event, defs, input, hctx)
	} else {
		results = m.runParallel(ctx, event, defs, input, hctx)
	}
	res := aggregate(event, results)
	res.TotalDuration = time.Since(start)

	m.hooksExecuted.Add(int64(len(results)))
	for _, r := range results {
		if !r.Success {
			m.hooksFailed.Add(1)
		}
	}
	if !res.Continue {
		m.blocks.Add(1)
		log.Debug("%s blocked by hooks: %v", event, res.SystemMessages)
	}
	if !res.AllPassed && res.Continue {
		log.Warn("%s: some hooks failed without blocking", event)
	}
	return res, nil
}

func (m *Manager) knownEvent(event HookEvent) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.groups[event]
	return ok
}

// runSequential executes hooks one at a time and stops before the next
// hook once one returns continue=false.
func (m *Manager) runSequential(ctx context.Context, event HookEvent, defs []HookDefinition, input HookInput, hctx HookContext) []HookExecutionResult {
	results := make([]HookExecutionResult, 0, len(defs))
	for _, def := range defs {
		if def.Once && !m.claimOnce(event, def.ID) {
			continue
		}
		r := m.executor.ExecuteHook(ctx, def, input, hctx)
		results = append(results, r)
		if !r.continues() {
			break
		}
	}
	return results
}

// runParallel executes all hooks concurrently. Results keep discovery
// order regardless of completion order.
func (m *Manager) runParallel(ctx context.Context, event HookEvent, defs []HookDefinition, input HookInput, hctx HookContext) []HookExecutionResult {
	slots := make([]HookExecutionResult, len(defs))
	ran := make([]bool, len(defs))

	var g errgroup.Group
	if m.maxConcurrency > 0 {
		g.SetLimit(m.maxConcurrency)
	}
	for i, def := range defs {
		g.Go(func() error {
			if def.Once && !m.claimOnce(event, def.ID) {
				return nil
			}
			slots[i] = m.executor.ExecuteHook(ctx, def, input, hctx)
			ran[i] = true
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	results := make([]HookExecutionResult, 0, len(defs))
	for i := range slots {
		if ran[i] {
			results = append(results, slots[i])
		}
	}
	return results
}

// Stats summarizes registrations and activity.
type Stats struct {
	Mode          ExecutionMode
	TotalHooks    int
	HooksByEvent  map[HookEvent]int
	GroupsByEvent map[HookEvent]int
	OnceExecuted  int
	EventsFired   int64
	HooksExecuted int64
	Blocks        int64
	// HooksFailed counts hooks with Success=false, blocking hooks included.
	HooksFailed   int64
}

// Stats returns registration counts and execution counters.
func (m *Manager) Stats() Stats {
	s := Stats{
		Mode:          m.mode,
		HooksByEvent:  make(map[HookEvent]int, len(allEvents)),
		GroupsByEvent: make(map[HookEvent]int, len(allEvents)),
		EventsFired:   m.eventsFired.Load(),
		HooksExecuted: m.hooksExecuted.Load(),
		Blocks:        m.blocks.Load(),
		HooksFailed:   m.hooksFailed.Load(),
	}

	m.mu.RLock()
	for event, groups := range m.groups {
		s.GroupsByEvent[event] = len(groups)
		for _, g := range groups {
			s.HooksByEvent[event] += len(g.Hooks)
			s.TotalHooks += len(g.Hooks)
		}
	}
	m.mu.RUnlock()

	m.once.Range(func(_, _ any) bool {
		s.OnceExecuted++
		return true
	})
	return s
}
