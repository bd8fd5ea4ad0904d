// ABOUTME: Polling watcher that reports when hooks files change on disk
// ABOUTME: Compares mtime and size per path; a file appearing or disappearing counts as a change

package config

import (
	"context"
	"os"
	"time"
)

// DefaultWatchInterval is the polling period used when none is given.
const DefaultWatchInterval = 2 * time.Second

// fileState is what the watcher compares between polls.
type fileState struct {
	exists  bool
	modTime time.Time
	size    int64
}

func (s fileState) same(o fileState) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

// Watcher polls a fixed set of hooks files.
type Watcher struct {
	paths    []string
	interval time.Duration
	states   map[string]fileState
}

// NewWatcher snapshots paths immediately, so only later edits are reported.
func NewWatcher(paths []string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	w := &Watcher{
		paths:    append([]string(nil), paths...),
		interval: interval,
		states:   make(map[string]fileState, len(paths)),
	}
	w.Changed()
	return w
}

// Changed re-stats every path and reports whether any differs from the
// previous snapshot.
func (w *Watcher) Changed() bool {
	changed := false
	for _, p := range w.paths {
		var cur fileState
		if info, err := os.Stat(p); err == nil {
			cur = fileState{exists: true, modTime: info.ModTime(), size: info.Size()}
		}
		if prev, seen := w.states[p]; seen && !prev.same(cur) {
			changed = true
		}
		w.states[p] = cur
	}
	return changed
}

// Run polls until ctx is done, calling onChange after each detected change.
// onChange runs on the polling goroutine; the next poll waits for it.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.Changed() {
				onChange()
			}
		}
	}
}
