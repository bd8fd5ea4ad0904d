// ABOUTME: Tests for the polling hooks-file watcher
// ABOUTME: Covers edits, creation, deletion, and cancellation of Run

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_Changed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "hooks.json")
	missing := filepath.Join(dir, "hooks.local.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher([]string{path, missing}, time.Hour)
	if w.Changed() {
		t.Fatal("no edits yet")
	}

	if err := os.WriteFile(path, []byte(`{"Stop": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if !w.Changed() {
		t.Error("size change not detected")
	}
	if w.Changed() {
		t.Error("change reported twice")
	}

	if err := os.WriteFile(missing, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if !w.Changed() {
		t.Error("new file not detected")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !w.Changed() {
		t.Error("removal not detected")
	}
}

func TestWatcher_ModTimeOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hooks.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	w := NewWatcher([]string{path}, time.Hour)

	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if !w.Changed() {
		t.Error("mtime change not detected")
	}
}

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hooks.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w := NewWatcher([]string{path}, 20*time.Millisecond)
	go func() {
		defer close(done)
		w.Run(ctx, func() { calls.Add(1) })
	}()

	if err := os.WriteFile(path, []byte(`{"Stop": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if calls.Load() != 1 {
		t.Errorf("onChange calls = %d; want 1", calls.Load())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewWatcher_DefaultInterval(t *testing.T) {
	t.Parallel()

	if w := NewWatcher(nil, 0); w.interval != DefaultWatchInterval {
		t.Errorf("interval = %v", w.interval)
	}
}
