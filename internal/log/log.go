// ABOUTME: Level-gated logging over a slog text handler for hook engine diagnostics
// ABOUTME: Global atomic level via SetLevel/PI_HOOKS_LOG_LEVEL; writes to stderr by default

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// EnvLevel names the environment variable read at startup for the initial level.
const EnvLevel = "PI_HOOKS_LOG_LEVEL"

var (
	level  slog.LevelVar
	mu     sync.RWMutex
	logger *slog.Logger
)

func init() {
	level.Set(LevelInfo)
	if lvl, ok := ParseLevel(os.Getenv(EnvLevel)); ok {
		level.Set(lvl)
	}
	logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level}))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return level.Level()
}

// SetOutput redirects log output; tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// Logger returns the underlying slog logger for callers that want attributes.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func emit(l slog.Level, format string, args ...any) {
	if level.Level() > l {
		return
	}
	Logger().Log(context.Background(), l, fmt.Sprintf(format, args...))
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	emit(LevelDebug, format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	emit(LevelInfo, format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	emit(LevelWarn, format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	Logger().Log(context.Background(), LevelError, fmt.Sprintf(format, args...))
}
