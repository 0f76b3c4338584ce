package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// DefaultContextProvider supplies the context for logging calls that do not
// take one.
var DefaultContextProvider = context.TODO

var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

// Config replaces the package default logger with one writing to stderr,
// configured by opts, and returns it.
func Config(opts ...Option) Logger {
	l := Make(os.Stderr, opts...)

	defaultMu.Lock()
	defaultLog = l
	defaultMu.Unlock()

	return l
}

// Default returns the package default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// Package-level functions skip runtime.Callers, logAt, and themselves.
const pkgSkip = 3

// Trace logs at [LevelTrace] with the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	Default().logAt(DefaultContextProvider(), pkgSkip, LevelTrace, msg, attrs...)
}

// Debug logs at [LevelDebug] with the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().logAt(DefaultContextProvider(), pkgSkip, LevelDebug, msg, attrs...)
}

// DebugContext logs at [LevelDebug] with the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logAt(ctx, pkgSkip, LevelDebug, msg, attrs...)
}

// Info logs at [LevelInfo] with the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().logAt(DefaultContextProvider(), pkgSkip, LevelInfo, msg, attrs...)
}

// InfoContext logs at [LevelInfo] with the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logAt(ctx, pkgSkip, LevelInfo, msg, attrs...)
}

// Warn logs at [LevelWarn] with the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().logAt(DefaultContextProvider(), pkgSkip, LevelWarn, msg, attrs...)
}

// Error logs at [LevelError] with the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().logAt(DefaultContextProvider(), pkgSkip, LevelError, msg, attrs...)
}

// ErrorContext logs at [LevelError] with the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logAt(ctx, pkgSkip, LevelError, msg, attrs...)
}
