// Package log provides structured logging for chromedrv.
//
// It defines a small Logger interface backed by Go's stdlib slog so that
// subsystems can log without a hard dependency on a concrete handler.
// Subsystems accept the Logger via functional options, with a global
// default for convenience.
//
// Verbosity levels:
//   - ERROR (--quiet): errors only
//   - WARN (default): warnings, e.g. browser detection failures
//   - INFO (--verbose): operational context (resolved versions, URLs)
//   - DEBUG (--debug): internal state and troubleshooting details
package log

import (
	"log/slog"
	"sync"
)

// Logger is the interface for structured logging.
// Methods match slog's signature for easy integration.
type Logger interface {
	// Debug logs at DEBUG level. Use for internal state such as
	// which probe command matched or which endpoint was consulted.
	Debug(msg string, args ...any)

	// Info logs at INFO level. Use for operational context like
	// "resolved driver version" or "downloading archive".
	Info(msg string, args ...any)

	// Warn logs at WARN level. Use for soft failures like
	// "no installed browser found, falling back to latest".
	Warn(msg string, args ...any)

	// Error logs at ERROR level. Use for failures that abort
	// the command.
	Error(msg string, args ...any)

	// With returns a Logger that includes the given key-value pairs
	// in all subsequent log entries.
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New creates a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

// noopLogger discards all log output.
type noopLogger struct{}

// NewNoop returns a logger that discards all output.
// Useful for tests or when logging should be disabled.
func NewNoop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) With(...any) Logger   { return noopLogger{} }

var (
	defaultLogger Logger = noopLogger{}
	defaultMu     sync.RWMutex
)

// Default returns the global logger configured at startup.
// Returns a noop logger if SetDefault has not been called.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the global logger. Called once during program
// initialization, after parsing verbosity flags.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
