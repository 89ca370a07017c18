// Package log provides structured logging for depprobe.
//
// The Logger interface is shaped after slog so that detectors can log
// probe activity without caring where it ends up. Library code receives a
// Logger through its execution environment; commands install a terminal
// handler at startup.
//
// Output semantics:
//   - User output (stdout): dependency reports, flags, JSON
//   - Diagnostic logging (stderr): Debug, Info, Warn, Error messages
//
// Verbosity levels:
//   - ERROR (--quiet): Errors only
//   - WARN (default): Warnings and user output
//   - INFO (--verbose): Which detector ran, which tool was found
//   - DEBUG (--debug): Every subprocess call and filesystem scan
package log

import (
	"io"
	"log/slog"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the interface for structured logging.
type Logger interface {
	// Debug logs at DEBUG level: subprocess arguments, scan results.
	Debug(msg string, args ...any)

	// Info logs at INFO level: detector selection, tool discovery.
	Info(msg string, args ...any)

	// Warn logs at WARN level: recoverable oddities such as an
	// unreadable library directory.
	Warn(msg string, args ...any)

	// Error logs at ERROR level.
	Error(msg string, args ...any)

	// With returns a Logger that adds the given key-value pairs to
	// every entry.
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New creates a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

// NewTerminal creates a Logger that renders entries for humans on w
// using charmbracelet/log. Entries below level are dropped.
func NewTerminal(w io.Writer, level slog.Level) Logger {
	h := charmlog.NewWithOptions(w, charmlog.Options{
		Level:  charmLevel(level),
		Prefix: "depprobe",
	})
	return New(h)
}

// LevelFromFlags maps the CLI verbosity flags to a slog level.
// quiet wins over debug, and debug wins over verbose.
func LevelFromFlags(quiet, verbose, debug bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}

func (s *slogLogger) Debug(msg string, args ...any) {
	s.l.Debug(msg, args...)
}

func (s *slogLogger) Info(msg string, args ...any) {
	s.l.Info(msg, args...)
}

func (s *slogLogger) Warn(msg string, args ...any) {
	s.l.Warn(msg, args...)
}

func (s *slogLogger) Error(msg string, args ...any) {
	s.l.Error(msg, args...)
}

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

type noopLogger struct{}

// NewNoop returns a logger that discards all output.
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

// SetDefault sets the global logger. Call it once from main after the
// verbosity flags are parsed.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
