// Package logger holds the structured logger shared by every poolkit package.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger instance. It defaults to warnings and errors on
// stderr so leak reports surface without any setup. Setting POOLKIT_LOG_ALLOC
// lowers the default level to debug, which traces class creation and
// container growth/eviction.
// Call Init() to redirect or silence it.
var L *slog.Logger = newDefault()

// EnvLogAlloc is the environment variable enabling allocation tracing.
const EnvLogAlloc = "POOLKIT_LOG_ALLOC"

// Options configures the logger initialization.
type Options struct {
	Disabled bool         // If true, all logging is discarded
	Writer   io.Writer    // Destination. Default: os.Stderr
	Level    slog.Leveler // Minimum log level. Default: slog.LevelWarn
	JSON     bool         // Emit JSON records instead of text
}

func newDefault() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv(EnvLogAlloc) != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Set replaces the global logger. A nil logger restores the default.
func Set(l *slog.Logger) {
	if l == nil {
		l = newDefault()
	}
	L = l
}

// Init configures logging. Call from main() (or a test) before allocating.
func Init(opts Options) {
	if opts.Disabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelWarn
	if opts.Level != nil {
		level = opts.Level
	}

	hopts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(w, hopts))
		return
	}
	L = slog.New(slog.NewTextHandler(w, hopts))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
