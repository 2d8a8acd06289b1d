package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger and tags every record with a component name
type Logger struct {
	*slog.Logger
	base      *slog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
}

// DefaultConfig returns the CLI defaults: warnings and errors on stderr
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelWarn,
		Component: "ledger",
		Output:    os.Stderr,
	}
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	base := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: config.Level}))
	return &Logger{
		Logger:    base.With("component", config.Component),
		base:      base,
		component: config.Component,
	}
}

// Discard returns a logger that drops everything. Used as the zero-value fallback.
func Discard() *Logger {
	return New(Config{Level: slog.LevelError + 1, Component: "discard", Output: io.Discard})
}

// WithComponent returns a new logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With("component", component),
		base:      l.base,
		component: component,
	}
}

// Component returns the logger's component name
func (l *Logger) Component() string {
	return l.component
}

// LevelFor maps the CLI verbosity switch to a slog level
func LevelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
