// Package log wraps log/slog with a component field so every line can be
// traced back to the part of the front-end that emitted it.
package log

import (
	"context"
	"log/slog"
	"os"
)

// Logger carries a component name alongside a slog.Logger.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
	}
}

// New creates a logger with the given configuration.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}
	return &Logger{
		Logger:    slog.New(handler),
		component: config.Component,
	}
}

// WithComponent returns a logger scoped to a specific component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) args(extra []any) []any {
	return append([]any{FieldComponent, l.component}, extra...)
}

// Info logs at Info level with the component field attached.
func (l *Logger) Info(msg string, extra ...any) {
	l.Logger.Info(msg, l.args(extra)...)
}

// InfoContext logs at Info level with context and component.
func (l *Logger) InfoContext(ctx context.Context, msg string, extra ...any) {
	l.Logger.InfoContext(ctx, msg, l.args(extra)...)
}

// Warn logs at Warn level with the component field attached.
func (l *Logger) Warn(msg string, extra ...any) {
	l.Logger.Warn(msg, l.args(extra)...)
}

// WarnContext logs at Warn level with context and component.
func (l *Logger) WarnContext(ctx context.Context, msg string, extra ...any) {
	l.Logger.WarnContext(ctx, msg, l.args(extra)...)
}

// Error logs at Error level with the component field attached.
func (l *Logger) Error(msg string, extra ...any) {
	l.Logger.Error(msg, l.args(extra)...)
}

// ErrorContext logs at Error level with context and component.
func (l *Logger) ErrorContext(ctx context.Context, msg string, extra ...any) {
	l.Logger.ErrorContext(ctx, msg, l.args(extra)...)
}

// Debug logs at Debug level with the component field attached.
func (l *Logger) Debug(msg string, extra ...any) {
	l.Logger.Debug(msg, l.args(extra)...)
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}
