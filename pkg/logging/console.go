package logging

import (
	"context"
	"io"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// ConsoleLogger writes styled, human-oriented log lines to a terminal.
type ConsoleLogger struct {
	logger *charmlog.Logger
}

// NewConsoleLogger creates a console logger writing to w at the given level.
func NewConsoleLogger(w io.Writer, level Level) *ConsoleLogger {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
	})
	logger.SetLevel(charmLevel(level))
	logger.SetStyles(consoleStyles())
	return &ConsoleLogger{logger: logger}
}

// consoleStyles builds the lipgloss level styles for console output.
func consoleStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()

	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Bold(true).
		Foreground(lipgloss.Color("63"))

	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO ").
		Bold(true).
		Foreground(lipgloss.Color("86"))

	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN ").
		Bold(true).
		Foreground(lipgloss.Color("192"))

	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))

	return styles
}

func charmLevel(level Level) charmlog.Level {
	switch level {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func flatten(fields Fields) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.logger.Debug(msg, flatten(fields)...)
}

// Info logs an info message
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.logger.Info(msg, flatten(fields)...)
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.logger.Warn(msg, flatten(fields)...)
}

// Error logs an error message
func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err)
	}
	l.logger.Error(msg, kv...)
}

// WithFields returns a logger with additional fields
func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	return &ConsoleLogger{logger: l.logger.With(flatten(fields)...)}
}

// Close does nothing for console output
func (l *ConsoleLogger) Close() error {
	return nil
}
