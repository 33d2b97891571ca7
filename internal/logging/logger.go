// Package logging implements hubspot.Logger on top of zerolog.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Logger adapts a zerolog.Logger to hubspot.Logger.
type Logger struct {
	logger zerolog.Logger
}

var _ hubspot.Logger = (*Logger)(nil)

// New returns a JSON logger writing to w at level. Unknown levels fall back
// to info.
func New(w io.Writer, level string) *Logger {
	return NewWithLogger(zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger())
}

// NewConsole returns a human-readable logger for terminals.
func NewConsole(w io.Writer, level string) *Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}

	return NewWithLogger(zerolog.New(console).Level(ParseLevel(level)).With().Timestamp().Logger())
}

// NewWithLogger wraps an existing zerolog logger.
func NewWithLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger}
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return parsed
}

// Zerolog returns the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// Debug implements hubspot.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

// Info implements hubspot.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

// Warn implements hubspot.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

// Error implements hubspot.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
