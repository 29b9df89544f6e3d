// Package logger wraps zerolog for the CLI and the HTTP server.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects output format and level
type Config struct {
	Env   string // development: console output; anything else: JSON
	Level string // trace, debug, info, warn, error
	// Writer overrides the destination; nil means stderr
	Writer io.Writer
}

// Logger is a thin wrapper over zerolog.Logger
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger and installs it as the global zerolog logger
func New(cfg Config) *Logger {
	var w io.Writer = os.Stderr
	if cfg.Writer != nil {
		w = cfg.Writer
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: cfg.Writer != nil}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// With starts a child logger context
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog exposes the underlying logger
func (l *Logger) Zerolog() *zerolog.Logger { return &l.zl }
