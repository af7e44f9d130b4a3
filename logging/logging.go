// Package logging provides structured logging for the player. It is a thin
// facade over zerolog so that callers deal in message + field maps and never
// in backend types.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Fields holds structured log fields.
type Fields map[string]any

// Logger is the logging interface used throughout the codebase.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

type zerologLogger struct {
	zl zerolog.Logger
}

var (
	mu     sync.RWMutex
	global = newLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel))
)

func newLogger(zl zerolog.Logger) *zerologLogger {
	return &zerologLogger{zl: zl}
}

// Configure replaces the global logger. level is one of "debug", "info",
// "warn", "error"; unknown values fall back to "info". The TUI passes
// io.Discard here so log lines never corrupt the alternate screen.
func Configure(level string, out io.Writer) {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	if out == nil {
		out = os.Stderr
	}

	mu.Lock()
	global = newLogger(zerolog.New(out).With().Timestamp().Logger().Level(lvl))
	mu.Unlock()
}

func current() *zerologLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// WithFields returns a logger that includes the given fields on every line.
func WithFields(fields Fields) Logger {
	return current().WithFields(fields)
}

// Debug logs at debug level using the global logger.
func Debug(msg string, fields ...Fields) { current().Debug(msg, fields...) }

// Info logs at info level using the global logger.
func Info(msg string, fields ...Fields) { current().Info(msg, fields...) }

// Warn logs at warn level using the global logger.
func Warn(msg string, fields ...Fields) { current().Warn(msg, fields...) }

// Error logs err and msg at error level using the global logger.
func Error(err error, msg string, fields ...Fields) { current().Error(err, msg, fields...) }

func (l *zerologLogger) WithFields(fields Fields) Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return newLogger(ctx.Logger())
}

func (l *zerologLogger) Debug(msg string, fields ...Fields) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...Fields) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...Fields) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(err error, msg string, fields ...Fields) {
	ev := l.zl.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	emit(ev, msg, fields)
}

func emit(ev *zerolog.Event, msg string, fields []Fields) {
	for _, f := range fields {
		for k, v := range f {
			ev = ev.Interface(k, v)
		}
	}
	ev.Msg(msg)
}
