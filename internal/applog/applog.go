// Package applog wraps zerolog the way the chaos-utils reporting package
// wraps it: a small configurable Logger with a package-level Default
// constructor, rather than reaching for zerolog's global logger directly
// throughout the codebase.
package applog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config controls how a Logger is built.
type Config struct {
	Level  zerolog.Level
	Format Format
	Output io.Writer
}

// Logger is a structured logger. The log driver uses it to warn when a scan
// stops early and the worker pool to warn when a job never starts; dropped
// lines and cache hit/miss decisions are not logged.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger from cfg. Output defaults to stdout and Format to JSON;
// an unset Level is zerolog's zero value, DebugLevel.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	out := cfg.Output
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).With().Timestamp().Logger().Level(cfg.Level)
	return &Logger{z: z}
}

// Default returns a Logger at info level writing JSON to stdout.
func Default() *Logger {
	return New(Config{Level: zerolog.InfoLevel})
}

// With returns a child logger with the given key/value pairs attached to
// every subsequent entry (e.g. "filename", the file under parse).
func (l *Logger) With(kv ...any) *Logger {
	ctx := l.z.With()
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		ctx = ctx.Interface(key, kv[i+1])
	}
	return &Logger{z: ctx.Logger()}
}

func (l *Logger) Debug(msg string) { l.z.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.z.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.z.Warn().Msg(msg) }

func (l *Logger) Err(err error, msg string) {
	l.z.Error().Err(err).Msg(msg)
}
