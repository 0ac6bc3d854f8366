// Package telemetry wraps zerolog for the CLI's run logging. It is an
// ambient concern: the core search never depends on it; cmd/grfc uses it
// to report the start and the outcome of a search.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level is a logging verbosity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the on-wire encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger is a structured logger for one factor run.
type Logger struct {
	logger zerolog.Logger
}

// New builds a Logger from cfg, defaulting to JSON on stdout at info
// level.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	var output io.Writer = cfg.Output
	if cfg.Format == FormatText {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	zlog := zerolog.New(output).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		zlog = zlog.Level(zerolog.DebugLevel)
	case LevelWarn:
		zlog = zlog.Level(zerolog.WarnLevel)
	case LevelError:
		zlog = zlog.Level(zerolog.ErrorLevel)
	default:
		zlog = zlog.Level(zerolog.InfoLevel)
	}
	return &Logger{logger: zlog}
}

// Info logs msg at info level with key/value fields.
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log(l.logger.Info(), msg, fields...)
}

// Warn logs msg at warn level with key/value fields.
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log(l.logger.Warn(), msg, fields...)
}

// Error logs msg at error level with key/value fields.
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.log(l.logger.Error(), msg, fields...)
}

// Debug logs msg at debug level with key/value fields.
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log(l.logger.Debug(), msg, fields...)
}

// WithField returns a child Logger carrying an additional field on every
// subsequent entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}

func (l *Logger) log(event *zerolog.Event, msg string, fields ...interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}
