// Package zerologger implements logger.Logger on top of zerolog.
package zerologger

import (
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger forwards structured fields to a zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

var _ logger.Logger = (*Logger)(nil)

// New wraps an existing zerolog logger.
func New(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// NewConsole writes human readable lines to w (stdout when nil).
func NewConsole(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stdout
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	return New(zerolog.New(cw).Level(ParseLevel(level)).With().Timestamp().Logger())
}

// NewJSON writes one JSON document per line to w (stdout when nil).
func NewJSON(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return New(zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger())
}

// NewFromFormat picks the console or JSON writer.
func NewFromFormat(w io.Writer, format, level string) *Logger {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return NewJSON(w, level)
	}
	return NewConsole(w, level)
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) With(fields ...logger.Field) logger.Logger {
	if len(fields) == 0 {
		return l
	}
	ctx := l.zl.With()
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			ctx = ctx.AnErr(f.Key, err)
			continue
		}
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) Debug(msg string, fields ...logger.Field) { write(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...logger.Field)  { write(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...logger.Field)  { write(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...logger.Field) { write(l.zl.Error(), msg, fields) }

func write(e *zerolog.Event, msg string, fields []logger.Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			e = e.AnErr(f.Key, err)
			continue
		}
		e = e.Interface(f.Key, f.Value)
	}
	e.Msg(msg)
}
