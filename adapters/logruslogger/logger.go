// Package logruslogger implements logger.Logger on top of logrus.
package logruslogger

import (
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	log "github.com/sirupsen/logrus"
)

// Logger forwards structured fields to a logrus entry.
type Logger struct {
	entry *log.Entry
}

var _ logger.Logger = (*Logger)(nil)

// New wraps a logrus logger; nil uses the standard logger.
func New(base *log.Logger) *Logger {
	if base == nil {
		base = log.StandardLogger()
	}
	return &Logger{entry: log.NewEntry(base)}
}

func (l *Logger) With(fields ...logger.Field) logger.Logger {
	if len(fields) == 0 {
		return l
	}
	return &Logger{entry: l.entry.WithFields(toFields(fields))}
}

func (l *Logger) Debug(msg string, fields ...logger.Field) {
	l.entry.WithFields(toFields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields ...logger.Field) {
	l.entry.WithFields(toFields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields ...logger.Field) {
	l.entry.WithFields(toFields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, fields ...logger.Field) {
	l.entry.WithFields(toFields(fields)).Error(msg)
}

func toFields(fields []logger.Field) log.Fields {
	out := make(log.Fields, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok && f.Key == "error" {
			out[log.ErrorKey] = err
			continue
		}
		out[f.Key] = f.Value
	}
	return out
}
