// SPDX-License-Identifier: EPL-2.0

// Package log is a small leveled logger backed by logrus.
// Nothing on the audio render path logs; only setup, load and control code
// does.
package log

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name. Unknown names map to LevelInfo.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger is safe for concurrent use. A nil *Logger drops everything.
type Logger struct {
	entry *logrus.Entry
	level *Level
}

func New(out io.Writer, level Level) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})

	lg := &Logger{
		entry: logrus.NewEntry(l),
		level: new(Level),
	}
	lg.SetLevel(level)
	return lg
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

// With returns a logger that adds key=value to every line. It shares the
// level and output of l.
func (l *Logger) With(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{entry: l.entry.WithField(key, value), level: l.level}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l != nil {
		l.entry.Debugf(format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l != nil {
		l.entry.Infof(format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l != nil {
		l.entry.Warnf(format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l != nil {
		l.entry.Errorf(format, v...)
	}
}

// SetLevel changes the level of l and every logger derived from it with
// With. LevelNone keeps only panics, which nothing here logs.
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	*l.level = level
	l.entry.Logger.SetLevel(logrusLevel(level))
}

func (l *Logger) Level() Level {
	if l == nil {
		return LevelNone
	}
	return *l.level
}

func logrusLevel(level Level) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.PanicLevel
	}
}
