// Package llog implements a simple logger on top of stdlib's log with two log levels.
package llog

import (
	"io"
	"log"
)

type Logger struct {
	*log.Logger
	dbg bool
}

func NewLogger(logger *log.Logger, debug bool) *Logger {
	return &Logger{logger, debug}
}

// New logs to w with the given prefix and no timestamps; CLI output is read
// by people, not collected.
func New(w io.Writer, prefix string, debug bool) *Logger {
	return NewLogger(log.New(w, prefix, 0), debug)
}

// Discard drops everything.
func Discard() *Logger {
	return NewLogger(log.New(io.Discard, "", 0), false)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.dbg {
		l.Printf(format, args...)
	}
}

func (l *Logger) Debugln(args ...any) {
	if l.dbg {
		l.Println(args...)
	}
}

func (l *Logger) DebugEnabled() bool { return l.dbg }
