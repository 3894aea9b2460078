// Package logging provides the leveled logger used by the command line tools.
package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

// Level is a logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a case-insensitive level name. Unknown names fall back
// to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled messages through a standard library logger.
type Logger struct {
	level Level
	out   *log.Logger
}

// New returns a logger writing to stderr at the named level.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter returns a logger writing to w at the named level.
func NewWithWriter(level string, w io.Writer) *Logger {
	return &Logger{
		level: ParseLevel(level),
		out:   log.New(w, "diffract ", log.LstdFlags),
	}
}

// Level reports the active threshold.
func (l *Logger) Level() Level { return l.level }

func (l *Logger) shouldLog(level Level) bool {
	return level >= l.level
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.shouldLog(LevelDebug) {
		l.out.Printf("[DEBUG] "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.shouldLog(LevelInfo) {
		l.out.Printf("[INFO] "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.shouldLog(LevelWarn) {
		l.out.Printf("[WARN] "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.shouldLog(LevelError) {
		l.out.Printf("[ERROR] "+format, v...)
	}
}

// Fatalf logs the message and exits the process.
func (l *Logger) Fatalf(format string, v ...any) {
	l.out.Fatalf("[FATAL] "+format, v...)
}
