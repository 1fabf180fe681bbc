package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger is a small leveled logger writing key=value lines. An instance is
// created at startup from the configured level and passed to the components
// that need one.
type Logger struct {
	out      *stdlog.Logger
	minLevel Level
}

func New(w io.Writer, min Level) *Logger {
	return &Logger{
		out:      stdlog.New(w, "", stdlog.LstdFlags),
		minLevel: min,
	}
}

// NewStderr returns a logger writing to stderr at the given level.
func NewStderr(min Level) *Logger {
	return New(os.Stderr, min)
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

func (l *Logger) Debug(msg string, kv ...any) {
	l.log(LevelDebug, msg, kv...)
}

func (l *Logger) Info(msg string, kv ...any) {
	l.log(LevelInfo, msg, kv...)
}

func (l *Logger) Error(msg string, err error, kv ...any) {
	extended := append([]any{"err", err}, kv...)
	l.log(LevelError, msg, extended...)
}

func (l *Logger) log(level Level, msg string, kv ...any) {
	if l == nil || level < l.minLevel {
		return
	}
	line := "[" + level.String() + "] " + msg
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		line += " " + key + "=" + fmt.Sprint(kv[i+1])
	}
	l.out.Println(line)
}
