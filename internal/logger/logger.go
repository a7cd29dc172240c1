// Package logger provides the small logging interface liveline components use.
// Debug output is opt-in through LIVELINE_DEBUG so the status line stays
// clean during normal runs.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// DebugEnv is the environment variable that turns on debug messages.
const DebugEnv = "LIVELINE_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// envLogger writes through a stdlib *log.Logger.
// Debug messages are only printed when LIVELINE_DEBUG is set.
type envLogger struct {
	prefix string
	out    *log.Logger
}

// NewEnvLogger creates a logger that writes to the stdlib default logger and
// respects LIVELINE_DEBUG. The prefix is prepended to every message
// (e.g. "[config]" or "[exec]").
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix, out: log.Default()}
}

// NewWriterLogger is NewEnvLogger with its own destination.
func NewWriterLogger(w io.Writer, prefix string) Logger {
	return &envLogger{prefix: prefix, out: log.New(w, "", 0)}
}

func (l *envLogger) printf(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.prefix != "" && level != "":
		l.out.Printf("%s %s: %s", l.prefix, level, msg)
	case l.prefix != "":
		l.out.Printf("%s %s", l.prefix, msg)
	case level != "":
		l.out.Printf("%s: %s", level, msg)
	default:
		l.out.Print(msg)
	}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if os.Getenv(DebugEnv) != "" {
		l.printf("", format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.printf("", format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.printf("WARN", format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.printf("ERROR", format, args...)
}

// noopLogger discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}

var defaultLogger Logger = Noop()

// Default returns the package-level logger. Packages fall back to it when
// no logger is injected; it discards everything until SetDefault is called.
func Default() Logger {
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) {
	defaultLogger = l
}
