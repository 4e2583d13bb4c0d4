package job

import (
	"fmt"
	"io"
	"log"
	"os"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for per-worker detail such as assigned ranges.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for run start and completion.
	LogLevelInfo
	// LogLevelWarn is for cancelled runs and recoverable setup problems.
	LogLevelWarn
	// LogLevelError is for failed runs.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger receives human-readable progress messages from a Job.
// Logging never changes how a run behaves. If no Logger is set, a
// NoOpLogger is used.
type Logger interface {
	// Log writes a message at the given level. The message is formatted
	// with fmt.Sprintf if args are provided.
	Log(level LogLevel, format string, args ...any)

	// Debug logs a debug-level message.
	Debug(format string, args ...any)

	// Info logs an info-level message.
	Info(format string, args ...any)

	// Warn logs a warning-level message.
	Warn(format string, args ...any)

	// Error logs an error-level message.
	Error(format string, args ...any)
}

// NoOpLogger discards all messages. It is the default Logger.
type NoOpLogger struct{}

// Log implements the Logger interface.
func (n *NoOpLogger) Log(level LogLevel, format string, args ...any) {}

// Debug implements the Logger interface.
func (n *NoOpLogger) Debug(format string, args ...any) {}

// Info implements the Logger interface.
func (n *NoOpLogger) Info(format string, args ...any) {}

// Warn implements the Logger interface.
func (n *NoOpLogger) Warn(format string, args ...any) {}

// Error implements the Logger interface.
func (n *NoOpLogger) Error(format string, args ...any) {}

// SimpleLogger writes timestamped lines through the standard log package.
// Debug and Info go to one writer, Warn and Error to another.
type SimpleLogger struct {
	// MinLevel is the lowest level written. Lower levels are dropped.
	MinLevel LogLevel

	// StdoutLogger handles Debug and Info messages.
	StdoutLogger *log.Logger

	// StderrLogger handles Warn and Error messages.
	StderrLogger *log.Logger
}

// NewSimpleLogger returns a SimpleLogger writing to stdout and stderr.
func NewSimpleLogger(minLevel LogLevel) *SimpleLogger {
	return NewSimpleLoggerTo(minLevel, os.Stdout, os.Stderr)
}

// NewSimpleLoggerTo returns a SimpleLogger writing Debug and Info messages to
// out and Warn and Error messages to errOut.
func NewSimpleLoggerTo(minLevel LogLevel, out, errOut io.Writer) *SimpleLogger {
	return &SimpleLogger{
		MinLevel:     minLevel,
		StdoutLogger: log.New(out, "", log.LstdFlags),
		StderrLogger: log.New(errOut, "", log.LstdFlags),
	}
}

// Log implements the Logger interface.
func (s *SimpleLogger) Log(level LogLevel, format string, args ...any) {
	if level < s.MinLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)

	switch level {
	case LogLevelDebug, LogLevelInfo:
		s.StdoutLogger.Printf("[%s] %s", level, msg)
	case LogLevelWarn, LogLevelError:
		s.StderrLogger.Printf("[%s] %s", level, msg)
	}
}

// Debug implements the Logger interface.
func (s *SimpleLogger) Debug(format string, args ...any) {
	s.Log(LogLevelDebug, format, args...)
}

// Info implements the Logger interface.
func (s *SimpleLogger) Info(format string, args ...any) {
	s.Log(LogLevelInfo, format, args...)
}

// Warn implements the Logger interface.
func (s *SimpleLogger) Warn(format string, args ...any) {
	s.Log(LogLevelWarn, format, args...)
}

// Error implements the Logger interface.
func (s *SimpleLogger) Error(format string, args ...any) {
	s.Log(LogLevelError, format, args...)
}

// runLogger tags every message with the ID of the run it belongs to.
type runLogger struct {
	Logger
	id string
}

func (l runLogger) Log(level LogLevel, format string, args ...any) {
	l.Logger.Log(level, "run %s: "+format, append([]any{l.id}, args...)...)
}

func (l runLogger) Debug(format string, args ...any) { l.Log(LogLevelDebug, format, args...) }
func (l runLogger) Info(format string, args ...any)  { l.Log(LogLevelInfo, format, args...) }
func (l runLogger) Warn(format string, args ...any)  { l.Log(LogLevelWarn, format, args...) }
func (l runLogger) Error(format string, args ...any) { l.Log(LogLevelError, format, args...) }
