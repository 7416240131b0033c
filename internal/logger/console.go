// Package logger provides leveled console logging for advisor commands.
// Output is timestamped, thread-safe, and colored when the destination
// is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

var levelNames = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// ConsoleLogger logs to a writer with [HH:MM:SS] timestamps and level
// filtering. Color output is enabled automatically when writing to a
// TTY; NO_COLOR and non-terminal destinations disable it.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to the provided
// writer. If writer is nil, messages are silently discarded. Empty or
// invalid levels default to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(logLevel))]
	if !ok {
		level = levelInfo
	}

	return &ConsoleLogger{
		writer:      writer,
		level:       level,
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether the writer is a TTY that supports color
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorOutput overrides automatic color detection
func (cl *ConsoleLogger) SetColorOutput(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.colorOutput = enabled
}

func (cl *ConsoleLogger) log(level int, label string, paint *color.Color, format string, args ...interface{}) {
	if cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)

	if cl.colorOutput && paint != nil {
		fmt.Fprintf(cl.writer, "[%s] %s %s\n", timestamp, paint.Sprintf("%-5s", label), message)
		return
	}
	fmt.Fprintf(cl.writer, "[%s] %-5s %s\n", timestamp, label, message)
}

// Tracef logs at trace level
func (cl *ConsoleLogger) Tracef(format string, args ...interface{}) {
	cl.log(levelTrace, "TRACE", color.New(color.FgHiBlack), format, args...)
}

// Debugf logs at debug level
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.log(levelDebug, "DEBUG", color.New(color.FgCyan), format, args...)
}

// Infof logs at info level
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.log(levelInfo, "INFO", color.New(color.FgGreen), format, args...)
}

// Warnf logs at warn level
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.log(levelWarn, "WARN", color.New(color.FgYellow), format, args...)
}

// Errorf logs at error level
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.log(levelError, "ERROR", color.New(color.FgRed), format, args...)
}
