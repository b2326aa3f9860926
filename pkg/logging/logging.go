// Package logging provides the request tracing used by scratch-io's one-shot
// commands. Trace output is disabled unless debugging is enabled through the
// environment, so ordinary command output stays clean.
package logging

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/Vidi0/scratch-io/pkg/scratchio"
)

// Logger emits trace lines for a single subsystem. A nil Logger is valid and
// discards everything, so components can accept one without guarding.
type Logger struct {
	// prefix identifies the subsystem in trace output.
	prefix string
}

// RootLogger is the root logger from which subsystem loggers derive.
var RootLogger = &Logger{}

// Sublogger creates a logger for the named subsystem. Nested subsystems
// accumulate dot-separated prefixes.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{prefix: prefix}
}

// Debugf writes a formatted trace line to standard error when debugging is
// enabled. It is a no-op otherwise.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l == nil || !scratchio.DebugEnabled {
		return
	}
	line := fmt.Sprintf(format, v...)
	if l.prefix != "" {
		line = color.New(color.Faint).Sprintf("[%s]", l.prefix) + " " + line
	}
	fmt.Fprintln(color.Error, line)
}
