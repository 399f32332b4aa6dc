// Package tntnlog is the small leveled logger used throughout the
// meshing core and CLI commands to report diagnostics without aborting
// the run, per spec §7's "a failed meshing run ... logs a diagnostic"
// and "tile generation skips empty tiles silently and continues".
package tntnlog

import (
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/fatih/color"
)

// Level is a logging severity.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "?"
	}
}

// Logger wraps a stdlib *log.Logger, filtering by minimum level and
// color-highlighting warnings/errors the way kcptun highlights its QPP
// warnings with fatih/color.
type Logger struct {
	std      *stdlog.Logger
	minLevel Level
}

// New creates a Logger writing to w (os.Stderr is the usual choice for
// CLI commands) at the given minimum level.
func New(w io.Writer, minLevel Level) *Logger {
	return &Logger{std: stdlog.New(w, "", stdlog.LstdFlags), minLevel: minLevel}
}

// Default is a package-level Logger at Info level, writing to stderr,
// for packages that do not carry their own Logger field.
var Default = New(os.Stderr, Info)

func (l *Logger) logf(level Level, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)
	switch level {
	case Warn:
		l.std.Println(color.YellowString("[%s] %s", level, msg))
	case Error:
		l.std.Println(color.RedString("[%s] %s", level, msg))
	default:
		l.std.Printf("[%s] %s", level, msg)
	}
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(Error, format, args...) }
