// ABOUTME: Level-gated logging wrapper around slog levels for verbose mode output
// ABOUTME: Writes to stderr by default; switches to CRLF line endings while the terminal is raw

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Level is a log severity; it is slog's level type.
type Level = slog.Level

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64
	raw   atomic.Bool

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() Level {
	return Level(level.Load())
}

// SetOutput redirects log lines to w. A nil w restores stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	out = w
}

// SetRawMode selects CRLF line endings. With OPOST off the terminal no
// longer maps LF to CRLF, so a bare LF would leave the next line indented.
func SetRawMode(on bool) {
	raw.Store(on)
}

func emit(prefix, format string, args ...any) {
	eol := "\n"
	if raw.Load() {
		eol = "\r\n"
	}
	outMu.Lock()
	defer outMu.Unlock()

	fmt.Fprintf(out, prefix+format+eol, args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if GetLevel() > LevelDebug {
		return
	}
	emit("[DEBUG] ", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if GetLevel() > LevelInfo {
		return
	}
	emit("[INFO] ", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if GetLevel() > LevelWarn {
		return
	}
	emit("[WARN] ", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	emit("[ERROR] ", format, args...)
}
