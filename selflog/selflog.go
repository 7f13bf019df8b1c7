// Package selflog provides internal diagnostic logging for winlog.
//
// When enabled, selflog captures internal warnings that would otherwise be
// silently discarded: trimmed source names, truncated payloads, event sources
// found registered against a different log. This is useful for debugging
// configuration issues or understanding why entries aren't appearing where
// expected.
//
// # Usage
//
// Enable selflog to write to stderr:
//
//	selflog.Enable(os.Stderr)
//	defer selflog.Disable()
//
// Enable with a custom handler:
//
//	selflog.EnableFunc(func(msg string) {
//	    syslog.Warning("winlog: " + msg)
//	})
//
// For thread-safe file logging:
//
//	f, _ := os.Create("winlog-debug.log")
//	selflog.Enable(selflog.Sync(f))
//
// # Format
//
// Messages are formatted as:
//
//	2025-01-29T15:30:45Z [component] message details
//
// # Environment Variable
//
// Set WINLOG_SELFLOG to automatically enable on startup:
//   - "stderr" - log to standard error
//   - "stdout" - log to standard output
//   - "/path/to/file" - log to specified file
package selflog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// output holds the active destination. Exactly one of w and fn is set.
type output struct {
	w  io.Writer
	fn func(string)
}

var dest atomic.Pointer[output]

// Enable activates self-logging to the provided writer.
// The writer should be thread-safe or wrapped with Sync().
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	dest.Store(&output{w: w})
}

// EnableFunc activates self-logging using a callback function.
// The function will be called with formatted log messages.
func EnableFunc(fn func(string)) {
	if fn == nil {
		return
	}
	dest.Store(&output{fn: fn})
}

// Disable deactivates self-logging.
func Disable() {
	dest.Store(nil)
}

// Printf logs an internal diagnostic message.
// This is called by winlog internals and can be called by custom registries.
// The format string should include the component in square brackets,
// e.g., "[eventlog] write failed: %v"
func Printf(format string, args ...interface{}) {
	out := dest.Load()
	if out == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)
	line := time.Now().UTC().Format(time.RFC3339) + " " + msg

	if out.w != nil {
		fmt.Fprintln(out.w, line)
	} else if out.fn != nil {
		out.fn(line)
	}
}

// IsEnabled returns true if selflog is currently enabled.
// Use this to avoid formatting costs when disabled:
//
//	if selflog.IsEnabled() {
//	    selflog.Printf("[eventlog] registered %q in %q", source, logName)
//	}
func IsEnabled() bool {
	return dest.Load() != nil
}

// syncWriter wraps an io.Writer to make it thread-safe
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Sync wraps a writer to make it thread-safe.
// Use this when enabling file output or other non-synchronized writers.
func Sync(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// init checks for the WINLOG_SELFLOG environment variable
func init() {
	if d := os.Getenv("WINLOG_SELFLOG"); d != "" {
		switch d {
		case "stderr":
			Enable(os.Stderr)
		case "stdout":
			Enable(os.Stdout)
		default:
			if f, err := os.OpenFile(d, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				Enable(Sync(f))
			}
		}
	}
}
