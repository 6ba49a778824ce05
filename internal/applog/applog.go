// Package applog records application events to a plain log file.
//
// Lines look like "[2006-01-02 15:04:05] CONNECT      postgresql sales ok".
// Nothing is written until Init succeeds, so packages may log unconditionally.
package applog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

var (
	mu  sync.Mutex
	out io.WriteCloser
	now = time.Now
)

// DefaultPath returns the XDG state location of the event log.
func DefaultPath() (string, error) {
	return xdg.StateFile("ezchat/app.log")
}

// Init opens path for appending. An empty path uses DefaultPath.
func Init(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	SetOutput(f)
	return nil
}

// SetOutput replaces the destination, closing the previous one.
func SetOutput(w io.WriteCloser) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		out.Close()
	}
	out = w
}

func write(level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		return
	}
	ts := now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(out, "[%s] %-12s %s\n", ts, level, fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Info logs a general info message.
func Info(format string, args ...interface{}) {
	write("INFO", format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	write("ERROR", format, args...)
}

// Event logs a message under a category such as CONNECT or CHAT.
func Event(category string, format string, args ...interface{}) {
	write(category, format, args...)
}

// Close flushes and closes the log file.
func Close() {
	SetOutput(nil)
}
