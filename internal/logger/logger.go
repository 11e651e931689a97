// Package logger keeps the app's log lines in memory, appends them to a file and holds
// the toasts shown to the user.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the default log file, relative to the working directory.
const DefaultPath = "logs/arshapes.txt"

// toastDuration is how long a notification stays on screen.
const toastDuration = 4 * time.Second

// Toast is a short user-facing message shown on top of the view until Until.
type Toast struct {
	Text  string
	Until time.Time
}

// Logger stores lines of text (console input, pipeline failures, notices) in memory and appends them to a file on disk.
// It also keeps the toasts raised by Notify.
type Logger struct {
	mu     sync.Mutex
	path   string
	lines  []string
	toasts []Toast
	now    func() time.Time
}

// New returns a Logger writing to path and ensures its directory exists. An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// Log appends a line to the logger and appends it to the log file on disk. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and logs a line.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Notify logs msg and shows it as a toast. Implements capability.Notifier.
func (l *Logger) Notify(msg string) {
	l.Log(msg)
	l.mu.Lock()
	l.toasts = append(l.toasts, Toast{Text: msg, Until: l.now().Add(toastDuration)})
	l.mu.Unlock()
}

// Report logs a failed load. Implements material.Reporter.
func (l *Logger) Report(source string, err error) {
	l.Logf("unable to load %s: %v", source, err)
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Toasts returns the toasts still on screen and drops the expired ones.
func (l *Logger) Toasts() []Toast {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	live := l.toasts[:0]
	for _, t := range l.toasts {
		if now.Before(t.Until) {
			live = append(live, t)
		}
	}
	l.toasts = live
	out := make([]Toast, len(live))
	copy(out, live)
	return out
}
