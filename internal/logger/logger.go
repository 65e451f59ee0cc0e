package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the log file, relative to the working directory (project root when run via go run ./cmd/game).
const DefaultPath = "logs/game.txt"

// maxLines bounds the in-memory history shown by the console.
const maxLines = 500

// Logger stores lines in memory for the in-game console and appends them to a file on disk.
// When Mirror is set every line is also sent to it (the window build echoes to stderr this way).
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string

	// Verbose enables Debugf lines.
	Verbose bool
	Mirror  *slog.Logger
}

// New returns a Logger writing to path (DefaultPath when empty) and ensures its directory exists.
func New(path string) *Logger {
	if path == "" {
		path = DefaultPath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, lines: make([]string, 0)}
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log appends a line prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	l.write(slog.LevelInfo, line)
}

func (l *Logger) Infof(format string, args ...any) {
	l.write(slog.LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.write(slog.LevelError, "error: "+fmt.Sprintf(format, args...))
}

// Debugf logs only when Verbose is set.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.write(slog.LevelDebug, fmt.Sprintf(format, args...))
}

func (l *Logger) write(level slog.Level, line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = l.lines[len(l.lines)-maxLines:]
	}
	l.mu.Unlock()

	if l.Mirror != nil {
		l.Mirror.Log(context.Background(), level, line)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
