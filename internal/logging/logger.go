// Package logging provides the leveled logger used by the application.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"FileCardManager/internal/config"
)

// Level names written in front of every line.
const (
	LevelInfo    = "INFO"
	LevelSuccess = "SUCCESS"
	LevelWarn    = "WARN"
	LevelError   = "ERROR"
	LevelDebug   = "DEBUG"
)

var levelColors = map[string]string{
	LevelInfo:    "\033[1;94m",
	LevelSuccess: "\033[1;92m",
	LevelWarn:    "\033[1;93m",
	LevelError:   "\033[1;91m",
	LevelDebug:   "\033[1;96m",
}

const colorReset = "\033[0m"

// Sink receives every logged line after it was written.
type Sink func(level, text string)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	color   bool
	verbose bool
	out     io.Writer
	errOut  io.Writer
	file    *os.File
	sinks   []Sink
	now     func() time.Time
}

// NewLogger initializes colors from cfg and optionally opens cfg.LogFile.
// Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	l := &Logger{
		verbose: cfg.Verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
		now:     time.Now,
	}
	switch cfg.ColorMode {
	case config.ColorAlways:
		l.color = true
	case config.ColorAuto:
		l.color = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Discard returns a logger that writes nowhere. Sinks still receive lines.
func Discard() *Logger {
	return &Logger{out: io.Discard, errOut: io.Discard, now: time.Now}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// SetOutput redirects console output; errors go to errOut.
func (l *Logger) SetOutput(out, errOut io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out, l.errOut = out, errOut
}

// AddSink registers fn to receive every line.
func (l *Logger) AddSink(fn Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, fn)
}

// Verbose reports whether Debug lines are written.
func (l *Logger) Verbose() bool { return l.verbose }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, text string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := l.out
	if level == LevelError {
		out = l.errOut
	}
	if l.color {
		_, _ = io.WriteString(out, ts+" "+levelColors[level]+"["+level+"]"+colorReset+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
	sinks := append([]Sink(nil), l.sinks...)
	l.mu.Unlock()

	for _, fn := range sinks {
		fn(level, text)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(LevelInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(LevelSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to errOut.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(LevelError, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line(LevelDebug, fmt.Sprintf(format, args...))
}
