package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Level int

const (
	FATAL Level = iota
	ERROR
	WARNING
	INFO
	PROGRESS
	DEBUG
)

var levelNames = map[Level]string{
	FATAL:    "fatal",
	ERROR:    "error",
	WARNING:  "warn",
	INFO:     "info",
	PROGRESS: "progress",
	DEBUG:    "debug",
}

const clearLine = "\x1b[2K"

type output struct {
	mu           sync.Mutex
	writer       io.Writer
	start        time.Time
	maxLevel     Level
	quiet        bool
	progressLine bool
}

var defaultOutput = &output{
	writer:   os.Stderr,
	start:    time.Now(),
	maxLevel: PROGRESS,
}

// SetQuiet disables progress output.
func SetQuiet(quiet bool) {
	defaultOutput.mu.Lock()
	defer defaultOutput.mu.Unlock()
	defaultOutput.quiet = quiet
}

// SetMaxLevel discards all records above lvl.
func SetMaxLevel(lvl Level) {
	defaultOutput.mu.Lock()
	defer defaultOutput.mu.Unlock()
	defaultOutput.maxLevel = lvl
}

func (o *output) write(lvl Level, component, msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if lvl > o.maxLevel {
		return
	}
	if lvl == PROGRESS && o.quiet {
		return
	}
	elapsed := time.Since(o.start).Truncate(time.Second)
	prefix := "[" + levelNames[lvl] + "]"
	if component != "" {
		prefix += " [" + component + "]"
	}
	if lvl == PROGRESS {
		fmt.Fprintf(o.writer, "%s\r[%s] %s %s", clearLine, elapsed, prefix, msg)
		o.progressLine = true
		return
	}
	if o.progressLine {
		fmt.Fprint(o.writer, "\n")
		o.progressLine = false
	}
	fmt.Fprintf(o.writer, "[%s] %s %s\n", elapsed, prefix, msg)
}

// Logger writes leveled records tagged with a component name.
type Logger struct {
	Component string
}

func NewLogger(component string) *Logger {
	return &Logger{Component: component}
}

func (l *Logger) Debugf(msg string, args ...interface{}) {
	defaultOutput.write(DEBUG, l.Component, fmt.Sprintf(msg, args...))
}

func (l *Logger) Print(args ...interface{}) {
	defaultOutput.write(INFO, l.Component, fmt.Sprint(args...))
}

func (l *Logger) Printf(msg string, args ...interface{}) {
	defaultOutput.write(INFO, l.Component, fmt.Sprintf(msg, args...))
}

func (l *Logger) Warn(args ...interface{}) {
	defaultOutput.write(WARNING, l.Component, fmt.Sprint(args...))
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	defaultOutput.write(WARNING, l.Component, fmt.Sprintf(msg, args...))
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	defaultOutput.write(ERROR, l.Component, fmt.Sprintf(msg, args...))
}

func (l *Logger) Fatal(args ...interface{}) {
	defaultOutput.write(FATAL, l.Component, fmt.Sprint(args...))
	os.Exit(1)
}

func (l *Logger) Fatalf(msg string, args ...interface{}) {
	defaultOutput.write(FATAL, l.Component, fmt.Sprintf(msg, args...))
	os.Exit(1)
}

// Progress writes msg on a single self-overwriting terminal line.
func (l *Logger) Progress(msg string) {
	defaultOutput.write(PROGRESS, l.Component, msg)
}
