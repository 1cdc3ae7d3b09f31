package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared across the service. The level is set once via
// Init(LOG_LEVEL) at startup; everything below it is suppressed.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"debug", "info", "warn", "error", "fatal"}

var (
	mu    sync.RWMutex
	out   *log.Logger = log.New(os.Stdout, "", 0)
	level Level       = LevelInfo
)

// Init sets the global log level from its textual name (case-insensitive;
// "warning" is accepted as an alias). Unknown names fall back to info.
func Init(name string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = log.New(w, "", 0)
}

// LevelString returns the current level's textual name.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return levelNames[level]
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func logf(l Level, format string, v ...interface{}) {
	if !shouldLog(l) {
		return
	}
	prefix := fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(levelNames[l]))
	out.Printf(prefix+format, v...)
}

func Debugf(format string, v ...interface{}) { logf(LevelDebug, format, v...) }
func Infof(format string, v ...interface{})  { logf(LevelInfo, format, v...) }
func Warnf(format string, v ...interface{})  { logf(LevelWarn, format, v...) }
func Errorf(format string, v ...interface{}) { logf(LevelError, format, v...) }

// Fatalf logs at fatal level and exits the process.
func Fatalf(format string, v ...interface{}) {
	logf(LevelFatal, format, v...)
	os.Exit(1)
}
