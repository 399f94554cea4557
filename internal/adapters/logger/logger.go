package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/remold/internal/core/ports"
)

// LevelSilent suppresses every record.
const LevelSilent = slog.Level(16)

// Format names.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Environment variables read before any configuration file is loaded.
const (
	EnvLogLevel  = "REMOLD_LOG_LEVEL"
	EnvLogFormat = "REMOLD_LOG_FORMAT"
)

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "silent":
		return LevelSilent, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
	level    *slog.LevelVar
}

// New creates a Logger writing pretty records to stderr at info level.
func New() ports.Logger {
	l := &Logger{
		output: os.Stderr,
		level:  &slog.LevelVar{},
	}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// FromEnv creates a Logger configured from EnvLogLevel and EnvLogFormat.
func FromEnv(getenv func(string) string) (*Logger, error) {
	l := New().(*Logger)
	if err := l.Configure(getenv(EnvLogLevel), getenv(EnvLogFormat)); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// SetOutput updates the output destination and keeps the current format.
// A nil writer means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty records.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetLevel changes the minimum level of emitted records.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Configure applies a level name and a format name. Empty names keep the current setting.
func (l *Logger) Configure(level, format string) error {
	lvl := l.level.Level()
	if level != "" {
		parsed, err := ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}
	switch strings.ToLower(format) {
	case "":
	case FormatPretty:
		l.SetJSON(false)
	case FormatJSON:
		l.SetJSON(true)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	l.SetLevel(lvl)
	return nil
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
