package wlog

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger handles leveled logging with support for multiple outputs.
// The file writer receives every entry at or above the configured level as a
// JSON line; the stderr writer receives warn/error in CLI mode and nothing
// in daemon mode.
type Logger struct {
	mu         sync.Mutex
	level      zerolog.Level
	fileWriter io.Writer
	errWriter  io.Writer
	errColor   bool
	daemonMode bool
	zl         zerolog.Logger
}

// NewLogger creates a new logger with default settings.
// By default, warnings and errors go to stderr at Info level.
func NewLogger() *Logger {
	l := &Logger{
		level:     zerolog.InfoLevel,
		errWriter: os.Stderr,
	}
	l.rebuild()
	return l
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// SetFileOutput sets the file writer for log output.
// Pass nil to disable file logging.
func (l *Logger) SetFileOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fileWriter = w
	l.rebuild()
}

// SetErrOutput sets the stderr writer for warn/error output in CLI mode.
// color enables ANSI coloring of the console output.
// Pass nil to disable stderr logging.
func (l *Logger) SetErrOutput(w io.Writer, color bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errWriter = w
	l.errColor = color
	l.rebuild()
}

// SetDaemonMode enables or disables daemon mode.
// In daemon mode, logs only go to the file writer, not stderr.
func (l *Logger) SetDaemonMode(daemon bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.daemonMode = daemon
	l.rebuild()
}

// rebuild reconstructs the underlying zerolog logger from the current
// writer configuration. Callers must hold l.mu.
func (l *Logger) rebuild() {
	writers := make([]io.Writer, 0, 2)
	if l.fileWriter != nil {
		writers = append(writers, l.fileWriter)
	}
	if !l.daemonMode && l.errWriter != nil {
		console := zerolog.ConsoleWriter{
			Out:        l.errWriter,
			TimeFormat: time.RFC3339,
			NoColor:    !l.errColor,
		}
		writers = append(writers, minLevelWriter{w: console, min: zerolog.WarnLevel})
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}
	l.zl = zerolog.New(out).Level(l.level).With().Timestamp().Logger()
}

// minLevelWriter drops entries below min so the stderr console only sees
// warnings and errors while the file writer keeps everything.
type minLevelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (m minLevelWriter) Write(p []byte) (int, error) {
	return m.w.Write(p)
}

func (m minLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < m.min {
		return len(p), nil
	}
	if lw, ok := m.w.(zerolog.LevelWriter); ok {
		return lw.WriteLevel(level, p)
	}
	return m.w.Write(p)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Debug().Msgf(format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Warn().Msgf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Error().Msgf(format, args...)
}

// OpenLogFile opens a log file for writing, creating parent directories if
// needed. The file is opened in append mode.
func OpenLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
}

// DefaultLogPath returns the default log file path following XDG conventions.
// Returns ~/.local/state/warden/warden.log
func DefaultLogPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "warden", "warden.log")
}
