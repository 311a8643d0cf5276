package wlog

import (
	"os"

	"github.com/xdg/warden/internal/term"
)

// std is the global logger instance used by package-level functions.
var std = NewLogger()

// Configure sets up the global logger based on configuration.
// If logPath is empty, file logging is disabled.
// level is parsed with ParseLevel; unknown values fall back to info.
// If daemonMode is true, stderr output is disabled.
func Configure(logPath, level string, daemonMode bool) error {
	std.SetLevel(ParseLevel(level))
	std.SetDaemonMode(daemonMode)
	std.SetErrOutput(os.Stderr, term.IsTTY(os.Stderr))

	if logPath != "" {
		f, err := OpenLogFile(logPath)
		if err != nil {
			return err
		}
		std.SetFileOutput(f)
	}
	return nil
}

// Debug logs a debug message using the global logger.
func Debug(format string, args ...any) {
	std.Debug(format, args...)
}

// Info logs an informational message using the global logger.
func Info(format string, args ...any) {
	std.Info(format, args...)
}

// Warn logs a warning message using the global logger.
func Warn(format string, args ...any) {
	std.Warn(format, args...)
}

// Error logs an error message using the global logger.
func Error(format string, args ...any) {
	std.Error(format, args...)
}
