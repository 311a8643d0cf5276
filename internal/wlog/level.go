// Package wlog provides structured operational logging for warden.
// This is distinct from user-facing output (see internal/term).
//
// Log levels:
//   - Debug: Verbose diagnostic information, only with --debug
//   - Info: Normal operational events
//   - Warn: Unexpected conditions that don't prevent operation
//   - Error: Failures that affect functionality
//
// Output destinations:
//   - File: All levels at or above the configured level, as JSON lines
//   - Stderr: Warn and Error only, human-readable, disabled in daemon mode
package wlog

import (
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel parses a level string (case-insensitive).
// Returns InfoLevel if the string is empty or not recognized.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
