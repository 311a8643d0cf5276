// Package term provides user-facing terminal output for the warden CLI.
// This is distinct from operational logging (see internal/wlog).
//
// Output functions:
//   - Print/Printf/Println: Normal output to stdout (suppressed with --silent)
//   - Warn: Warnings to stderr (NOT suppressed with --silent)
//   - Error: Errors to stderr (NOT suppressed with --silent)
package term

import (
	"fmt"
	"io"
	"os"
	"sync"

	xterm "golang.org/x/term"
)

var (
	mu     sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	silent bool
)

// SetSilent enables or disables silent mode.
// When silent, Print/Printf/Println are suppressed.
// Warn and Error are NOT suppressed (users should always see these).
func SetSilent(s bool) {
	mu.Lock()
	defer mu.Unlock()
	silent = s
}

// IsSilent returns whether silent mode is enabled.
func IsSilent() bool {
	mu.Lock()
	defer mu.Unlock()
	return silent
}

// SetOutput sets the writer for stdout output.
// Pass nil to use os.Stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		stdout = os.Stdout
	} else {
		stdout = w
	}
}

// SetErrOutput sets the writer for stderr output.
// Pass nil to use os.Stderr.
func SetErrOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		stderr = os.Stderr
	} else {
		stderr = w
	}
}

// Print writes to stdout unless silent mode is enabled.
func Print(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if silent {
		return
	}
	fmt.Fprint(stdout, args...)
}

// Printf writes formatted output to stdout unless silent mode is enabled.
func Printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if silent {
		return
	}
	fmt.Fprintf(stdout, format, args...)
}

// Println writes to stdout with a trailing newline unless silent mode is enabled.
func Println(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if silent {
		return
	}
	fmt.Fprintln(stdout, args...)
}

// Warn writes a warning to stderr. Not suppressed by silent mode.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(stderr, "Warning: "+format+"\n", args...)
}

// Error writes an error to stderr. Not suppressed by silent mode.
func Error(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
}

// IsTTY reports whether f is attached to a terminal.
// Used to decide whether console log output should be colored.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}
