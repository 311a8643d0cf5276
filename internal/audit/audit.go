// Package audit provides structured logging for connection and execution
// events. Log entries follow a key=value format suitable for parsing and
// analysis.
package audit

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// EventType represents the type of connection event.
type EventType string

// Event types for the per-connection lifecycle.
const (
	EventConnect  EventType = "CONNECT"
	EventReject   EventType = "REJECT"
	EventExec     EventType = "EXEC"
	EventComplete EventType = "COMPLETE"
	EventTimeout  EventType = "TIMEOUT"
)

// Event represents one audit log entry.
type Event struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Type is the event type (CONNECT, REJECT, etc.)
	Type EventType

	// Remote is the client's remote address.
	Remote string

	// Cmd is the command line being executed (EXEC, COMPLETE, TIMEOUT).
	Cmd string

	// Raw is the raw request input (REJECT), recorded verbatim for
	// after-the-fact review of unauthorized requests.
	Raw string

	// Status is the handler's local status: 0 for normal completion,
	// non-zero for rejected requests. Never sent to the client.
	Status int

	// ExitCode is the command exit code (COMPLETE).
	ExitCode int

	// Duration is the execution time (COMPLETE, TIMEOUT).
	Duration time.Duration
}

// Format returns the log entry as a formatted string.
// Format: 2024-01-15T14:32:05Z WARDEN REJECT remote=10.0.0.7:52114 raw="whoami" status=1
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" WARDEN ")
	b.WriteString(string(e.Type))

	b.WriteString(" remote=")
	b.WriteString(e.Remote)

	switch e.Type {
	case EventReject:
		b.WriteString(" raw=")
		b.WriteString(quoteValue(e.Raw))
		b.WriteString(" status=")
		b.WriteString(strconv.Itoa(e.Status))
	case EventExec:
		b.WriteString(" cmd=")
		b.WriteString(quoteValue(e.Cmd))
	case EventComplete:
		b.WriteString(" cmd=")
		b.WriteString(quoteValue(e.Cmd))
		b.WriteString(" exit=")
		b.WriteString(strconv.Itoa(e.ExitCode))
		b.WriteString(" duration=")
		b.WriteString(e.Duration.Round(time.Millisecond).String())
	case EventTimeout:
		b.WriteString(" cmd=")
		b.WriteString(quoteValue(e.Cmd))
		b.WriteString(" duration=")
		b.WriteString(e.Duration.Round(time.Millisecond).String())
	}

	return b.String()
}

// quoteValue quotes a value when it contains characters that would break
// key=value parsing. Plain values are emitted unquoted.
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\"\\\n") {
		return strconv.Quote(v)
	}
	return v
}

// Logger writes audit events to an underlying writer, one entry per line.
// It is safe for concurrent use. A nil *Logger discards all events, so
// callers never need to guard Log calls.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates an audit Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Log writes one event. Write errors are ignored; auditing must never take
// down a connection handler.
func (l *Logger) Log(e Event) {
	if l == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, e.Format())
}
