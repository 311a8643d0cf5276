// Package whitelist maintains the set of commands the server may execute.
//
// The set is held as an immutable Snapshot behind an atomically swapped
// pointer: handlers read whichever snapshot was current when their request
// arrived, and a reload replaces the snapshot wholesale. No handler ever
// observes a partially updated whitelist.
package whitelist

import (
	"sort"
	"strings"
)

// Snapshot is an immutable point-in-time copy of the command whitelist.
// Snapshots are created by the store and never mutated afterwards, so
// concurrent reads need no locking.
type Snapshot struct {
	entries map[string]struct{}
}

// NewSnapshot creates a Snapshot from whitelist entries. Entries are
// trimmed; blank entries are ignored.
func NewSnapshot(entries []string) *Snapshot {
	s := &Snapshot{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		s.entries[e] = struct{}{}
	}
	return s
}

// Allowed reports whether the trimmed request line is authorized to run.
// A line is authorized when the full line or its first whitespace-delimited
// token is a whitelist entry. Full-line entries let a whitelisted verb carry
// fixed arguments ("echo hello"); token entries permit the verb with any
// arguments ("uptime"). Both checks are O(1) map lookups.
func (s *Snapshot) Allowed(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if _, ok := s.entries[line]; ok {
		return true
	}
	_, ok := s.entries[CommandName(line)]
	return ok
}

// Len returns the number of whitelist entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns a sorted copy of the whitelist entries.
func (s *Snapshot) Entries() []string {
	out := make([]string, 0, len(s.entries))
	for e := range s.entries {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// CommandName returns the first whitespace-delimited token of a request
// line, or "" if the line is blank. This is the name reported back to the
// client when a command is rejected.
func CommandName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
