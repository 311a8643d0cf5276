package whitelist

import "testing"

func TestSnapshot_Allowed(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		line    string
		want    bool
	}{
		// Token entries permit the verb with any arguments
		{
			name:    "bare verb exact match",
			entries: []string{"uptime", "date"},
			line:    "uptime",
			want:    true,
		},
		{
			name:    "bare verb with arguments",
			entries: []string{"uptime"},
			line:    "uptime -p",
			want:    true,
		},
		{
			name:    "verb not whitelisted",
			entries: []string{"uptime", "date"},
			line:    "whoami",
			want:    false,
		},

		// Full-line entries permit exactly that command line
		{
			name:    "full line match",
			entries: []string{"echo hello"},
			line:    "echo hello",
			want:    true,
		},
		{
			name:    "full line with different arguments",
			entries: []string{"echo hello"},
			line:    "echo goodbye",
			want:    false,
		},
		{
			name:    "full line entry does not whitelist the bare verb",
			entries: []string{"sleep 10"},
			line:    "sleep 99",
			want:    false,
		},
		{
			name:    "full line entry matches itself",
			entries: []string{"sleep 10"},
			line:    "sleep 10",
			want:    true,
		},

		// Edge cases
		{
			name:    "empty line",
			entries: []string{"uptime"},
			line:    "",
			want:    false,
		},
		{
			name:    "whitespace-only line",
			entries: []string{"uptime"},
			line:    "   \t ",
			want:    false,
		},
		{
			name:    "leading whitespace trimmed",
			entries: []string{"uptime"},
			line:    "  uptime",
			want:    true,
		},
		{
			name:    "prefix of an entry is not a match",
			entries: []string{"uptimes"},
			line:    "uptime",
			want:    false,
		},
		{
			name:    "empty whitelist rejects everything",
			entries: nil,
			line:    "uptime",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnapshot(tt.entries)
			if got := s.Allowed(tt.line); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v (entries %v)", tt.line, got, tt.want, tt.entries)
			}
		})
	}
}

func TestNewSnapshotSkipsBlanks(t *testing.T) {
	s := NewSnapshot([]string{"uptime", "", "  ", "date"})
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSnapshotEntriesSorted(t *testing.T) {
	s := NewSnapshot([]string{"date", "uptime", "echo hello"})
	got := s.Entries()
	want := []string{"date", "echo hello", "uptime"}
	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"uptime", "uptime"},
		{"echo hello world", "echo"},
		{"  spaced   out  ", "spaced"},
		{"\ttabbed arg", "tabbed"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CommandName(tt.line); got != tt.want {
			t.Errorf("CommandName(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
