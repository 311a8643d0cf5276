package config

import (
	"errors"
	"testing"
	"time"
)

// validSettings returns settings that pass Validate; tests mutate one field.
func validSettings() *Settings {
	return &Settings{
		Port:        4160,
		Backlog:     64,
		ConnTimeout: 30 * time.Second,
		CmdTimeout:  60 * time.Second,
		Commands:    []string{"uptime"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{
			name:   "valid settings pass",
			mutate: func(s *Settings) {},
		},
		{
			name:    "privileged port rejected",
			mutate:  func(s *Settings) { s.Port = 80 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "port 1023 rejected",
			mutate:  func(s *Settings) { s.Port = 1023 },
			wantErr: ErrInvalidPort,
		},
		{
			name:   "port 1024 accepted",
			mutate: func(s *Settings) { s.Port = 1024 },
		},
		{
			name:    "port above 65535 rejected",
			mutate:  func(s *Settings) { s.Port = 70000 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "missing commands rejected",
			mutate:  func(s *Settings) { s.Commands = nil },
			wantErr: ErrMissingCommands,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			err := Validate(s)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate returned %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate returned %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("zero backlog rejected", func(t *testing.T) {
		s := validSettings()
		s.Backlog = 0
		if Validate(s) == nil {
			t.Error("Validate should reject a zero backlog")
		}
	})

	t.Run("non-positive timeouts rejected", func(t *testing.T) {
		s := validSettings()
		s.ConnTimeout = 0
		if Validate(s) == nil {
			t.Error("Validate should reject a zero conn timeout")
		}
		s = validSettings()
		s.CmdTimeout = -time.Second
		if Validate(s) == nil {
			t.Error("Validate should reject a negative cmd timeout")
		}
	})
}

func TestValidateCommands(t *testing.T) {
	if err := ValidateCommands([]string{"uptime", "echo hello"}); err != nil {
		t.Errorf("valid commands rejected: %v", err)
	}
	if !errors.Is(ValidateCommands(nil), ErrMissingCommands) {
		t.Error("nil commands should return ErrMissingCommands")
	}
	if !errors.Is(ValidateCommands([]string{}), ErrMissingCommands) {
		t.Error("empty commands should return ErrMissingCommands")
	}
	if ValidateCommands([]string{"uptime", "  "}) == nil {
		t.Error("blank command entry should be rejected")
	}
}
