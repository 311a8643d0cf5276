package config

import (
	"errors"
	"fmt"
	"strings"
)

// MinPort is the lowest listen port warden accepts. Privileged ports are
// refused so the server never requires root to bind.
const MinPort = 1024

var (
	// ErrInvalidPort is returned when the listen port is outside [1024, 65535].
	ErrInvalidPort = errors.New("listen port must be between 1024 and 65535")

	// ErrMissingCommands is returned when the configuration has no command
	// whitelist. A server without a whitelist would reject everything, which
	// is always a misconfiguration.
	ErrMissingCommands = errors.New("configuration is missing the commands whitelist")
)

// Validate checks resolved settings for fatal startup errors.
func Validate(s *Settings) error {
	if s.Port < MinPort || s.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, s.Port)
	}
	if s.Backlog <= 0 {
		return fmt.Errorf("backlog must be positive: got %d", s.Backlog)
	}
	if s.ConnTimeout <= 0 {
		return fmt.Errorf("conn_timeout must be positive: got %s", s.ConnTimeout)
	}
	if s.CmdTimeout <= 0 {
		return fmt.Errorf("cmd_timeout must be positive: got %s", s.CmdTimeout)
	}
	return ValidateCommands(s.Commands)
}

// ValidateCommands checks that the command whitelist is present and contains
// at least one non-blank entry. It is called both at startup and on reload.
func ValidateCommands(commands []string) error {
	if len(commands) == 0 {
		return ErrMissingCommands
	}
	for i, c := range commands {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("commands[%d] is blank", i)
		}
	}
	return nil
}
