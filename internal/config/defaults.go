package config

import "time"

// Default values for server settings not present in the configuration file.
const (
	DefaultPort        = 4160
	DefaultBacklog     = 64
	DefaultConnTimeout = 30 * time.Second
	DefaultCmdTimeout  = 60 * time.Second
	DefaultLogLevel    = "info"
)

// DefaultSettings returns the resolved settings used when a field is absent
// from the configuration file. The command whitelist has no default: a
// configuration without a commands list is rejected by Validate.
func DefaultSettings() *Settings {
	return &Settings{
		Port:        DefaultPort,
		Backlog:     DefaultBacklog,
		ConnTimeout: DefaultConnTimeout,
		CmdTimeout:  DefaultCmdTimeout,
		LogLevel:    DefaultLogLevel,
		PIDFile:     DefaultPIDFile(),
	}
}
