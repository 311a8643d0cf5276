// Package config provides configuration types for the warden server.
// These types map to the YAML configuration file.
package config

import "time"

// FileConfig represents the on-disk YAML configuration for warden.
// It is typically stored at ~/.config/warden/config.yaml. Duration fields
// are strings in Go duration syntax (e.g. "30s") and are resolved into a
// Settings value before use.
type FileConfig struct {
	Port        int       `yaml:"port,omitempty"`
	Backlog     int       `yaml:"backlog,omitempty"`
	ConnTimeout string    `yaml:"conn_timeout,omitempty"`
	CmdTimeout  string    `yaml:"cmd_timeout,omitempty"`
	Log         LogConfig `yaml:"log,omitempty"`
	AuditLog    string    `yaml:"audit_log,omitempty"`
	PIDFile     string    `yaml:"pidfile,omitempty"`
	Daemonize   bool      `yaml:"daemonize,omitempty"`
	Commands    []string  `yaml:"commands"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// Settings is the fully resolved server configuration: defaults overlaid by
// file values overlaid by explicit flag overrides. It is read-only after
// startup; the command whitelist is the only hot-reloadable part and lives
// in the whitelist store, seeded from Commands.
type Settings struct {
	Port        int
	Backlog     int
	ConnTimeout time.Duration
	CmdTimeout  time.Duration
	LogFile     string
	LogLevel    string
	AuditLog    string
	PIDFile     string
	Daemonize   bool
	Commands    []string

	// Source is the path the configuration was loaded from. Reload reads
	// the whitelist from this path again on SIGHUP.
	Source string
}
