package config

import (
	"fmt"
	"os"
	"time"
)

// Load reads and parses the configuration file at path.
// Unlike optional per-tool configs, the warden configuration is required:
// a missing or unreadable file is an error the caller treats as fatal.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve overlays the file configuration on top of the defaults and
// resolves duration strings and paths, producing the runtime Settings.
// Flag overrides are applied by the caller afterwards, before Validate.
func Resolve(cfg *FileConfig, source string) (*Settings, error) {
	s := DefaultSettings()
	s.Source = source

	if cfg.Port != 0 {
		s.Port = cfg.Port
	}
	if cfg.Backlog != 0 {
		s.Backlog = cfg.Backlog
	}
	if cfg.ConnTimeout != "" {
		d, err := time.ParseDuration(cfg.ConnTimeout)
		if err != nil {
			return nil, fmt.Errorf("conn_timeout: %w", err)
		}
		s.ConnTimeout = d
	}
	if cfg.CmdTimeout != "" {
		d, err := time.ParseDuration(cfg.CmdTimeout)
		if err != nil {
			return nil, fmt.Errorf("cmd_timeout: %w", err)
		}
		s.CmdTimeout = d
	}
	if cfg.Log.File != "" {
		s.LogFile = ExpandHome(cfg.Log.File)
	}
	if cfg.Log.Level != "" {
		s.LogLevel = cfg.Log.Level
	}
	if cfg.AuditLog != "" {
		s.AuditLog = ExpandHome(cfg.AuditLog)
	}
	if cfg.PIDFile != "" {
		s.PIDFile = ExpandHome(cfg.PIDFile)
	}
	s.Daemonize = cfg.Daemonize
	s.Commands = cfg.Commands

	return s, nil
}

// LoadSettings is the common load-then-resolve path used at startup.
func LoadSettings(path string) (*Settings, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Resolve(cfg, path)
}
