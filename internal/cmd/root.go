// Package cmd implements the CLI commands for warden.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/warden/internal/config"
	"github.com/xdg/warden/internal/version"
)

// configPath is the --config persistent flag value.
var configPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Restricted remote command server",
	Long: `Warden is a guarded shell over TCP. A client sends one command line per
connection; warden checks the command against a configured whitelist, runs it
under a hard deadline, and writes the output back before closing.

The whitelist is the entire security boundary: arguments are handed to the
shell unmodified. Warden speaks plaintext TCP with no authentication or
encryption, so run it only on trusted networks.`,
	Version: version.Version,
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to the configuration file (default ~/.config/warden/config.yaml)")
}

// resolveConfigPath returns the --config flag value or the default path.
func resolveConfigPath() string {
	if configPath != "" {
		return config.ExpandHome(configPath)
	}
	return config.DefaultConfigPath()
}
