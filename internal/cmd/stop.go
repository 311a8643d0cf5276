package cmd

import (
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xdg/warden/internal/config"
	"github.com/xdg/warden/internal/daemon"
	"github.com/xdg/warden/internal/term"
)

var stopPIDFile string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running warden server",
	Long: `Stop the warden server recorded in the PID marker.

Sends SIGTERM, which stops the listener and lets in-flight commands finish
independently.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePIDFile(stopPIDFile)
		if err != nil {
			return err
		}
		pid, err := daemon.Signal(path, syscall.SIGTERM)
		if err != nil {
			return err
		}
		term.Printf("Sent SIGTERM to warden (pid %d)\n", pid)
		return nil
	},
}

func init() {
	stopCmd.Flags().StringVar(&stopPIDFile, "pidfile", "", "PID marker path (overrides config)")
	rootCmd.AddCommand(stopCmd)
}

// resolvePIDFile picks the PID marker path: explicit flag first, then the
// configuration file, then the default location.
func resolvePIDFile(flagValue string) (string, error) {
	if flagValue != "" {
		return config.ExpandHome(flagValue), nil
	}
	if st, err := config.LoadSettings(resolveConfigPath()); err == nil && st.PIDFile != "" {
		return st.PIDFile, nil
	}
	return config.DefaultPIDFile(), nil
}
