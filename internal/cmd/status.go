package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/warden/internal/daemon"
	"github.com/xdg/warden/internal/term"
)

var statusPIDFile string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the warden server is running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePIDFile(statusPIDFile)
		if err != nil {
			return err
		}
		pid, err := daemon.ReadPIDFile(path)
		if err != nil {
			term.Println("warden is not running")
			return NewExitCodeError(1)
		}
		if !daemon.ProcessAlive(pid) {
			term.Printf("warden is not running (stale PID marker at %s)\n", path)
			return NewExitCodeError(1)
		}
		term.Printf("warden is running (pid %d)\n", pid)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusPIDFile, "pidfile", "", "PID marker path (overrides config)")
	rootCmd.AddCommand(statusCmd)
}
