package cmd

import (
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xdg/warden/internal/daemon"
	"github.com/xdg/warden/internal/term"
)

var reloadPIDFile string

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the command whitelist of a running server",
	Long: `Reload asks a running warden server to re-read its configuration file
and install the new command whitelist.

Connections already in flight keep the whitelist they were admitted under.
If the new configuration is invalid the server keeps the previous whitelist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePIDFile(reloadPIDFile)
		if err != nil {
			return err
		}
		pid, err := daemon.Signal(path, syscall.SIGHUP)
		if err != nil {
			return err
		}
		term.Printf("Sent reload signal to warden (pid %d)\n", pid)
		return nil
	},
}

func init() {
	reloadCmd.Flags().StringVar(&reloadPIDFile, "pidfile", "", "PID marker path (overrides config)")
	rootCmd.AddCommand(reloadCmd)
}
