package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/warden/internal/audit"
	"github.com/xdg/warden/internal/config"
	"github.com/xdg/warden/internal/daemon"
	"github.com/xdg/warden/internal/runner"
	"github.com/xdg/warden/internal/server"
	"github.com/xdg/warden/internal/term"
	"github.com/xdg/warden/internal/version"
	"github.com/xdg/warden/internal/whitelist"
	"github.com/xdg/warden/internal/wlog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the warden server",
	Long: `Run the warden server, accepting connections until told to stop.

The configuration file supplies the listen port, timeouts, and the command
whitelist. SIGHUP reloads the whitelist from the same file; SIGINT, SIGTERM,
or SIGQUIT shuts the server down. With --daemon the server detaches from the
terminal and logs only to the configured log file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	servePort     int
	serveDaemon   bool
	servePIDFile  string
	serveLogFile  string
	serveLogLevel string
	serveAuditLog string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().BoolVar(&serveDaemon, "daemon", false, "detach and run in the background")
	serveCmd.Flags().StringVar(&servePIDFile, "pidfile", "", "PID marker path (overrides config)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "operational log file (overrides config)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	serveCmd.Flags().StringVar(&serveAuditLog, "audit-log", "", "audit trail file (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := config.LoadSettings(resolveConfigPath())
	if err != nil {
		return err
	}
	applyServeFlags(cmd, st)
	if err := config.Validate(st); err != nil {
		return err
	}

	// Daemonize before anything that opens descriptors: the parent just
	// reports the child pid and exits; the detached child re-enters
	// runServe with the marker variable set.
	if st.Daemonize && !daemon.Daemonized() {
		pid, err := daemon.Spawn()
		if err != nil {
			return err
		}
		term.Printf("warden daemon started (pid %d)\n", pid)
		return nil
	}
	if daemon.Daemonized() {
		daemon.InitChild()
	}

	if err := wlog.Configure(st.LogFile, st.LogLevel, st.Daemonize); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	wlog.Info("warden %s starting", version.Version)

	if err := daemon.WritePIDFile(st.PIDFile); err != nil {
		wlog.Error("startup refused: %v", err)
		return err
	}
	defer daemon.RemovePIDFile(st.PIDFile)

	store := whitelist.NewStore()
	store.Replace(st.Commands)

	var auditLogger *audit.Logger
	if st.AuditLog != "" {
		f, err := wlog.OpenLogFile(st.AuditLog)
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		defer f.Close()
		auditLogger = audit.New(f)
	}

	srv := server.New(st, store, runner.New(), auditLogger)
	if err := srv.Start(); err != nil {
		wlog.Error("cannot bind listening socket: %v", err)
		return err
	}
	wlog.Info("listening on %s (whitelist: %d entries)", srv.Addr(), store.Current().Len())

	// Block until a termination signal; SIGHUP reloads along the way.
	ctl := daemon.NewControl(func() { reloadWhitelist(store, st.Source) })
	ctl.Run()

	// Stop accepting; in-flight handlers finish on their own.
	if err := srv.Stop(); err != nil {
		wlog.Warn("listener close: %v", err)
	}
	wlog.Info("shutdown complete")
	return nil
}

// applyServeFlags overlays explicitly set serve flags onto the settings.
// Only flags the user actually passed override the file configuration.
func applyServeFlags(cmd *cobra.Command, st *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		st.Port = servePort
	}
	if flags.Changed("daemon") {
		st.Daemonize = serveDaemon
	}
	if flags.Changed("pidfile") {
		st.PIDFile = config.ExpandHome(servePIDFile)
	}
	if flags.Changed("log-file") {
		st.LogFile = config.ExpandHome(serveLogFile)
	}
	if flags.Changed("log-level") {
		st.LogLevel = serveLogLevel
	}
	if flags.Changed("audit-log") {
		st.AuditLog = config.ExpandHome(serveAuditLog)
	}
}

// reloadWhitelist swaps in a freshly loaded whitelist, keeping the previous
// snapshot when the source has gone bad.
func reloadWhitelist(store *whitelist.Store, source string) {
	if err := store.Reload(source); err != nil {
		wlog.Warn("reload failed, previous whitelist remains active: %v", err)
		return
	}
	wlog.Info("whitelist reloaded (%d entries)", store.Current().Len())
}
