package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// childEnvVar marks the re-executed daemon child so it does not daemonize
// again. Go cannot fork(), so daemonization re-executes the binary in a new
// session with its standard streams detached.
const childEnvVar = "_WARDEN_DAEMON"

// daemonPath is the sanitized search path the daemon child runs with,
// independent of whatever environment the launching shell had.
const daemonPath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"

// Daemonized reports whether this process is the detached daemon child.
func Daemonized() bool {
	return os.Getenv(childEnvVar) == "1"
}

// Spawn re-executes the current binary as a detached daemon: session
// leader, standard streams on /dev/null, working directory /. It returns
// the child's pid; the caller (the foreground parent) then exits.
func Spawn() (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("locate executable: %w", err)
	}

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devnull.Close()

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), childEnvVar+"=1")
	cmd.Stdin = devnull
	cmd.Stdout = devnull
	cmd.Stderr = devnull
	cmd.Dir = "/"
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawn daemon: %w", err)
	}
	// The child belongs to a new session; it is not waited for.
	if err := cmd.Process.Release(); err != nil {
		return cmd.Process.Pid, fmt.Errorf("release daemon process: %w", err)
	}
	return cmd.Process.Pid, nil
}

// InitChild fixes the daemon child's process environment: file-creation
// mask reset and a sanitized search path for the commands it will spawn.
func InitChild() {
	unix.Umask(0022)
	os.Setenv("PATH", daemonPath)
}
