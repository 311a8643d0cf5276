// Package daemon owns warden's process lifecycle: the PID marker that
// enforces a single running instance, daemonization, and the signal-driven
// control loop for shutdown and whitelist reload.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/xdg/warden/internal/wlog"
)

// ErrAlreadyRunning is returned when the PID marker names a live process.
var ErrAlreadyRunning = errors.New("an instance is already running")

// WritePIDFile creates the PID marker at path, refusing when another live
// instance owns it. A stale marker (the recorded process is gone, e.g.
// after a crash) is logged, removed, and replaced. The marker is created
// exclusively so two simultaneous starts cannot both win.
func WritePIDFile(path string) error {
	if pid, err := ReadPIDFile(path); err == nil {
		if ProcessAlive(pid) {
			return fmt.Errorf("%w: pid %d (marker %s)", ErrAlreadyRunning, pid, path)
		}
		wlog.Warn("removing stale PID marker %s (pid %d is not running)", path, pid)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale PID marker: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create PID marker directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: marker %s exists", ErrAlreadyRunning, path)
		}
		return fmt.Errorf("create PID marker: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("write PID marker: %w", err)
	}
	return nil
}

// ReadPIDFile reads the process id recorded in the marker at path.
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed PID marker %s: %w", path, err)
	}
	return pid, nil
}

// RemovePIDFile removes the marker. A missing marker is not an error.
func RemovePIDFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove PID marker: %w", err)
	}
	return nil
}

// ProcessAlive reports whether a process with the given pid exists.
// On Unix, FindProcess always succeeds; signal 0 probes for existence.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// Signal reads the PID marker at path and sends sig to the recorded
// process. It returns the pid signalled, for reporting.
func Signal(path string, sig syscall.Signal) (int, error) {
	pid, err := ReadPIDFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("no PID marker at %s; is the server running?", path)
		}
		return 0, err
	}
	if !ProcessAlive(pid) {
		return pid, fmt.Errorf("pid %d from %s is not running", pid, path)
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return pid, err
	}
	if err := process.Signal(sig); err != nil {
		return pid, fmt.Errorf("signal pid %d: %w", pid, err)
	}
	return pid, nil
}
