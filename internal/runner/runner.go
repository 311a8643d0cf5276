// Package runner executes whitelisted command lines under a hard deadline.
//
// A command line runs with full shell semantics and unsanitized arguments.
// This is a deliberate trust boundary: the security contract is "only
// whitelisted command names may run", enforced by the caller, not "arguments
// are sanitized". Nothing in this package inspects the line.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// DefaultShell is the interpreter command lines are handed to.
const DefaultShell = "/bin/sh"

// DefaultKillDelay bounds how long Run waits for output pipes to drain
// after the process group has been killed.
const DefaultKillDelay = 2 * time.Second

// Result is the outcome of one execution attempt. Exactly one Result is
// produced per request; there are no retries.
type Result struct {
	// Output is the combined stdout/stderr of the command, or the timeout
	// text when TimedOut is set. It is written to the client verbatim
	// either way, so a timeout is not distinguishable on the wire from
	// output that happens to contain the same text.
	Output []byte

	// TimedOut reports that the deadline expired before the command
	// finished and the process group was killed.
	TimedOut bool

	// ExitCode is the command's exit status, -1 on timeout or spawn
	// failure. Not sent to the client; recorded for auditing.
	ExitCode int

	// Duration is the wall-clock execution time.
	Duration time.Duration
}

// Runner spawns command lines via the shell. The zero value is not usable;
// call New.
type Runner struct {
	shell     string
	killDelay time.Duration
}

// New creates a Runner using /bin/sh.
func New() *Runner {
	return &Runner{shell: DefaultShell, killDelay: DefaultKillDelay}
}

// TimeoutMessage is the text sent to the client when execution exceeds the
// deadline. It replaces the command's output entirely.
func TimeoutMessage(timeout time.Duration) string {
	return fmt.Sprintf("Command timed out after %s\r\n", timeout)
}

// Run executes line via the shell with a hard wall-clock deadline. The
// child runs in its own process group; on expiry the whole group receives
// SIGKILL so descendants cannot outlive the request. Non-zero exit is not
// an error at this level: whatever output the command produced is returned.
func (r *Runner) Run(ctx context.Context, line string, timeout time.Duration) Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.shell, "-c", line)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// Kill the whole group, not just the shell.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = r.killDelay

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Output:   []byte(TimeoutMessage(timeout)),
			TimedOut: true,
			ExitCode: -1,
			Duration: elapsed,
		}
	}

	exitCode := 0
	if err != nil {
		exitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
	}
	return Result{
		Output:   output.Bytes(),
		ExitCode: exitCode,
		Duration: elapsed,
	}
}
