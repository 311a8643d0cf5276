package daemon

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/xdg/warden/internal/wlog"
)

// Control reacts to OS control signals. A hang-up signal triggers the
// reload hook; an interrupt, terminate, or quit signal ends the loop so
// the caller can shut down. The hook runs on the control goroutine, never
// in signal context, so it may freely do file I/O and swap the whitelist.
type Control struct {
	// OnReload is invoked for each SIGHUP. May be nil.
	OnReload func()

	sigCh chan os.Signal
}

// NewControl creates a Control with the given reload hook.
func NewControl(onReload func()) *Control {
	return &Control{
		OnReload: onReload,
		sigCh:    make(chan os.Signal, 1),
	}
}

// Run blocks until a termination signal arrives, dispatching reload
// requests along the way. It returns the signal that ended the loop.
func (c *Control) Run() os.Signal {
	signal.Notify(c.sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer signal.Stop(c.sigCh)

	for sig := range c.sigCh {
		if sig == syscall.SIGHUP {
			wlog.Info("reload requested (SIGHUP)")
			if c.OnReload != nil {
				c.OnReload()
			}
			continue
		}
		wlog.Info("received %s, shutting down", sig)
		return sig
	}
	return nil
}

// Deliver injects a signal as if the OS had sent it. Used by tests driving
// the loop without relying on process-wide signal delivery.
func (c *Control) Deliver(sig os.Signal) {
	c.sigCh <- sig
}
