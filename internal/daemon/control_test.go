package daemon

import (
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

func TestControlReloadThenShutdown(t *testing.T) {
	var reloads atomic.Int32
	c := NewControl(func() { reloads.Add(1) })

	done := make(chan os.Signal, 1)
	go func() { done <- c.Run() }()

	c.Deliver(syscall.SIGHUP)
	c.Deliver(syscall.SIGHUP)
	c.Deliver(syscall.SIGTERM)

	select {
	case sig := <-done:
		if sig != syscall.SIGTERM {
			t.Errorf("Run returned %v, want SIGTERM", sig)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after SIGTERM")
	}
	if got := reloads.Load(); got != 2 {
		t.Errorf("reload hook ran %d times, want 2", got)
	}
}

func TestControlTerminationSignals(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT} {
		t.Run(sig.String(), func(t *testing.T) {
			c := NewControl(nil)
			done := make(chan os.Signal, 1)
			go func() { done <- c.Run() }()

			c.Deliver(sig)
			select {
			case got := <-done:
				if got != sig {
					t.Errorf("Run returned %v, want %v", got, sig)
				}
			case <-time.After(5 * time.Second):
				t.Fatalf("Run did not return after %v", sig)
			}
		})
	}
}

func TestControlNilReloadHook(t *testing.T) {
	c := NewControl(nil)
	done := make(chan os.Signal, 1)
	go func() { done <- c.Run() }()

	// Must not panic with a nil hook.
	c.Deliver(syscall.SIGHUP)
	c.Deliver(syscall.SIGINT)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestControlRealSignalDelivery(t *testing.T) {
	var reloads atomic.Int32
	c := NewControl(func() { reloads.Add(1) })

	done := make(chan os.Signal, 1)
	go func() { done <- c.Run() }()

	// Give Run a moment to install its signal handler.
	time.Sleep(100 * time.Millisecond)

	// A real SIGHUP delivered to the process must reach the loop.
	if err := syscall.Kill(os.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("kill: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for reloads.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if reloads.Load() == 0 {
		t.Error("SIGHUP did not trigger the reload hook")
	}

	c.Deliver(syscall.SIGTERM)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
