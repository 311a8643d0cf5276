// Package server implements the TCP dispatcher and per-connection handler
// for warden's one-command-per-connection protocol.
package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/xdg/warden/internal/audit"
	"github.com/xdg/warden/internal/config"
	"github.com/xdg/warden/internal/runner"
	"github.com/xdg/warden/internal/whitelist"
	"github.com/xdg/warden/internal/wlog"
)

// Server accepts plaintext TCP connections and dispatches each to an
// isolated handler goroutine. The accept loop itself only ever blocks on
// accept and never waits on a handler.
type Server struct {
	port        int
	backlog     int
	connTimeout time.Duration
	cmdTimeout  time.Duration

	store *whitelist.Store
	run   *runner.Runner
	audit *audit.Logger

	listener net.Listener
	wg       sync.WaitGroup
	shutdown chan struct{}
	mu       sync.Mutex // protects listener and shutdown state
}

// New creates a Server from resolved settings. auditLogger may be nil to
// disable the audit trail.
func New(s *config.Settings, store *whitelist.Store, run *runner.Runner, auditLogger *audit.Logger) *Server {
	return &Server{
		port:        s.Port,
		backlog:     s.Backlog,
		connTimeout: s.ConnTimeout,
		cmdTimeout:  s.CmdTimeout,
		store:       store,
		run:         run,
		audit:       auditLogger,
		shutdown:    make(chan struct{}),
	}
}

// Start binds the listening socket and begins accepting connections in a
// background goroutine. A bind failure is returned to the caller, which
// treats it as fatal.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ln, err := newTCPListener(s.port, s.backlog)
	if err != nil {
		return err
	}
	s.listener = ln

	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

// Addr returns the listener's address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop stops accepting new connections and closes the listening socket.
// In-flight handlers are not waited for or cancelled; they finish
// independently and their connections close on their own schedule.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	close(s.shutdown)
	err := s.listener.Close()
	s.listener = nil
	return err
}

// Wait blocks until the accept loop and all handler goroutines have
// finished. Callers that want a full drain call Stop then Wait.
func (s *Server) Wait() {
	s.wg.Wait()
}

// acceptLoop accepts connections until shutdown. Transient accept errors
// are logged and the loop continues; only listener closure ends it.
func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			wlog.Warn("accept failed: %v", err)
			continue
		}

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}
