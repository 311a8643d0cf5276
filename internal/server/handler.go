package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/xdg/warden/internal/audit"
	"github.com/xdg/warden/internal/whitelist"
	"github.com/xdg/warden/internal/wlog"
)

// Handler local status codes, recorded in the audit trail and never sent
// to the client.
const (
	statusOK       = 0
	statusRejected = 1
)

// handleConn processes a single client connection end to end: read one
// request line, authorize it against the current whitelist snapshot, run
// it, write the result, close. Each handler is its own failure domain; a
// panic is recovered here so it cannot reach the dispatcher or any other
// connection.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	defer func() {
		if r := recover(); r != nil {
			wlog.Error("handler for %s panicked: %v", remote, r)
		}
	}()

	wlog.Info("connection from %s", remote)
	s.audit.Log(audit.Event{Type: audit.EventConnect, Remote: remote})

	// Read: one line within the connection timeout. On timeout or read
	// error the connection is treated as aborted: dropped without a
	// response.
	if err := conn.SetReadDeadline(time.Now().Add(s.connTimeout)); err != nil {
		wlog.Debug("set read deadline for %s: %v", remote, err)
		return
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		wlog.Debug("connection from %s aborted before a full request: %v", remote, err)
		return
	}
	raw := strings.TrimRight(line, "\r\n")
	request := strings.TrimSpace(raw)

	// Authorize against the snapshot current at this moment. A reload
	// swaps the snapshot for later connections; this one is unaffected.
	snap := s.store.Current()
	if !snap.Allowed(request) {
		s.reject(conn, remote, raw, request)
		return
	}

	// Execute: one attempt, hard deadline, result delivered regardless of
	// the command's exit status.
	wlog.Info("executing for %s: %q", remote, request)
	s.audit.Log(audit.Event{Type: audit.EventExec, Remote: remote, Cmd: request})

	res := s.run.Run(context.Background(), request, s.cmdTimeout)
	if res.TimedOut {
		wlog.Warn("command for %s timed out after %s: %q", remote, s.cmdTimeout, request)
		s.audit.Log(audit.Event{
			Type:     audit.EventTimeout,
			Remote:   remote,
			Cmd:      request,
			Duration: res.Duration,
		})
	} else {
		s.audit.Log(audit.Event{
			Type:     audit.EventComplete,
			Remote:   remote,
			Cmd:      request,
			ExitCode: res.ExitCode,
			Duration: res.Duration,
			Status:   statusOK,
		})
	}

	// Respond: the result bytes go to the client verbatim, then the
	// connection closes. Exactly one response per connection.
	s.writeResponse(conn, remote, res.Output)
}

// reject writes the rejection line naming the disallowed command and
// records the unauthorized request for auditing.
func (s *Server) reject(conn net.Conn, remote, raw, request string) {
	name := whitelist.CommandName(request)
	wlog.Warn("rejected command from %s: %q", remote, raw)
	s.audit.Log(audit.Event{
		Type:   audit.EventReject,
		Remote: remote,
		Raw:    raw,
		Status: statusRejected,
	})
	s.writeResponse(conn, remote, fmt.Appendf(nil, "Command is not allowed: %s\r\n", name))
}

// writeResponse delivers the single response message. Write failures only
// affect this connection and are logged at debug level.
func (s *Server) writeResponse(conn net.Conn, remote string, msg []byte) {
	if err := conn.SetWriteDeadline(time.Now().Add(s.connTimeout)); err != nil {
		wlog.Debug("set write deadline for %s: %v", remote, err)
		return
	}
	if _, err := conn.Write(msg); err != nil {
		wlog.Debug("write response to %s: %v", remote, err)
	}
}
