package server

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// newTCPListener creates a TCP listener bound to all IPv4 interfaces on
// port with an explicit accept backlog. net.Listen always uses the kernel
// default backlog, so the socket is created directly and handed to
// net.FileListener. Excess pending connections queue in the kernel up to
// backlog; application code never queues accepted work.
func newTCPListener(port, backlog int) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrInet4{Port: port}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind port %d: %w", port, err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("listen: %w", err)
	}

	// net.FileListener dups the descriptor, so the original is closed
	// along with the os.File wrapper.
	f := os.NewFile(uintptr(fd), "warden-listener")
	defer f.Close()
	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("file listener: %w", err)
	}
	return ln, nil
}
