package probe

import (
	"errors"
	"fmt"
	"net/netip"
	"os"

	"golang.org/x/sys/unix"
)

// transport sends Echo Requests to one destination and receives raw ICMP
// datagrams, IP header included.
type transport interface {
	Send(b []byte) error
	Recv(b []byte) (int, netip.Addr, error)
	Close() error
}

// errNoData reports that no datagram was ready within the poll window.
var errNoData = errors.New("no datagram ready")

// rawSocket is the production transport: a raw IPv4 ICMP socket. Sends go
// to a single destination; reads see every ICMP datagram addressed to the
// host, so callers must filter.
type rawSocket struct {
	fd  int
	dst unix.SockaddrInet4
}

// openRawSocket opens a raw ICMP socket aimed at dst, optionally bound to
// the source address src.
func openRawSocket(dst, src netip.Addr) (*rawSocket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_ICMP)
	if err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("unable to open raw ICMP socket (requires root or CAP_NET_RAW): %w", err)
		}
		return nil, fmt.Errorf("unable to open raw ICMP socket: %w", err)
	}

	if src.IsValid() {
		sa := &unix.SockaddrInet4{Addr: src.As4()}
		if err := unix.Bind(fd, sa); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("unable to bind to source %s: %w", src, err)
		}
	}

	return &rawSocket{fd: fd, dst: unix.SockaddrInet4{Addr: dst.As4()}}, nil
}

func (r *rawSocket) Send(b []byte) error {
	return unix.Sendto(r.fd, b, unix.MSG_DONTWAIT, &r.dst)
}

// Recv waits up to 250 ms for a datagram so the read loop can notice
// shutdown without blocking in the kernel indefinitely.
func (r *rawSocket) Recv(b []byte) (int, netip.Addr, error) {
	fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 250)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, netip.Addr{}, errNoData
		}
		return 0, netip.Addr{}, os.NewSyscallError("poll", err)
	}
	if n == 0 {
		return 0, netip.Addr{}, errNoData
	}

	n, from, err := unix.Recvfrom(r.fd, b, unix.MSG_DONTWAIT)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
			return 0, netip.Addr{}, errNoData
		}
		return 0, netip.Addr{}, os.NewSyscallError("recvfrom", err)
	}

	var peer netip.Addr
	if sa, ok := from.(*unix.SockaddrInet4); ok {
		peer = netip.AddrFrom4(sa.Addr)
	}
	return n, peer, nil
}

func (r *rawSocket) Close() error {
	return unix.Close(r.fd)
}
