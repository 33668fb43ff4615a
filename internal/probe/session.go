package probe

import (
	"net/netip"
	"os"
	"time"
)

// session holds the per-target probe state. The identifier is fixed for
// the lifetime of the process; the sequence number advances on every
// transmission attempt and wraps naturally as a uint16.
type session struct {
	target   string     // destination as given on the command line
	dst      netip.Addr // resolved destination
	ident    uint16
	seq      uint16
	size     int // data bytes per request
	interval time.Duration
}

func newSession(target string, dst netip.Addr, size int, interval time.Duration) *session {
	return &session{
		target:   target,
		dst:      dst,
		ident:    uint16(os.Getpid()),
		size:     size,
		interval: interval,
	}
}

// nextSeq returns the sequence number for the next request, starting at 1.
func (s *session) nextSeq() uint16 {
	s.seq++
	return s.seq
}

// wireBytes is the on-wire size of one request, IP header included.
func (s *session) wireBytes() int {
	return s.size + icmpHeaderLen + ipHeaderLen
}
