package output

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/icmptools/eping/internal/shared"
)

// Resolver maps a reply source to the name shown on reply lines.
type Resolver interface {
	Lookup(addr netip.Addr) string
}

// TextOutput prints the classic interactive ping lines.
type TextOutput struct {
	w        io.Writer
	resolver Resolver
}

func NewTextOutput(w io.Writer, resolver Resolver) *TextOutput {
	return &TextOutput{w: w, resolver: resolver}
}

func (t *TextOutput) Start(info shared.SessionInfo) {
	fmt.Fprintf(t.w, "PING %s (%s) %d(%d) bytes of data.\n",
		info.Target, info.Addr, info.DataBytes, info.WireBytes)
}

func (t *TextOutput) Reply(m shared.Measurement) {
	fmt.Fprintf(t.w, "%d bytes from %s: icmp_seq=%d ttl=%d time=%s ms\n",
		m.Bytes, t.from(m.Peer), m.Seq, m.TTL, shared.FormatRTT(m.RTT))
}

// from renders the reply source, name first when one resolves.
func (t *TextOutput) from(peer netip.Addr) string {
	if name := t.resolver.Lookup(peer); name != peer.String() {
		return fmt.Sprintf("%s (%s)", name, peer)
	}
	return peer.String()
}

func (t *TextOutput) Close() error {
	return nil
}
