package probe

import (
	"errors"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/sirupsen/logrus"

	"github.com/icmptools/eping/internal/shared"
)

// handleDatagram decodes one raw datagram and reports it if it is an Echo
// Reply to this session. The return value tells the caller whether the
// next request should be scheduled. Non-echo ICMP traffic passes through
// silently, since a raw socket sees everything the host receives.
func (p *Pinger) handleDatagram(d datagram) bool {
	p.dumpPacket(d)

	r, err := decodeReply(d.data, p.session.ident)
	if err != nil {
		p.logDecodeError(d, err)
		return false
	}

	p.out.Reply(shared.Measurement{
		Bytes:    r.bytes,
		Peer:     d.peer,
		Seq:      r.seq,
		TTL:      r.ttl,
		RTT:      d.at.Sub(r.sentAt).Microseconds(),
		RecvTime: d.at,
	})
	return true
}

func (p *Pinger) logDecodeError(d datagram, err error) {
	var mismatch identMismatchError
	switch {
	case errors.As(err, &mismatch):
		p.log.WithFields(logrus.Fields{
			"id":          mismatch.got,
			"expected_id": mismatch.want,
			"bytes":       len(d.data),
			"from":        d.peer,
		}).Warn("received unexpected packet")
	case errors.Is(err, errBadPayload):
		p.log.WithFields(logrus.Fields{
			"bytes": len(d.data),
			"from":  d.peer,
		}).Warn("reply payload malformed")
	case errors.Is(err, errTooShort):
		p.log.WithFields(logrus.Fields{
			"bytes": len(d.data),
			"from":  d.peer,
		}).Warn("received packet too short for ICMP")
	}
}

// dumpPacket prints a full protocol decode of the datagram at debug
// level.
func (p *Pinger) dumpPacket(d datagram) {
	if !p.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	pkt := gopacket.NewPacket(d.data, layers.LayerTypeIPv4, gopacket.Default)
	p.log.WithField("from", d.peer).Debug(pkt.String())
}
