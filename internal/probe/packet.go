package probe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ICMP message types used by the prober.
const (
	icmpEchoReply   = 0
	icmpEchoRequest = 8
)

// Wire geometry. IPv4 headers are 20 bytes without options and at most 60
// with; the kernel prepends one to every datagram read from a raw ICMP
// socket. The echo header itself is fixed at 8 bytes.
const (
	ipHeaderLen    = 20
	ipHeaderMaxLen = 60
	icmpHeaderLen  = 8
	ipMaxPacket    = 65535
)

// payloadMagic marks the start of the data section so replies that echo
// someone else's payload are not mistaken for our own.
const payloadMagic = 0xd4c3d2a1

// embeddedLen is the length of the magic plus the send timestamp.
const embeddedLen = 12

// Data section limits. Every request carries at least the embedded
// timestamp; the default matches the classic 56-byte ping payload.
const (
	MinDataLen     = embeddedLen
	DefaultDataLen = 56
	MaxDataLen     = ipMaxPacket - ipHeaderLen - icmpHeaderLen
)

// encodeEchoRequest builds a complete Echo Request message: the 8-byte
// header followed by size data bytes, of which the first twelve are the
// payload magic and the send timestamp. The rest is zero padding.
func encodeEchoRequest(ident, seq uint16, size int, now time.Time) []byte {
	b := make([]byte, icmpHeaderLen+size)
	b[0] = icmpEchoRequest
	binary.BigEndian.PutUint16(b[4:6], ident)
	binary.BigEndian.PutUint16(b[6:8], seq)
	binary.BigEndian.PutUint32(b[8:12], payloadMagic)
	binary.BigEndian.PutUint32(b[12:16], uint32(now.Unix()))
	binary.BigEndian.PutUint32(b[16:20], uint32(now.Nanosecond()/1000))
	binary.BigEndian.PutUint16(b[2:4], inetChecksum(b))
	return b
}

// Decode failures that are expected during normal operation. A raw ICMP
// socket sees every ICMP datagram the host receives, so most of these mean
// "not for us" rather than trouble.
var (
	errTooShort     = errors.New("packet too short for an icmp echo reply")
	errNotEchoReply = errors.New("not an icmp echo reply")
	errBadPayload   = errors.New("echo reply payload missing timestamp data")
)

// identMismatchError reports an Echo Reply addressed to another process.
type identMismatchError struct {
	got, want uint16
}

func (e identMismatchError) Error() string {
	return fmt.Sprintf("echo reply identifier %#04x does not match %#04x", e.got, e.want)
}

// reply is a decoded Echo Reply.
type reply struct {
	bytes  int       // ICMP-layer length, header included
	ttl    uint8     // remaining TTL from the IP header
	seq    uint16    // echoed sequence number
	sentAt time.Time // send timestamp recovered from the payload
}

// decodeReply parses a raw datagram as delivered by the kernel, IP header
// included, and validates that it is an Echo Reply to one of our own
// requests. The header length field is honored so replies arriving with IP
// options decode correctly.
func decodeReply(b []byte, ident uint16) (reply, error) {
	if len(b) < ipHeaderLen {
		return reply{}, errTooShort
	}
	hlen := int(b[0]&0x0f) * 4
	if hlen < ipHeaderLen || len(b) < hlen+icmpHeaderLen {
		return reply{}, errTooShort
	}

	icmp := b[hlen:]
	if icmp[0] != icmpEchoReply {
		return reply{}, errNotEchoReply
	}
	if id := binary.BigEndian.Uint16(icmp[4:6]); id != ident {
		return reply{}, identMismatchError{got: id, want: ident}
	}
	if len(icmp) < icmpHeaderLen+embeddedLen || binary.BigEndian.Uint32(icmp[8:12]) != payloadMagic {
		return reply{}, errBadPayload
	}

	sec := binary.BigEndian.Uint32(icmp[12:16])
	usec := binary.BigEndian.Uint32(icmp[16:20])
	return reply{
		bytes:  len(icmp),
		ttl:    b[8],
		seq:    binary.BigEndian.Uint16(icmp[6:8]),
		sentAt: time.Unix(int64(sec), int64(usec)*1000),
	}, nil
}
