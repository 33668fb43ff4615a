package shared

import (
	"fmt"
	"net/netip"
	"time"
)

// SessionInfo describes a ping session for the startup announcement.
type SessionInfo struct {
	Target    string     `json:"target"`     // destination as given on the command line
	Addr      netip.Addr `json:"addr"`       // resolved IPv4 destination
	DataBytes int        `json:"data_bytes"` // ICMP data bytes per probe
	WireBytes int        `json:"wire_bytes"` // data plus ICMP and IP headers
}

// Measurement is a single accepted Echo Reply.
type Measurement struct {
	Bytes    int        `json:"bytes"`     // ICMP-layer bytes (header + data)
	Peer     netip.Addr `json:"peer"`      // responder address
	Seq      uint16     `json:"seq"`       // echoed sequence number
	TTL      uint8      `json:"ttl"`       // remaining IP TTL of the reply
	RTT      int64      `json:"rtt"`       // RTT in microseconds
	RecvTime time.Time  `json:"recv_time"` // when the reply was received
}

// FormatRTT renders an RTT in microseconds as milliseconds with three
// significant digits up to 100 ms, the way ping prints times. Above that
// the value is whole milliseconds. Negative values (clock stepped between
// send and receive) clamp to zero.
func FormatRTT(micros int64) string {
	t := micros / 10 // tens of microseconds
	switch {
	case t < 0:
		return "0.00"
	case t < 100:
		return fmt.Sprintf("0.%02d", t)
	case t < 1000:
		return fmt.Sprintf("%d.%02d", t/100, t%100)
	case t < 10000:
		return fmt.Sprintf("%d.%d", t/100, (t%100)/10)
	default:
		return fmt.Sprintf("%d", t/100)
	}
}
