package probe

import (
	"time"

	"github.com/sirupsen/logrus"
)

// transmit sends the next Echo Request. The sequence number advances on
// every attempt, sent or not; a failed send is logged and otherwise
// treated as a lost probe.
func (p *Pinger) transmit() {
	seq := p.session.nextSeq()
	pkt := encodeEchoRequest(p.session.ident, seq, p.session.size, time.Now())

	if err := p.tr.Send(pkt); err != nil {
		p.log.WithFields(logrus.Fields{
			"destination": p.session.dst,
			"seq":         seq,
		}).WithError(err).Warn("error while sending ping")
		return
	}

	p.log.WithFields(logrus.Fields{
		"destination": p.session.dst,
		"seq":         seq,
		"bytes":       len(pkt),
	}).Debug("sent echo request")
}
