package probe

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/icmptools/eping/internal/config"
	"github.com/icmptools/eping/internal/output"
	"github.com/icmptools/eping/internal/shared"
)

// datagram is one raw read handed from the read loop to the engine.
type datagram struct {
	data []byte
	peer netip.Addr
	at   time.Time
}

// Pinger probes a single destination with ICMP Echo Requests and reports
// accepted replies to the output manager. One goroutine owns all session
// state and the send timer; a second feeds it raw datagrams from the
// socket, so no locking is needed anywhere in the engine.
type Pinger struct {
	session *session
	tr      transport
	out     *output.Manager
	log     *logrus.Logger

	info      shared.SessionInfo
	datagrams chan datagram
}

// New resolves the destination in args and prepares a Pinger over a raw
// ICMP socket bound to the requested source address, if any.
func New(args config.Args, log *logrus.Logger, out *output.Manager) (*Pinger, error) {
	dst, err := resolveDestination(args.Destination)
	if err != nil {
		return nil, err
	}

	var src netip.Addr
	if args.Source != "" {
		src, err = netip.ParseAddr(args.Source)
		if err != nil || !src.Is4() {
			return nil, fmt.Errorf("invalid source address %s", args.Source)
		}
	}

	size := args.Size
	if size < MinDataLen {
		log.WithFields(logrus.Fields{
			"size": size,
			"min":  MinDataLen,
		}).Warn("payload size too small to carry a timestamp, raising it")
		size = MinDataLen
	}
	if size > MaxDataLen {
		log.WithFields(logrus.Fields{
			"size": size,
			"max":  MaxDataLen,
		}).Warn("payload size exceeds the IPv4 maximum, lowering it")
		size = MaxDataLen
	}

	tr, err := openRawSocket(dst, src)
	if err != nil {
		return nil, err
	}

	return newPinger(args.Destination, dst, size, args.Interval, tr, log, out), nil
}

// newPinger wires a Pinger over any transport.
func newPinger(target string, dst netip.Addr, size int, interval time.Duration, tr transport, log *logrus.Logger, out *output.Manager) *Pinger {
	s := newSession(target, dst, size, interval)
	return &Pinger{
		session: s,
		tr:      tr,
		out:     out,
		log:     log,
		info: shared.SessionInfo{
			Target:    target,
			Addr:      dst,
			DataBytes: size,
			WireBytes: s.wireBytes(),
		},
		datagrams: make(chan datagram, 16),
	}
}

// Info describes the prepared session.
func (p *Pinger) Info() shared.SessionInfo {
	return p.info
}

// Run announces the session and probes until ctx is cancelled. The first
// request goes out immediately; each following one is scheduled a full
// interval after an accepted reply. A reply that never arrives leaves the
// timer unarmed and stalls probing, so at most one request is ever
// outstanding.
func (p *Pinger) Run(ctx context.Context) error {
	p.out.Start(p.info)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.readLoop(ctx) })
	g.Go(func() error { return p.loop(ctx) })

	err := g.Wait()
	if cerr := p.tr.Close(); err == nil {
		err = cerr
	}
	return err
}

func (p *Pinger) loop(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			p.transmit()
		case d := <-p.datagrams:
			if p.handleDatagram(d) {
				rearm(timer, p.session.interval)
			}
		}
	}
}

// rearm resets a timer that may be armed, fired, or already drained.
func rearm(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func (p *Pinger) readLoop(ctx context.Context) error {
	buf := make([]byte, ipHeaderMaxLen+icmpHeaderLen+p.session.size)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, peer, err := p.tr.Recv(buf)
		if errors.Is(err, errNoData) {
			continue
		}
		if err != nil {
			return err
		}

		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case p.datagrams <- datagram{data: data, peer: peer, at: time.Now()}:
		case <-ctx.Done():
			return nil
		}
	}
}
