//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package route

import (
	"fmt"
	"net/netip"

	"github.com/jackpal/gateway"

	"github.com/icmptools/eping/pkg/iface"
)

// Platforms without a netlink or RIB interface fall back to default
// gateway discovery, so the reported route is the default route whatever
// ip is.
func get(ip netip.Addr) (Route, error) {
	gw, err := gateway.DiscoverGateway()
	if err != nil {
		return Route{}, fmt.Errorf("unable to discover default gateway: %w", err)
	}
	ifIP, err := gateway.DiscoverInterface()
	if err != nil {
		return Route{}, fmt.Errorf("unable to discover outgoing interface: %w", err)
	}

	gwAddr, ok := netip.AddrFromSlice(gw.To4())
	if !ok {
		return Route{}, fmt.Errorf("unable to parse gateway address %s", gw)
	}
	src, ok := netip.AddrFromSlice(ifIP.To4())
	if !ok {
		return Route{}, fmt.Errorf("unable to parse interface address %s", ifIP)
	}

	intf, err := iface.ByAddr(src)
	if err != nil {
		return Route{}, err
	}

	return Route{
		Destination: ip,
		Gateway:     gwAddr,
		Source:      src,
		Interface:   intf,
	}, nil
}
