//go:build linux

package route

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/jsimonetti/rtnetlink"
	"golang.org/x/sys/unix"
)

// fetchRoutes asks the kernel for the route to the given IPv4 address.
// Variable for mocking in tests.
var fetchRoutes = func(ip netip.Addr) ([]rtnetlink.RouteMessage, error) {
	c, err := rtnetlink.Dial(nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	tx := &rtnetlink.RouteMessage{
		Family: unix.AF_INET,
		Table:  unix.RT_TABLE_MAIN,
		Attributes: rtnetlink.RouteAttributes{
			Dst: ip.AsSlice(),
		},
	}
	return c.Route.Get(tx)
}

// fromMessage turns the kernel's answer into a Route.
func fromMessage(ip netip.Addr, msgs []rtnetlink.RouteMessage) (Route, error) {
	// RTM_GETROUTE returns exactly the most specific route
	if len(msgs) != 1 {
		return Route{}, fmt.Errorf("expected one route for %s, got %d", ip, len(msgs))
	}
	m := msgs[0]

	dst, ok := netip.AddrFromSlice(m.Attributes.Dst)
	if !ok {
		return Route{}, fmt.Errorf("unable to parse destination address %v", m.Attributes.Dst)
	}
	if dst != ip {
		return Route{}, fmt.Errorf("no matching route found for %s", ip)
	}
	src, ok := netip.AddrFromSlice(m.Attributes.Src)
	if !ok {
		return Route{}, fmt.Errorf("unable to parse source address %v", m.Attributes.Src)
	}
	// Directly connected routes have no gateway
	gw, _ := netip.AddrFromSlice(m.Attributes.Gateway)

	intf, err := net.InterfaceByIndex(int(m.Attributes.OutIface))
	if err != nil {
		return Route{}, fmt.Errorf("unable to get interface by index %d: %w", m.Attributes.OutIface, err)
	}
	if intf.Flags&net.FlagUp == 0 {
		return Route{}, fmt.Errorf("interface %s is down", intf.Name)
	}

	return Route{
		Destination: dst,
		Gateway:     gw,
		Source:      src,
		Interface:   intf,
	}, nil
}

func get(ip netip.Addr) (Route, error) {
	msgs, err := fetchRoutes(ip)
	if err != nil {
		return Route{}, err
	}
	r, err := fromMessage(ip, msgs)
	if err != nil {
		return Route{}, err
	}
	return r, nil
}
