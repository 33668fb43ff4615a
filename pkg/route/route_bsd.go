//go:build darwin || freebsd || netbsd || openbsd

package route

import (
	"fmt"
	"net"
	"net/netip"
	"syscall"

	"golang.org/x/net/route"
)

// fetchRIBMessages retrieves the IPv4 routing table from the kernel.
// Variable for mocking in tests.
var fetchRIBMessages = func() ([]route.Message, error) {
	rib, err := route.FetchRIB(syscall.AF_INET, route.RIBTypeRoute, 0)
	if err != nil {
		return nil, err
	}
	return route.ParseRIB(route.RIBTypeRoute, rib)
}

// fromMessages walks the routing table and returns the longest prefix
// match for ip. A host route for ip wins outright.
func fromMessages(ip netip.Addr, msgs []route.Message) (Route, error) {
	var (
		best     Route
		bestBits = -1
	)

	for _, msg := range msgs {
		rm, ok := msg.(*route.RouteMessage)
		if !ok || len(rm.Addrs) <= syscall.RTAX_IFA {
			continue
		}
		if rm.Flags&syscall.RTF_UP == 0 {
			continue
		}

		dst, ok := rm.Addrs[syscall.RTAX_DST].(*route.Inet4Addr)
		if !ok {
			continue
		}
		src, ok := rm.Addrs[syscall.RTAX_IFA].(*route.Inet4Addr)
		if !ok {
			continue
		}
		// Directly connected routes have no gateway
		gw := netip.Addr{}
		if g, ok := rm.Addrs[syscall.RTAX_GATEWAY].(*route.Inet4Addr); ok {
			gw = netip.AddrFrom4(g.IP)
		}

		a := netip.AddrFrom4(dst.IP)

		if rm.Flags&syscall.RTF_HOST != 0 && a == ip {
			intf, err := net.InterfaceByIndex(rm.Index)
			if err != nil {
				return Route{}, err
			}
			return Route{
				Destination: ip,
				Gateway:     gw,
				Source:      netip.AddrFrom4(src.IP),
				Interface:   intf,
			}, nil
		}

		mask, ok := rm.Addrs[syscall.RTAX_NETMASK].(*route.Inet4Addr)
		if !ok {
			continue
		}
		bits, _ := net.IPv4Mask(mask.IP[0], mask.IP[1], mask.IP[2], mask.IP[3]).Size()
		if !netip.PrefixFrom(a, bits).Contains(ip) || bits <= bestBits {
			continue
		}

		intf, err := net.InterfaceByIndex(rm.Index)
		if err != nil {
			return Route{}, err
		}
		best = Route{
			Destination: ip,
			Gateway:     gw,
			Source:      netip.AddrFrom4(src.IP),
			Interface:   intf,
		}
		bestBits = bits
	}

	if bestBits < 0 {
		return Route{}, fmt.Errorf("no matching route found for %s", ip)
	}
	return best, nil
}

// get retrieves the most specific route for a given IPv4 address by
// walking the routing information base (RIB) with longest prefix match.
func get(ip netip.Addr) (Route, error) {
	msgs, err := fetchRIBMessages()
	if err != nil {
		return Route{}, err
	}
	return fromMessages(ip, msgs)
}
