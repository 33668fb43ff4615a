package probe

import (
	"fmt"
	"net"
	"net/netip"
)

// lookupHost is swapped out in tests.
var lookupHost = net.LookupHost

// resolveDestination turns the command line destination into an IPv4
// address. Literals are used as given; names go through the system
// resolver and the first IPv4 answer wins.
func resolveDestination(target string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(target); err == nil {
		if !addr.Is4() {
			return netip.Addr{}, fmt.Errorf("%s is not an IPv4 address", target)
		}
		return addr, nil
	}

	addrs, err := lookupHost(target)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("unable to resolve %s: %w", target, err)
	}
	for _, a := range addrs {
		if addr, err := netip.ParseAddr(a); err == nil && addr.Is4() {
			return addr, nil
		}
	}
	return netip.Addr{}, fmt.Errorf("no IPv4 address found for %s", target)
}
