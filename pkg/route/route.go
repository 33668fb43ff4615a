// Package route looks up the kernel route a probe session will use, so
// the outgoing interface and its MTU can be reported before probing
// starts.
package route

import (
	"net"
	"net/netip"
)

// Route represents a network route with its destination, gateway, source address, and the associated network interface.
type Route struct {
	Destination netip.Addr
	Gateway     netip.Addr
	Source      netip.Addr
	Interface   *net.Interface
}

// Get retrieves the most specific route for a given IPv4 address and returns it as a Route struct.
func Get(ip netip.Addr) (Route, error) {
	// Use platform-specific implementation to fetch the route
	return get(ip)
}
