// Package iface locates local network interfaces by the addresses they
// carry.
package iface

import (
	"fmt"
	"net"
	"net/netip"
)

var listInterfaces = net.Interfaces

var interfaceAddrs = func(intf *net.Interface) ([]net.Addr, error) {
	return intf.Addrs()
}

// ByAddr returns the up interface that carries ip.
func ByAddr(ip netip.Addr) (*net.Interface, error) {
	ifaces, err := listInterfaces()
	if err != nil {
		return nil, fmt.Errorf("unable to list interfaces: %w", err)
	}

	for i := range ifaces {
		if ifaces[i].Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := interfaceAddrs(&ifaces[i])
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			a, ok := netip.AddrFromSlice(ipNet.IP.To4())
			if !ok {
				continue
			}
			if a == ip {
				return &ifaces[i], nil
			}
		}
	}

	return nil, fmt.Errorf("no interface with address %s", ip)
}
