package iface

import (
	"errors"
	"net"
	"net/netip"
	"testing"
)

func TestByAddr(t *testing.T) {
	origList := listInterfaces
	origAddrs := interfaceAddrs
	defer func() {
		listInterfaces = origList
		interfaceAddrs = origAddrs
	}()

	eth0 := net.Interface{Index: 1, Name: "eth0", Flags: net.FlagUp}
	eth1 := net.Interface{Index: 2, Name: "eth1", Flags: net.FlagUp}
	down0 := net.Interface{Index: 3, Name: "down0"}

	listInterfaces = func() ([]net.Interface, error) {
		return []net.Interface{eth0, eth1, down0}, nil
	}
	interfaceAddrs = func(intf *net.Interface) ([]net.Addr, error) {
		switch intf.Name {
		case "eth0":
			return []net.Addr{
				&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
				&net.IPNet{IP: net.ParseIP("192.0.2.10"), Mask: net.CIDRMask(24, 32)},
			}, nil
		case "eth1":
			return []net.Addr{
				&net.IPNet{IP: net.ParseIP("198.51.100.5"), Mask: net.CIDRMask(24, 32)},
			}, nil
		case "down0":
			return []net.Addr{
				&net.IPNet{IP: net.ParseIP("203.0.113.9"), Mask: net.CIDRMask(24, 32)},
			}, nil
		}
		return nil, errors.New("unknown interface")
	}

	tests := []struct {
		name     string
		ip       netip.Addr
		wantName string
		wantErr  bool
	}{
		{
			name:     "address on first interface",
			ip:       netip.MustParseAddr("192.0.2.10"),
			wantName: "eth0",
		},
		{
			name:     "address on second interface",
			ip:       netip.MustParseAddr("198.51.100.5"),
			wantName: "eth1",
		},
		{
			name:    "address on down interface",
			ip:      netip.MustParseAddr("203.0.113.9"),
			wantErr: true,
		},
		{
			name:    "unknown address",
			ip:      netip.MustParseAddr("192.0.2.99"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByAddr(tt.ip)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ByAddr(%s) expected error, got interface %v", tt.ip, got.Name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ByAddr(%s) returned error: %v", tt.ip, err)
			}
			if got.Name != tt.wantName {
				t.Errorf("ByAddr(%s) = %v, want %v", tt.ip, got.Name, tt.wantName)
			}
		})
	}
}

func TestByAddr_ListError(t *testing.T) {
	origList := listInterfaces
	defer func() { listInterfaces = origList }()

	listInterfaces = func() ([]net.Interface, error) {
		return nil, errors.New("netlink broken")
	}

	if _, err := ByAddr(netip.MustParseAddr("192.0.2.1")); err == nil {
		t.Error("ByAddr expected error when interfaces cannot be listed")
	}
}
