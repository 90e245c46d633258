//go:build !windows

package netenum

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	psnet "github.com/shirou/gopsutil/net"
)

type psutilEnumerator struct{}

// New returns the platform enumerator.
func New() Enumerator {
	return psutilEnumerator{}
}

// List keeps interfaces that are up, not loopback, and carry at least one
// routable address.
func (psutilEnumerator) List(_ context.Context) ([]NetworkInterface, error) {
	stats, err := psnet.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate interfaces: %w", err)
	}
	var interfaces []NetworkInterface
	for _, stat := range stats {
		if !hasFlag(stat.Flags, "up") || hasFlag(stat.Flags, "loopback") {
			continue
		}
		hasIPv4, hasIPv6 := scanAddrs(stat.Addrs)
		if !hasIPv4 && !hasIPv6 {
			continue
		}
		interfaces = append(interfaces, NetworkInterface{
			Name:           stat.Name,
			InterfaceIndex: uint32(stat.Index),
			HasIPv4:        hasIPv4,
			HasIPv6:        hasIPv6,
		})
	}
	return interfaces, nil
}

func hasFlag(flags []string, want string) bool {
	for _, flag := range flags {
		if strings.EqualFold(flag, want) {
			return true
		}
	}
	return false
}

// scanAddrs classifies the interface's addresses by family, tolerating both
// bare addresses and CIDR notation.
func scanAddrs(addrs []psnet.InterfaceAddr) (hasIPv4, hasIPv6 bool) {
	for _, ifaceAddr := range addrs {
		value := ifaceAddr.Addr
		if i := strings.IndexByte(value, '/'); i >= 0 {
			value = value[:i]
		}
		addr, err := netip.ParseAddr(value)
		if err != nil || addr.IsUnspecified() {
			continue
		}
		if addr.Is4() || addr.Is4In6() {
			hasIPv4 = true
		} else {
			hasIPv6 = true
		}
	}
	return hasIPv4, hasIPv6
}
