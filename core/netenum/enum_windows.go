//go:build windows

package netenum

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// GetAdaptersAddresses flags and states not exported by x/sys.
const (
	gaaFlagSkipAnycast   = 0x0002
	gaaFlagSkipMulticast = 0x0004
	gaaFlagSkipDNSServer = 0x0008

	ifOperStatusUp = 1

	initialBufferSize = 15000
)

type windowsEnumerator struct{}

// New returns the platform enumerator.
func New() Enumerator {
	return windowsEnumerator{}
}

// List walks the adapter table and keeps adapters that are operationally up
// and carry at least one usable unicast address.
func (windowsEnumerator) List(_ context.Context) ([]NetworkInterface, error) {
	adapters, err := adapterAddresses()
	if err != nil {
		return nil, err
	}
	var interfaces []NetworkInterface
	for _, adapter := range adapters {
		if adapter.OperStatus != ifOperStatusUp {
			continue
		}
		name := "Unknown"
		if adapter.FriendlyName != nil {
			name = windows.UTF16PtrToString(adapter.FriendlyName)
		}
		guid := ""
		if adapter.AdapterName != nil {
			guid = windows.BytePtrToString(adapter.AdapterName)
		}
		var hasIPv4, hasIPv6 bool
		for unicast := adapter.FirstUnicastAddress; unicast != nil; unicast = unicast.Next {
			ip := unicast.Address.IP()
			if ip == nil || ip.IsUnspecified() {
				continue
			}
			if ip.To4() != nil {
				hasIPv4 = true
			} else {
				hasIPv6 = true
			}
		}
		if !hasIPv4 && !hasIPv6 {
			continue
		}
		interfaces = append(interfaces, NetworkInterface{
			Name:           name,
			InterfaceIndex: adapter.IfIndex,
			InterfaceGUID:  guid,
			HasIPv4:        hasIPv4,
			HasIPv6:        hasIPv6,
		})
	}
	return interfaces, nil
}

// adapterAddresses calls GetAdaptersAddresses, growing the buffer until the
// whole table fits.
func adapterAddresses() ([]*windows.IpAdapterAddresses, error) {
	var buf []byte
	size := uint32(initialBufferSize)
	for {
		buf = make([]byte, size)
		err := windows.GetAdaptersAddresses(
			windows.AF_UNSPEC,
			gaaFlagSkipAnycast|gaaFlagSkipMulticast|gaaFlagSkipDNSServer,
			0,
			(*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0])),
			&size,
		)
		if err == nil {
			if size == 0 {
				return nil, nil
			}
			break
		}
		if err != windows.ERROR_BUFFER_OVERFLOW {
			return nil, fmt.Errorf("failed to enumerate adapters: %w", err)
		}
		if size <= uint32(len(buf)) {
			return nil, fmt.Errorf("failed to enumerate adapters: %w", err)
		}
	}
	var adapters []*windows.IpAdapterAddresses
	for adapter := (*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0])); adapter != nil; adapter = adapter.Next {
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}
