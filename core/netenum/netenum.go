//go:generate mockgen -package=mocks -destination=../../mocks/mock_enumerator.go github.com/dnswitch/dnswitch/core/netenum Enumerator

package netenum

import (
	"context"
	"fmt"

	"github.com/dnswitch/dnswitch/core/config"
)

// NetworkInterface describes one operational adapter DNS can be configured on.
type NetworkInterface struct {
	Name           string
	InterfaceIndex uint32
	InterfaceGUID  string
	HasIPv4        bool
	HasIPv6        bool
}

// DisplayName renders the interface for selection lists.
func (i NetworkInterface) DisplayName() string {
	return fmt.Sprintf("%s (%d)", i.Name, i.InterfaceIndex)
}

// Has reports whether the interface carries the given address family.
func (i NetworkInterface) Has(family config.AddressFamily) bool {
	if family == config.IPv6 {
		return i.HasIPv6
	}
	return i.HasIPv4
}

// Enumerator lists adapters. An empty result is a valid answer distinct from
// an enumeration error.
type Enumerator interface {
	List(ctx context.Context) ([]NetworkInterface, error)
}
