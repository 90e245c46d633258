//go:generate mockgen -package=mocks -destination=../../mocks/mock_surface.go github.com/dnswitch/dnswitch/core/control Surface

package control

import (
	"context"
	"strings"

	"github.com/dnswitch/dnswitch/core/config"
)

// Surface is the boundary to the operating system's DNS configuration. Each
// operation is independently fallible and none of them retries; the caller
// decides what a failure means.
type Surface interface {
	// SetAutomatic restores DHCP-provided resolvers for one address family
	// of an interface.
	SetAutomatic(ctx context.Context, ifaceIndex uint32, family config.AddressFamily) error
	// SetManual replaces one family's resolvers with the given non-empty
	// address list, first address preferred.
	SetManual(ctx context.Context, ifaceIndex uint32, family config.AddressFamily, addresses []string) error
	// RegisterDoH associates an encrypted-resolution template with a server
	// address that has been configured via SetManual.
	RegisterDoH(ctx context.Context, address, template string, allowFallback bool) error
	// EnableDoHRegistry switches the per-interface encrypted-DNS flag on.
	EnableDoHRegistry(ctx context.Context, interfaceGUID string) error
	// ClearCache flushes the system resolver cache.
	ClearCache(ctx context.Context) error
	// GetCurrent reports the resolvers currently active on an interface.
	GetCurrent(ctx context.Context, ifaceIndex uint32) (ServerState, error)
}

// ServerState is the observed resolver configuration of one interface.
// An empty list means the family is on automatic configuration.
type ServerState struct {
	IPv4 []string
	IPv6 []string
}

// Display renders one family's servers for the user.
func (s ServerState) Display(family config.AddressFamily) string {
	addresses := s.IPv4
	if family == config.IPv6 {
		addresses = s.IPv6
	}
	if len(addresses) == 0 {
		return "Automatic"
	}
	return strings.Join(addresses, ", ")
}

// CommandError reports an external command that exited unsuccessfully.
// Detail is a single line suitable for showing to the user verbatim.
type CommandError struct {
	Tool   string
	Detail string
}

func (e *CommandError) Error() string {
	return e.Tool + " command failed: " + e.Detail
}

// RegistryError reports a failed registry mutation.
type RegistryError struct {
	Detail string
}

func (e *RegistryError) Error() string {
	return "Registry configuration failed: " + e.Detail
}
