//go:build linux

package control

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/pkg/logging"

	dbus "github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"
)

const (
	resolvedDest       = "org.freedesktop.resolve1"
	resolvedObjectPath = "/org/freedesktop/resolve1"

	resolvedGetLinkMethod     = "org.freedesktop.resolve1.Manager.GetLink"
	resolvedFlushCachesMethod = "org.freedesktop.resolve1.Manager.FlushCaches"
	resolvedSetDNSMethod      = "org.freedesktop.resolve1.Link.SetDNS"
	resolvedSetDNSOverTLS     = "org.freedesktop.resolve1.Link.SetDNSOverTLS"
	resolvedRevertMethod      = "org.freedesktop.resolve1.Link.Revert"
	resolvedDNSProperty       = "org.freedesktop.resolve1.Link.DNS"

	resolvedCallTimeout = 5 * time.Second
)

// resolvedDNSInput is the (iay) struct SetDNS expects per server.
type resolvedDNSInput struct {
	Family  int32
	Address []byte
}

// ResolvedSurface manages per-link DNS through the systemd-resolved D-Bus
// API. resolve1 replaces a link's whole server list on every SetDNS call, so
// the surface remembers what each family was last set to and re-submits the
// union; a link reverts to automatic only when both families are cleared.
type ResolvedSurface struct {
	mu        sync.Mutex
	links     map[uint32]map[config.AddressFamily][]netip.Addr
	lastIndex uint32
	hasLast   bool
	logger    logging.Logger
}

// NewResolvedSurface returns a surface talking to resolve1 on the system bus.
func NewResolvedSurface(logger logging.Logger) *ResolvedSurface {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ResolvedSurface{
		links:  make(map[uint32]map[config.AddressFamily][]netip.Addr),
		logger: logger.With("component", "control"),
	}
}

// SetManual replaces one family's servers on a link.
func (s *ResolvedSurface) SetManual(ctx context.Context, ifaceIndex uint32, family config.AddressFamily, addresses []string) error {
	parsed := make([]netip.Addr, 0, len(addresses))
	for _, address := range addresses {
		addr, err := netip.ParseAddr(address)
		if err != nil {
			return fmt.Errorf("invalid server address '%s': %w", address, err)
		}
		parsed = append(parsed, addr.Unmap())
	}

	s.mu.Lock()
	families := s.links[ifaceIndex]
	if families == nil {
		families = make(map[config.AddressFamily][]netip.Addr)
		s.links[ifaceIndex] = families
	}
	families[family] = parsed
	s.lastIndex = ifaceIndex
	s.hasLast = true
	union := familyUnion(families)
	s.mu.Unlock()

	s.logger.Debug("Setting manual DNS", "interface", ifaceIndex, "family", family, "servers", addresses)
	return s.applyLink(ctx, ifaceIndex, union)
}

// SetAutomatic clears one family on a link. When no family remains under
// manual control the link is reverted to its automatic configuration.
func (s *ResolvedSurface) SetAutomatic(ctx context.Context, ifaceIndex uint32, family config.AddressFamily) error {
	s.mu.Lock()
	families := s.links[ifaceIndex]
	if families != nil {
		delete(families, family)
	}
	union := familyUnion(families)
	s.mu.Unlock()

	s.logger.Debug("Setting automatic DNS", "interface", ifaceIndex, "family", family)
	return s.applyLink(ctx, ifaceIndex, union)
}

// RegisterDoH enables encrypted transport for the most recently configured
// link. resolve1 speaks DNS-over-TLS rather than DoH, so the template is not
// used here; allowFallback maps to opportunistic mode.
func (s *ResolvedSurface) RegisterDoH(ctx context.Context, address, template string, allowFallback bool) error {
	s.mu.Lock()
	ifaceIndex, ok := s.lastIndex, s.hasLast
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no link has been configured for encrypted DNS")
	}

	mode := "yes"
	if allowFallback {
		mode = "opportunistic"
	}
	s.logger.Debug("Enabling DNS-over-TLS", "interface", ifaceIndex, "address", address, "mode", mode)

	ctx, cancel := context.WithTimeout(ctx, resolvedCallTimeout)
	defer cancel()
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	link, err := linkObject(ctx, conn, ifaceIndex)
	if err != nil {
		return err
	}
	if call := link.CallWithContext(ctx, resolvedSetDNSOverTLS, 0, mode); call.Err != nil {
		return fmt.Errorf("failed to set DNSOverTLS: %w", call.Err)
	}
	return nil
}

// EnableDoHRegistry is a Windows concern; on this platform encrypted
// transport is already active once RegisterDoH has run.
func (s *ResolvedSurface) EnableDoHRegistry(ctx context.Context, interfaceGUID string) error {
	s.logger.Debug("Registry flag not applicable on this platform", "guid", interfaceGUID)
	return nil
}

// ClearCache flushes the resolved cache.
func (s *ResolvedSurface) ClearCache(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, resolvedCallTimeout)
	defer cancel()
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	manager := conn.Object(resolvedDest, resolvedObjectPath)
	if call := manager.CallWithContext(ctx, resolvedFlushCachesMethod, 0); call.Err != nil {
		return fmt.Errorf("failed to flush caches: %w", call.Err)
	}
	return nil
}

// GetCurrent reads the DNS property of the link.
func (s *ResolvedSurface) GetCurrent(ctx context.Context, ifaceIndex uint32) (ServerState, error) {
	ctx, cancel := context.WithTimeout(ctx, resolvedCallTimeout)
	defer cancel()
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return ServerState{}, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	link, err := linkObject(ctx, conn, ifaceIndex)
	if err != nil {
		return ServerState{}, err
	}
	variant, err := link.GetProperty(resolvedDNSProperty)
	if err != nil {
		return ServerState{}, fmt.Errorf("failed to read link DNS property: %w", err)
	}
	return parseLinkDNS(variant.Value())
}

func (s *ResolvedSurface) applyLink(ctx context.Context, ifaceIndex uint32, servers []netip.Addr) error {
	ctx, cancel := context.WithTimeout(ctx, resolvedCallTimeout)
	defer cancel()
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	link, err := linkObject(ctx, conn, ifaceIndex)
	if err != nil {
		return err
	}
	if len(servers) == 0 {
		if call := link.CallWithContext(ctx, resolvedRevertMethod, 0); call.Err != nil {
			return fmt.Errorf("failed to revert link DNS: %w", call.Err)
		}
		return nil
	}
	if call := link.CallWithContext(ctx, resolvedSetDNSMethod, 0, dnsInputs(servers)); call.Err != nil {
		return fmt.Errorf("failed to set link DNS: %w", call.Err)
	}
	return nil
}

func linkObject(ctx context.Context, conn *dbus.Conn, ifaceIndex uint32) (dbus.BusObject, error) {
	manager := conn.Object(resolvedDest, resolvedObjectPath)
	var linkPath dbus.ObjectPath
	if err := manager.CallWithContext(ctx, resolvedGetLinkMethod, 0, int32(ifaceIndex)).Store(&linkPath); err != nil {
		return nil, fmt.Errorf("failed to get link for interface %d: %w", ifaceIndex, err)
	}
	return conn.Object(resolvedDest, linkPath), nil
}

// familyUnion flattens the per-family memo in IPv4-then-IPv6 order.
func familyUnion(families map[config.AddressFamily][]netip.Addr) []netip.Addr {
	if families == nil {
		return nil
	}
	var union []netip.Addr
	union = append(union, families[config.IPv4]...)
	union = append(union, families[config.IPv6]...)
	return union
}

func dnsInputs(servers []netip.Addr) []resolvedDNSInput {
	inputs := make([]resolvedDNSInput, 0, len(servers))
	for _, addr := range servers {
		family := int32(unix.AF_INET)
		if addr.Is6() {
			family = int32(unix.AF_INET6)
		}
		inputs = append(inputs, resolvedDNSInput{Family: family, Address: addr.AsSlice()})
	}
	return inputs
}

// parseLinkDNS unpacks the a(iay) value of the link DNS property.
func parseLinkDNS(value interface{}) (ServerState, error) {
	var state ServerState
	var pairs [][]interface{}
	switch v := value.(type) {
	case [][]interface{}:
		pairs = v
	case []interface{}:
		for _, raw := range v {
			if pair, ok := raw.([]interface{}); ok {
				pairs = append(pairs, pair)
			}
		}
	default:
		return state, fmt.Errorf("unexpected DNS property shape %T", value)
	}
	for _, pair := range pairs {
		if len(pair) != 2 {
			continue
		}
		family, _ := pair[0].(int32)
		raw, _ := pair[1].([]byte)
		addr, ok := netip.AddrFromSlice(raw)
		if !ok {
			continue
		}
		switch family {
		case int32(unix.AF_INET):
			state.IPv4 = append(state.IPv4, addr.String())
		case int32(unix.AF_INET6):
			state.IPv6 = append(state.IPv6, addr.String())
		}
	}
	return state, nil
}
