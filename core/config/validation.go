package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// ValidateIPv4 reports whether addr is empty or a literal IPv4 address.
// Empty means "slot not in use" and is always acceptable on its own.
func ValidateIPv4(addr string) bool {
	if strings.TrimSpace(addr) == "" {
		return true
	}
	ip, err := netip.ParseAddr(addr)
	return err == nil && ip.Is4()
}

// ValidateIPv6 reports whether addr is empty or a literal IPv6 address.
func ValidateIPv6(addr string) bool {
	if strings.TrimSpace(addr) == "" {
		return true
	}
	ip, err := netip.ParseAddr(addr)
	return err == nil && ip.Is6()
}

// ValidateDoHTemplate reports whether template is empty or a well-formed DoH
// URI template: https scheme and a {?dns} placeholder.
func ValidateDoHTemplate(template string) bool {
	if strings.TrimSpace(template) == "" {
		return true
	}
	return strings.HasPrefix(template, "https://") && strings.Contains(template, "{?dns}")
}

// ValidateSettings checks a candidate settings object against the rules for
// the given mode and returns the first violation as a user-facing error.
// Automatic mode has nothing to validate; manual mode checks each enabled
// family in IPv4-then-IPv6 order.
func ValidateSettings(settings *DNSSettings, mode DNSMode) error {
	if mode == ModeAutomatic {
		return nil
	}
	if err := validateEntry(&settings.IPv4, IPv4); err != nil {
		return err
	}
	return validateEntry(&settings.IPv6, IPv6)
}

func validateEntry(entry *DNSEntry, family AddressFamily) error {
	if !entry.Enabled {
		return nil
	}
	validAddr := ValidateIPv4
	if family == IPv6 {
		validAddr = ValidateIPv6
	}
	if entry.Primary.Address == "" {
		return fmt.Errorf("%s primary DNS is required when enabled", family)
	}
	if !validAddr(entry.Primary.Address) {
		return fmt.Errorf("Invalid %s primary DNS address", family)
	}
	if entry.Secondary.Address != "" && !validAddr(entry.Secondary.Address) {
		return fmt.Errorf("Invalid %s secondary DNS address", family)
	}
	if err := validateServerDoH(&entry.Primary, family, "primary"); err != nil {
		return err
	}
	return validateServerDoH(&entry.Secondary, family, "secondary")
}

func validateServerDoH(server *DNSServerEntry, family AddressFamily, slot string) error {
	if server.DoHMode != DoHOn {
		return nil
	}
	if server.Address == "" {
		return fmt.Errorf("%s %s DNS is required when DoH is enabled", family, slot)
	}
	if server.DoHTemplate == "" {
		return fmt.Errorf("%s %s DoH template is required when DoH is enabled", family, slot)
	}
	if !ValidateDoHTemplate(server.DoHTemplate) {
		return fmt.Errorf("Invalid %s %s DoH template URL", family, slot)
	}
	return nil
}
