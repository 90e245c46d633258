package control

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/pkg/logging"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// psSetup precedes every script: UTF-8 output so error text survives
// re-encoding, and fail-fast so cmdlet errors become non-zero exits.
const psSetup = "[Console]::OutputEncoding = [System.Text.Encoding]::UTF8; $ErrorActionPreference = 'Stop'; "

// Windows address family identifiers as reported by Get-DnsClientServerAddress.
const (
	afInet  = 2
	afInet6 = 23
)

// PowerShellSurface drives the Windows DNS client through powershell.exe and
// netsh.exe. Server assignment goes through netsh because it is the only
// command that sets one address family without clearing the other; DoH
// registration, the registry flag, cache flushing and state queries use the
// DnsClient cmdlets.
type PowerShellSurface struct {
	runner Runner
	logger logging.Logger
}

// NewPowerShellSurface returns a surface using the real command runner.
func NewPowerShellSurface(logger logging.Logger) *PowerShellSurface {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &PowerShellSurface{
		runner: execRunner{},
		logger: logger.With("component", "control"),
	}
}

func (s *PowerShellSurface) runPowerShell(ctx context.Context, script string) (string, error) {
	out, err := s.runner.Run(ctx, "powershell.exe",
		"-NoProfile", "-NonInteractive", "-Command", psSetup+script)
	if err != nil {
		return "", &CommandError{Tool: "PowerShell", Detail: commandDetail(out, err)}
	}
	return out, nil
}

func (s *PowerShellSurface) runNetsh(ctx context.Context, args ...string) error {
	out, err := s.runner.Run(ctx, "netsh", args...)
	if err != nil {
		return &CommandError{Tool: "netsh", Detail: commandDetail(out, err)}
	}
	return nil
}

func commandDetail(output string, err error) string {
	if detail := normalizeErrorMessage(output); detail != "" {
		return detail
	}
	return err.Error()
}

func netshFamily(family config.AddressFamily) string {
	if family == config.IPv6 {
		return "ipv6"
	}
	return "ipv4"
}

// SetAutomatic reverts one family of an interface to DHCP-provided servers.
func (s *PowerShellSurface) SetAutomatic(ctx context.Context, ifaceIndex uint32, family config.AddressFamily) error {
	s.logger.Debug("Setting automatic DNS", "interface", ifaceIndex, "family", family)
	return s.runNetsh(ctx, "interface", netshFamily(family), "set", "dnsservers",
		fmt.Sprintf("name=%d", ifaceIndex), "source=dhcp")
}

// SetManual assigns a static server list to one family of an interface. The
// first address becomes the preferred server; the rest are appended in order.
func (s *PowerShellSurface) SetManual(ctx context.Context, ifaceIndex uint32, family config.AddressFamily, addresses []string) error {
	if len(addresses) == 0 {
		return s.SetAutomatic(ctx, ifaceIndex, family)
	}
	s.logger.Debug("Setting manual DNS", "interface", ifaceIndex, "family", family, "servers", addresses)
	if err := s.runNetsh(ctx, "interface", netshFamily(family), "set", "dnsservers",
		fmt.Sprintf("name=%d", ifaceIndex), "source=static",
		fmt.Sprintf("address=%s", addresses[0]), "validate=no"); err != nil {
		return err
	}
	for i, address := range addresses[1:] {
		if err := s.runNetsh(ctx, "interface", netshFamily(family), "add", "dnsservers",
			fmt.Sprintf("name=%d", ifaceIndex),
			fmt.Sprintf("address=%s", address),
			fmt.Sprintf("index=%d", i+2), "validate=no"); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDoH creates or updates the system-wide DoH template for a server
// address. Windows keeps these registrations globally, keyed by address.
func (s *PowerShellSurface) RegisterDoH(ctx context.Context, address, template string, allowFallback bool) error {
	fallback := "$false"
	if allowFallback {
		fallback = "$true"
	}
	addr := escapePowerShellString(address)
	tmpl := escapePowerShellString(template)
	script := fmt.Sprintf(`
$addr = '%s'
$existing = Get-DnsClientDohServerAddress -ServerAddress $addr -ErrorAction SilentlyContinue
if ($existing) {
    Set-DnsClientDohServerAddress -ServerAddress $addr -DohTemplate '%s' -AllowFallbackToUdp %s -AutoUpgrade $true
} else {
    Add-DnsClientDohServerAddress -ServerAddress $addr -DohTemplate '%s' -AllowFallbackToUdp %s -AutoUpgrade $true
}
`, addr, tmpl, fallback, tmpl, fallback)
	s.logger.Debug("Registering DoH template", "address", address)
	_, err := s.runPowerShell(ctx, script)
	return err
}

// EnableDoHRegistry sets the DohFlags value under the Dnscache service key so
// the DNS client prefers encrypted transport on this interface.
func (s *PowerShellSurface) EnableDoHRegistry(ctx context.Context, interfaceGUID string) error {
	guid := escapePowerShellString(normalizeGUID(interfaceGUID))
	script := fmt.Sprintf(`
$regPath = 'HKLM:\SYSTEM\CurrentControlSet\Services\Dnscache\InterfaceSpecificParameters\{%s}'
if (-not (Test-Path $regPath)) {
    New-Item -Path $regPath -Force | Out-Null
}
$propName = 'DohFlags'
$existingProp = Get-ItemProperty -Path $regPath -Name $propName -ErrorAction SilentlyContinue
if ($existingProp) {
    Set-ItemProperty -Path $regPath -Name $propName -Value 1 -Force
} else {
    New-ItemProperty -Path $regPath -Name $propName -Value 1 -PropertyType DWord -Force | Out-Null
}
`, guid)
	s.logger.Debug("Enabling DoH registry flag", "guid", interfaceGUID)
	if _, err := s.runPowerShell(ctx, script); err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return &RegistryError{Detail: cmdErr.Detail}
		}
		return &RegistryError{Detail: err.Error()}
	}
	return nil
}

// ClearCache flushes the local resolver cache.
func (s *PowerShellSurface) ClearCache(ctx context.Context) error {
	_, err := s.runPowerShell(ctx, "Clear-DnsClientCache")
	return err
}

// dnsClientServerAddress mirrors the JSON shape ConvertTo-Json produces for
// Get-DnsClientServerAddress records.
type dnsClientServerAddress struct {
	AddressFamily   int      `json:"AddressFamily"`
	ServerAddresses []string `json:"ServerAddresses"`
}

// GetCurrent queries both families' active resolvers on an interface.
func (s *PowerShellSurface) GetCurrent(ctx context.Context, ifaceIndex uint32) (ServerState, error) {
	script := fmt.Sprintf("Get-DnsClientServerAddress -InterfaceIndex %d | ConvertTo-Json -Compress", ifaceIndex)
	out, err := s.runPowerShell(ctx, script)
	if err != nil {
		return ServerState{}, err
	}
	return parseServerAddresses(out)
}

// parseServerAddresses handles the ConvertTo-Json quirk of emitting a bare
// object instead of an array when there is a single record.
func parseServerAddresses(output string) (ServerState, error) {
	var state ServerState
	trimmed := strings.TrimSpace(output)
	if trimmed == "" || trimmed == "null" {
		return state, nil
	}
	var records []dnsClientServerAddress
	if strings.HasPrefix(trimmed, "[") {
		if err := json.UnmarshalFromString(trimmed, &records); err != nil {
			return state, fmt.Errorf("invalid output format: %w", err)
		}
	} else {
		var single dnsClientServerAddress
		if err := json.UnmarshalFromString(trimmed, &single); err != nil {
			return state, fmt.Errorf("invalid output format: %w", err)
		}
		records = append(records, single)
	}
	for _, record := range records {
		switch record.AddressFamily {
		case afInet:
			state.IPv4 = record.ServerAddresses
		case afInet6:
			state.IPv6 = record.ServerAddresses
		}
	}
	return state, nil
}

// escapePowerShellString escapes a value for a single-quoted PowerShell
// literal. Newlines are stripped outright since no legitimate address or
// template contains them.
func escapePowerShellString(s string) string {
	s = strings.ReplaceAll(s, "`", "``")
	s = strings.ReplaceAll(s, "'", "''")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// normalizeGUID strips surrounding braces; callers add their own bracing.
func normalizeGUID(guid string) string {
	return strings.Trim(guid, "{}")
}

// normalizeErrorMessage collapses multi-line command output into one line.
func normalizeErrorMessage(msg string) string {
	var parts []string
	for _, line := range strings.Split(msg, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
