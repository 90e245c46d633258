package interfaces

import (
	"context"

	"github.com/dnswitch/dnswitch/core"
	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/core/control"
	"github.com/dnswitch/dnswitch/core/netenum"
)

// Engine defines the public interface for the DNS configuration engine.
type Engine interface {
	// Initialize loads the persisted configuration and discovers the
	// network interfaces.
	Initialize(ctx context.Context) error
	// Apply pushes the edit buffer to the selected interface and persists
	// the configuration.
	Apply(ctx context.Context) core.ApplyResult
	// SaveOnly persists the configuration without touching OS state.
	SaveOnly() error
	// RefreshDNSState re-reads the selected interface's DNS servers.
	RefreshDNSState(ctx context.Context) error
	// SelectInterface switches the session to the interface at index.
	SelectInterface(ctx context.Context, index int) error
	// ChangeMode switches between automatic and manual DNS.
	ChangeMode(mode config.DNSMode)

	// SelectProfile loads the profile with the given id into the edit
	// buffer; unknown ids are ignored.
	SelectProfile(id string)
	// CreateProfile appends a new profile, selects it and returns its id.
	CreateProfile() string
	// UpdateCurrentProfile commits the edit buffer to the selected profile.
	UpdateCurrentProfile()
	// DeleteCurrentProfile removes the selected profile.
	DeleteCurrentProfile()

	Interfaces() []netenum.NetworkInterface
	SelectedInterface() (netenum.NetworkInterface, bool)
	Mode() config.DNSMode
	CurrentSettings() config.DNSSettings
	SetCurrentSettings(settings config.DNSSettings)
	ProfileName() string
	SetProfileName(name string)
	SelectedProfileID() (string, bool)
	Profiles() []config.DNSProfile
	CurrentDNSState() control.ServerState
	Message() (core.Message, bool)
	IsBusy() bool
}
