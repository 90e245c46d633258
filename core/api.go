//go:generate mockgen -package=mocks -destination=../mocks/mock_store.go github.com/dnswitch/dnswitch/core ConfigStore

package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/core/control"
	"github.com/dnswitch/dnswitch/core/netenum"
	"github.com/dnswitch/dnswitch/pkg/logging"
)

// ConfigStore persists the application configuration between sessions.
type ConfigStore interface {
	Load() (*config.AppConfig, error)
	Save(cfg *config.AppConfig) error
}

// Engine owns the DNS configuration session: the discovered interfaces, the
// profile store, the edit buffer and the status message. All exported methods
// are safe for concurrent use; a single mutex serializes every state change.
type Engine struct {
	mu      sync.Mutex
	state   *applicationState
	store   ConfigStore
	enum    netenum.Enumerator
	surface control.Surface
	logger  logging.Logger
}

// NewEngine validates the collaborators and returns a ready Engine. The
// returned engine holds no OS state until Initialize is called.
func NewEngine(store ConfigStore, enum netenum.Enumerator, surface control.Surface, logger logging.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("engine must be initialized with a config store")
	}
	if enum == nil {
		return nil, fmt.Errorf("engine must be initialized with an interface enumerator")
	}
	if surface == nil {
		return nil, fmt.Errorf("engine must be initialized with a control surface")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{
		state:   newApplicationState(),
		store:   store,
		enum:    enum,
		surface: surface,
		logger:  logger.With("component", "engine"),
	}, nil
}

// Initialize loads the persisted configuration and enumerates the network
// interfaces. A config load failure is reported through the status message
// but does not fail initialization; the session starts with defaults. An
// empty interface list is fatal because nothing can be applied without one.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	e.state.clearMessage()

	cfg, err := e.store.Load()
	if err != nil {
		e.logger.Error("failed to load config", "error", err)
		e.state.setMessage(fmt.Sprintf("Failed to load config: %v", err), LevelError)
	} else {
		e.state.config = cfg
	}

	ifaces, err := e.enum.List(ctx)
	if err != nil {
		e.state.setMessage(fmt.Sprintf("Failed to get network interfaces: %v", err), LevelError)
		e.mu.Unlock()
		return fmt.Errorf("failed to enumerate network interfaces: %w", err)
	}
	if len(ifaces) == 0 {
		e.state.setMessage("No network interfaces found", LevelError)
		e.mu.Unlock()
		return errors.New("no network interfaces found")
	}
	e.state.interfaces = ifaces
	e.state.selectedInterface = 0
	e.logger.Info("engine initialized",
		"interfaces", len(ifaces),
		"profiles", len(e.state.config.Profiles))
	e.mu.Unlock()

	// Best effort: the session is usable even when the current servers
	// cannot be read.
	_ = e.RefreshDNSState(ctx)
	return nil
}

// RefreshDNSState re-reads the DNS servers of the selected interface. Without
// a selection it is a no-op.
func (e *Engine) RefreshDNSState(ctx context.Context) error {
	e.mu.Lock()
	iface, ok := e.state.selected()
	e.mu.Unlock()
	if !ok {
		return nil
	}

	observed, err := e.surface.GetCurrent(ctx, iface.InterfaceIndex)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.logger.Warn("failed to read current DNS servers", "interface", iface.Name, "error", err)
		e.state.setMessage(fmt.Sprintf("Failed to get current DNS: %v", err), LevelWarning)
		return err
	}
	e.state.currentDNS = observed
	return nil
}

// SelectInterface switches the session to the interface at index and refreshes
// its observed DNS servers.
func (e *Engine) SelectInterface(ctx context.Context, index int) error {
	e.mu.Lock()
	if index < 0 || index >= len(e.state.interfaces) {
		e.mu.Unlock()
		return fmt.Errorf("interface index %d out of range", index)
	}
	e.state.selectedInterface = index
	e.state.clearMessage()
	e.mu.Unlock()
	return e.RefreshDNSState(ctx)
}

// ChangeMode switches between automatic and manual DNS. Re-selecting the
// current mode changes nothing. Leaving manual mode commits the edit buffer to
// the selected profile in memory so the pending edits survive the round trip.
// Entering manual mode guarantees a usable selection: it creates a first
// profile when none exist, or selects the alphabetically first one when none
// is selected.
func (e *Engine) ChangeMode(mode config.DNSMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if mode == e.state.mode {
		return
	}
	if e.state.mode == config.ModeManual {
		e.updateCurrentProfileLocked()
	}
	e.state.mode = mode
	e.state.clearMessage()
	if mode != config.ModeManual {
		return
	}
	if len(e.state.config.Profiles) == 0 {
		e.createProfileLocked()
		return
	}
	if e.state.selectedProfileID == "" {
		sorted := e.state.config.SortedProfiles()
		e.selectProfileLocked(sorted[0].ID)
	}
}

// Interfaces returns a copy of the discovered network interfaces.
func (e *Engine) Interfaces() []netenum.NetworkInterface {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]netenum.NetworkInterface, len(e.state.interfaces))
	copy(out, e.state.interfaces)
	return out
}

// SelectedInterface returns the selected interface, if any.
func (e *Engine) SelectedInterface() (netenum.NetworkInterface, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.selected()
}

// Mode returns the active DNS mode.
func (e *Engine) Mode() config.DNSMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.mode
}

// CurrentSettings returns the edit buffer contents.
func (e *Engine) CurrentSettings() config.DNSSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.currentSettings
}

// SetCurrentSettings replaces the edit buffer. The stored profiles are not
// touched until an operation commits the buffer.
func (e *Engine) SetCurrentSettings(settings config.DNSSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.currentSettings = settings
}

// ProfileName returns the edit buffer's profile name.
func (e *Engine) ProfileName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.currentProfileName
}

// SetProfileName renames the profile in the edit buffer only.
func (e *Engine) SetProfileName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.currentProfileName = name
}

// SelectedProfileID returns the id of the selected profile, if any.
func (e *Engine) SelectedProfileID() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.selectedProfileID == "" {
		return "", false
	}
	return e.state.selectedProfileID, true
}

// Profiles returns the stored profiles sorted by case-insensitive name.
func (e *Engine) Profiles() []config.DNSProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.config.SortedProfiles()
}

// CurrentDNSState returns the last observed DNS servers of the selected
// interface.
func (e *Engine) CurrentDNSState() control.ServerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := control.ServerState{
		IPv4: make([]string, len(e.state.currentDNS.IPv4)),
		IPv6: make([]string, len(e.state.currentDNS.IPv6)),
	}
	copy(out.IPv4, e.state.currentDNS.IPv4)
	copy(out.IPv6, e.state.currentDNS.IPv6)
	return out
}

// Message returns the status message of the most recent operation, if any.
func (e *Engine) Message() (Message, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.message == nil {
		return Message{}, false
	}
	return *e.state.message, true
}

// IsBusy reports whether an apply is in flight.
func (e *Engine) IsBusy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.busy
}
