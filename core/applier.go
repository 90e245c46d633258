package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/core/netenum"
)

// Sentinel error text doubles as the user-facing status message, so it is
// capitalized like UI copy.
var (
	ErrNoInterfaceSelected  = errors.New("No interface selected")
	ErrDuplicateProfileName = errors.New("A profile with this name already exists")
	ErrApplyInProgress      = errors.New("another apply is already in progress")
)

// DoHError reports the degraded outcome: the base DNS servers were applied but
// every attempted DoH registration failed.
type DoHError struct {
	Detail string
}

func (e *DoHError) Error() string {
	return "DNS settings applied, but DoH configuration failed: " + e.Detail
}

// PersistError reports that the OS changes landed but the configuration could
// not be written back to disk.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("Settings applied but failed to save config: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// ApplyStatus classifies the outcome of an Apply run.
type ApplyStatus int

const (
	// ApplyOK means every step succeeded.
	ApplyOK ApplyStatus = iota
	// ApplyWarning means the DNS servers were applied and persisted but one
	// or more optional steps failed.
	ApplyWarning
	// ApplyDegraded means the DNS servers were applied but every attempted
	// DoH registration failed; the config was not persisted.
	ApplyDegraded
	// ApplyFailed means validation, a mandatory step or persistence failed.
	ApplyFailed
)

func (s ApplyStatus) String() string {
	switch s {
	case ApplyOK:
		return "ok"
	case ApplyWarning:
		return "warning"
	case ApplyDegraded:
		return "degraded"
	default:
		return "failed"
	}
}

// ApplyResult carries the outcome of an Apply run. Warnings holds the
// non-fatal step failures; Err is set for the degraded and failed statuses.
type ApplyResult struct {
	Status   ApplyStatus
	Warnings []string
	Err      error
}

// applyOutcome is the result of the OS-facing stage, before persistence and
// message composition. applied reports whether any OS change landed; it gates
// the final DNS state refresh.
type applyOutcome struct {
	status   ApplyStatus
	warnings []string
	err      error
	applied  bool
}

// Apply pushes the edit buffer to the selected interface, then persists the
// configuration. Mandatory per-family server changes abort on first failure;
// DoH registration, the registry flag and the cache flush degrade to warnings
// per the rules described on ApplyStatus. A second Apply while one is in
// flight is rejected without touching session state.
func (e *Engine) Apply(ctx context.Context) ApplyResult {
	e.mu.Lock()
	if e.state.busy {
		e.mu.Unlock()
		return ApplyResult{Status: ApplyFailed, Err: ErrApplyInProgress}
	}
	e.state.clearMessage()
	if err := e.validateForSaveLocked(); err != nil {
		e.state.setMessage(err.Error(), LevelError)
		e.mu.Unlock()
		return ApplyResult{Status: ApplyFailed, Err: err}
	}
	e.state.busy = true
	iface, ok := e.state.selected()
	if !ok {
		e.state.setMessage(ErrNoInterfaceSelected.Error(), LevelError)
		e.state.busy = false
		e.mu.Unlock()
		return ApplyResult{Status: ApplyFailed, Err: ErrNoInterfaceSelected}
	}
	mode := e.state.mode
	settings := e.state.currentSettings
	e.mu.Unlock()

	outcome := e.runApply(ctx, iface, mode, settings)

	if outcome.status == ApplyOK || outcome.status == ApplyWarning {
		e.mu.Lock()
		if mode == config.ModeManual {
			e.updateCurrentProfileLocked()
		}
		snapshot := e.state.config.Clone()
		e.mu.Unlock()
		if err := e.store.Save(snapshot); err != nil {
			e.logger.Error("failed to persist config after apply", "error", err)
			outcome.status = ApplyFailed
			outcome.err = &PersistError{Err: err}
		}
	}

	e.mu.Lock()
	switch outcome.status {
	case ApplyOK:
		e.state.setMessage("DNS settings applied successfully", LevelSuccess)
	case ApplyWarning:
		e.state.setMessage(strings.Join(outcome.warnings, "; "), LevelWarning)
	default:
		e.state.setMessage(outcome.err.Error(), LevelError)
	}
	e.state.busy = false
	e.mu.Unlock()

	// Refresh the observed servers whenever OS state may have changed, even
	// on the degraded and persist-failure paths. A refresh failure must not
	// clobber the apply outcome message.
	if outcome.applied {
		if observed, err := e.surface.GetCurrent(ctx, iface.InterfaceIndex); err != nil {
			e.logger.Warn("failed to refresh DNS state after apply", "interface", iface.Name, "error", err)
		} else {
			e.mu.Lock()
			e.state.currentDNS = observed
			e.mu.Unlock()
		}
	}

	return ApplyResult{Status: outcome.status, Warnings: outcome.warnings, Err: outcome.err}
}

// runApply performs the OS-facing pipeline: per-family server changes, DoH
// registrations, the DoH registry flag and the cache flush. The engine lock
// is not held here.
func (e *Engine) runApply(ctx context.Context, iface netenum.NetworkInterface, mode config.DNSMode, settings config.DNSSettings) applyOutcome {
	var out applyOutcome

	for _, family := range []config.AddressFamily{config.IPv4, config.IPv6} {
		if !iface.Has(family) {
			continue
		}
		entry := settings.Entry(family)
		var err error
		if mode == config.ModeManual && entry.Enabled {
			err = e.surface.SetManual(ctx, iface.InterfaceIndex, family, entry.Addresses())
		} else {
			err = e.surface.SetAutomatic(ctx, iface.InterfaceIndex, family)
		}
		if err != nil {
			e.logger.Error("failed to set DNS servers",
				"interface", iface.Name,
				"family", family.String(),
				"error", err)
			out.status = ApplyFailed
			out.err = fmt.Errorf("Failed to apply DNS settings: %w", err)
			return out
		}
		out.applied = true
	}

	var warnings []string

	if mode == config.ModeManual {
		var failures []string
		attempted, succeeded := 0, 0
		for _, attempt := range dohAttempts(iface, settings) {
			attempted++
			err := e.surface.RegisterDoH(ctx, attempt.server.Address, attempt.server.DoHTemplate, attempt.server.AllowFallback)
			if err != nil {
				e.logger.Warn("DoH registration failed",
					"server", attempt.server.Address,
					"slot", attempt.label,
					"error", err)
				failures = append(failures, attempt.label+": "+normalizeDetail(err))
				continue
			}
			succeeded++
		}

		if attempted > 0 && succeeded == 0 {
			out.status = ApplyDegraded
			out.err = &DoHError{Detail: strings.Join(failures, "; ")}
			// The base servers already landed, so the stale cache is
			// still flushed; a failure here is only logged because the
			// degraded error already owns the message.
			if err := e.surface.ClearCache(ctx); err != nil {
				e.logger.Warn("failed to clear DNS cache", "error", err)
			}
			return out
		}
		if len(failures) > 0 {
			warnings = append(warnings, "Some DoH configurations failed: "+strings.Join(failures, "; "))
		}
		if succeeded > 0 {
			if err := e.surface.EnableDoHRegistry(ctx, iface.InterfaceGUID); err != nil {
				e.logger.Warn("failed to enable DoH registry flag", "interface", iface.Name, "error", err)
				warnings = append(warnings, normalizeDetail(err))
			}
		}
	}

	if err := e.surface.ClearCache(ctx); err != nil {
		e.logger.Warn("failed to clear DNS cache", "error", err)
		warnings = append(warnings, "Cache clear failed: "+normalizeDetail(err))
	}

	out.warnings = warnings
	if len(warnings) > 0 {
		out.status = ApplyWarning
	} else {
		out.status = ApplyOK
	}
	return out
}

// SaveOnly validates and persists the configuration without touching OS
// state. In manual mode the edit buffer is committed to the selected profile
// first.
func (e *Engine) SaveOnly() error {
	e.mu.Lock()
	if err := e.validateForSaveLocked(); err != nil {
		e.state.setMessage(err.Error(), LevelError)
		e.mu.Unlock()
		return err
	}
	if e.state.mode == config.ModeManual {
		e.updateCurrentProfileLocked()
	}
	snapshot := e.state.config.Clone()
	e.mu.Unlock()

	if err := e.store.Save(snapshot); err != nil {
		e.logger.Error("failed to save config", "error", err)
		e.mu.Lock()
		e.state.setMessage(fmt.Sprintf("Failed to save config: %v", err), LevelError)
		e.mu.Unlock()
		return err
	}

	e.mu.Lock()
	e.state.setMessage("Settings saved", LevelSuccess)
	e.mu.Unlock()
	return nil
}

// validateForSaveLocked checks the edit buffer against the active mode and,
// for manual-mode saves, rejects a profile name already taken by another
// profile.
func (e *Engine) validateForSaveLocked() error {
	if err := config.ValidateSettings(&e.state.currentSettings, e.state.mode); err != nil {
		return err
	}
	if e.state.mode == config.ModeManual && e.state.selectedProfileID != "" &&
		e.state.config.IsNameDuplicate(e.state.currentProfileName, e.state.selectedProfileID) {
		return ErrDuplicateProfileName
	}
	return nil
}

// dohAttempt pairs a server entry with the slot label used in warnings.
type dohAttempt struct {
	label  string
	server config.DNSServerEntry
}

// dohAttempts lists the server entries eligible for DoH registration: slots
// with DoH on, a non-empty address and a non-empty template, in families the
// interface supports and the settings enable.
func dohAttempts(iface netenum.NetworkInterface, settings config.DNSSettings) []dohAttempt {
	var out []dohAttempt
	add := func(label string, server config.DNSServerEntry) {
		if server.DoHMode != config.DoHOn || server.Address == "" || server.DoHTemplate == "" {
			return
		}
		out = append(out, dohAttempt{label: label, server: server})
	}
	if iface.HasIPv4 && settings.IPv4.Enabled {
		add("IPv4 Primary", settings.IPv4.Primary)
		add("IPv4 Secondary", settings.IPv4.Secondary)
	}
	if iface.HasIPv6 && settings.IPv6.Enabled {
		add("IPv6 Primary", settings.IPv6.Primary)
		add("IPv6 Secondary", settings.IPv6.Secondary)
	}
	return out
}

// normalizeDetail flattens an error's text to a single line for inclusion in
// a joined warning list.
func normalizeDetail(err error) string {
	lines := strings.Split(err.Error(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}
