package core

import (
	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/pkg/securerandom"
)

// profileIDBytes sizes the random profile identifier (hex doubles it).
const profileIDBytes = 8

// SelectProfile loads the profile with the given id into the edit buffer and
// marks it selected. An unknown id leaves the session untouched.
func (e *Engine) SelectProfile(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectProfileLocked(id)
}

func (e *Engine) selectProfileLocked(id string) {
	profile, ok := e.state.config.FindProfile(id)
	if !ok {
		return
	}
	e.state.selectedProfileID = profile.ID
	e.state.currentProfileName = profile.Name
	e.state.currentSettings = profile.Settings
}

// CreateProfile appends a new empty profile with a generated unique name,
// selects it and returns its id.
func (e *Engine) CreateProfile() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.createProfileLocked()
}

func (e *Engine) createProfileLocked() string {
	profile := config.DNSProfile{
		ID:   securerandom.MustToken(profileIDBytes),
		Name: e.state.config.NextProfileName(),
	}
	e.state.config.Profiles = append(e.state.config.Profiles, profile)
	e.selectProfileLocked(profile.ID)
	e.logger.Info("created profile", "id", profile.ID, "name", profile.Name)
	return profile.ID
}

// UpdateCurrentProfile commits the edit buffer to the selected profile in
// memory. Nothing is written to disk.
func (e *Engine) UpdateCurrentProfile() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updateCurrentProfileLocked()
}

func (e *Engine) updateCurrentProfileLocked() {
	if e.state.selectedProfileID == "" {
		return
	}
	profile, ok := e.state.config.FindProfile(e.state.selectedProfileID)
	if !ok {
		return
	}
	profile.Name = e.state.currentProfileName
	profile.Settings = e.state.currentSettings
}

// DeleteCurrentProfile removes the selected profile. The alphabetically first
// remaining profile becomes selected; deleting the last profile clears the
// edit buffer and reverts the session to automatic mode.
func (e *Engine) DeleteCurrentProfile() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.state.selectedProfileID
	if id == "" {
		return
	}
	profiles := e.state.config.Profiles
	for i := range profiles {
		if profiles[i].ID != id {
			continue
		}
		e.state.config.Profiles = append(profiles[:i], profiles[i+1:]...)
		break
	}
	e.state.selectedProfileID = ""
	e.logger.Info("deleted profile", "id", id)

	if sorted := e.state.config.SortedProfiles(); len(sorted) > 0 {
		e.selectProfileLocked(sorted[0].ID)
		return
	}
	e.state.currentProfileName = ""
	e.state.currentSettings = config.DNSSettings{}
	e.state.mode = config.ModeAutomatic
}
