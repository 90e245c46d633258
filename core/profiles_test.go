package core_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dnswitch/dnswitch/core/config"
)

func TestCreateProfileNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		id := engine.CreateProfile()
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "profile ids must be unique")
		seen[id] = true
	}

	profiles := engine.Profiles()
	require.Len(t, profiles, 3)
	assert.Equal(t, "New Profile", profiles[0].Name)
	assert.Equal(t, "New Profile 2", profiles[1].Name)
	assert.Equal(t, "New Profile 3", profiles[2].Name)

	assert.Equal(t, "New Profile 3", engine.ProfileName(),
		"the most recently created profile is selected")
}

func TestCreateProfileReusesFreedName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.CreateProfile()
	second := engine.CreateProfile()

	engine.SelectProfile(second)
	engine.DeleteCurrentProfile()

	engine.CreateProfile()
	profiles := engine.Profiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, "New Profile 2", profiles[1].Name,
		"a freed name is reused only when no profile carries it")
}

func TestSelectProfileUnknownIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	id := engine.CreateProfile()
	engine.SelectProfile("does-not-exist")

	selectedID, ok := engine.SelectedProfileID()
	require.True(t, ok, "the existing selection must survive an unknown id")
	assert.Equal(t, id, selectedID)
	assert.Equal(t, "New Profile", engine.ProfileName())
}

func TestUpdateCurrentProfileCommitsBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.CreateProfile()
	edited := manualIPv4Settings("1.1.1.1", "")
	engine.SetCurrentSettings(edited)
	engine.SetProfileName("Cloudflare")

	require.False(t, engine.Profiles()[0].Settings.IPv4.Enabled,
		"editing the buffer must not touch the stored profile")

	engine.UpdateCurrentProfile()

	stored := engine.Profiles()[0]
	assert.Equal(t, "Cloudflare", stored.Name)
	assert.Equal(t, edited, stored.Settings)
}

func TestUpdateCurrentProfileWithoutSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.SetProfileName("orphan")
	engine.UpdateCurrentProfile()
	assert.Empty(t, engine.Profiles(), "committing with no selection is a no-op")
}

func TestDeleteSelectsCaseInsensitiveFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	cfg := &config.AppConfig{Profiles: []config.DNSProfile{
		{ID: "id-banana", Name: "banana"},
		{ID: "id-apple", Name: "Apple"},
		{ID: "id-cherry", Name: "cherry"},
	}}
	initializeEngine(t, engine, m, cfg)

	engine.SelectProfile("id-cherry")
	engine.DeleteCurrentProfile()

	selectedID, ok := engine.SelectedProfileID()
	require.True(t, ok, "a remaining profile must become selected")
	assert.Equal(t, "id-apple", selectedID,
		"the case-insensitive alphabetically first profile wins the fallback")
	assert.Equal(t, "Apple", engine.ProfileName())
	require.Len(t, engine.Profiles(), 2)
}

func TestDeleteLastProfileResetsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.ChangeMode(config.ModeManual)
	require.Len(t, engine.Profiles(), 1, "entering manual mode auto-creates a profile")
	engine.SetCurrentSettings(manualIPv4Settings("8.8.8.8", ""))

	engine.DeleteCurrentProfile()

	assert.Equal(t, config.ModeAutomatic, engine.Mode(),
		"deleting the last profile reverts to automatic mode")
	_, ok := engine.SelectedProfileID()
	assert.False(t, ok, "no profile remains selected")
	assert.Empty(t, engine.ProfileName())
	assert.Equal(t, config.DNSSettings{}, engine.CurrentSettings(),
		"the edit buffer is cleared")
	assert.Empty(t, engine.Profiles())
}

func TestDeleteWithoutSelectionIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.CreateProfile()
	engine.SelectProfile("does-not-exist")
	require.Len(t, engine.Profiles(), 1)

	selected, _ := engine.SelectedProfileID()
	engine.SelectProfile(selected)
	engine.DeleteCurrentProfile()
	engine.DeleteCurrentProfile()
	assert.Empty(t, engine.Profiles(), "a second delete with nothing selected changes nothing")
}

func TestChangeModeSameModeIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.ChangeMode(config.ModeAutomatic)
	assert.Empty(t, engine.Profiles(),
		"re-selecting automatic mode must not create a profile")

	engine.ChangeMode(config.ModeManual)
	edited := manualIPv4Settings("9.9.9.9", "")
	engine.SetCurrentSettings(edited)

	engine.ChangeMode(config.ModeManual)
	assert.Equal(t, edited, engine.CurrentSettings(),
		"re-selecting manual mode must not reload the edit buffer")
	assert.False(t, engine.Profiles()[0].Settings.IPv4.Enabled,
		"re-selecting manual mode must not commit the edit buffer")
}

func TestChangeModeEnteringManualCreatesProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.ChangeMode(config.ModeManual)

	require.Len(t, engine.Profiles(), 1)
	assert.Equal(t, "New Profile", engine.ProfileName())
	_, ok := engine.SelectedProfileID()
	assert.True(t, ok)
}

func TestChangeModeEnteringManualSelectsSortedFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	cfg := &config.AppConfig{Profiles: []config.DNSProfile{
		{ID: "id-office", Name: "office", Settings: manualIPv4Settings("10.0.0.53", "")},
		{ID: "id-home", Name: "Home", Settings: manualIPv4Settings("1.1.1.1", "")},
	}}
	initializeEngine(t, engine, m, cfg)

	engine.ChangeMode(config.ModeManual)

	selectedID, ok := engine.SelectedProfileID()
	require.True(t, ok)
	assert.Equal(t, "id-home", selectedID)
	assert.Equal(t, "Home", engine.ProfileName())
	assert.Equal(t, "1.1.1.1", engine.CurrentSettings().IPv4.Primary.Address,
		"selection loads the profile into the edit buffer")
}

func TestChangeModeLeavingManualCommitsBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	engine.ChangeMode(config.ModeManual)
	engine.SetProfileName("Renamed")
	engine.SetCurrentSettings(manualIPv4Settings("8.8.8.8", "8.8.4.4"))

	engine.ChangeMode(config.ModeAutomatic)

	stored := engine.Profiles()[0]
	assert.Equal(t, "Renamed", stored.Name,
		"leaving manual mode commits pending edits in memory")
	assert.Equal(t, "8.8.8.8", stored.Settings.IPv4.Primary.Address)
	assert.Equal(t, config.ModeAutomatic, engine.Mode())
}

func TestProfilesSortedForDisplay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	cfg := &config.AppConfig{Profiles: []config.DNSProfile{
		{ID: "1", Name: "zeta"},
		{ID: "2", Name: "Alpha"},
		{ID: "3", Name: "beta"},
	}}
	initializeEngine(t, engine, m, cfg)

	var names []string
	for _, profile := range engine.Profiles() {
		names = append(names, profile.Name)
	}
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, names)
}

func TestCreateProfileIDsAreRandom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	ids := map[string]bool{}
	for i := 0; i < 32; i++ {
		id := engine.CreateProfile()
		require.Len(t, id, 16, "profile ids are 8 random bytes hex encoded")
		ids[id] = true
	}
	assert.Len(t, ids, 32, "ids must not repeat")

	for id := range ids {
		for _, r := range id {
			assert.Contains(t, "0123456789abcdef", fmt.Sprintf("%c", r))
		}
	}
}
