package config

import (
	"fmt"
	"sort"
	"strings"
)

// defaultProfileName is the base name given to newly created profiles.
const defaultProfileName = "New Profile"

// FindProfile returns a pointer into the profile list for the given id.
func (c *AppConfig) FindProfile(id string) (*DNSProfile, bool) {
	for i := range c.Profiles {
		if c.Profiles[i].ID == id {
			return &c.Profiles[i], true
		}
	}
	return nil, false
}

// SortedProfiles returns a copy of the profiles ordered by case-insensitive
// name. This is the canonical order for display and selection fallback; the
// stored order is never rearranged.
func (c *AppConfig) SortedProfiles() []DNSProfile {
	out := make([]DNSProfile, len(c.Profiles))
	copy(out, c.Profiles)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// IsNameDuplicate reports whether a profile other than excludeID already uses
// the name, ignoring case.
func (c *AppConfig) IsNameDuplicate(name string, excludeID string) bool {
	for i := range c.Profiles {
		if c.Profiles[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(c.Profiles[i].Name, name) {
			return true
		}
	}
	return false
}

// NextProfileName returns the first unused default name, counting "New
// Profile", "New Profile 2", "New Profile 3" and so on. Only exact matches
// count as taken here; the case-insensitive duplicate gate applies when a
// profile is renamed, not when it is minted.
func (c *AppConfig) NextProfileName() string {
	taken := make(map[string]bool, len(c.Profiles))
	for i := range c.Profiles {
		taken[c.Profiles[i].Name] = true
	}
	name := defaultProfileName
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s %d", defaultProfileName, n)
	}
	return name
}
