package config

import "testing"

func TestNextProfileName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"no_profiles", nil, "New Profile"},
		{"base_taken", []string{"New Profile"}, "New Profile 2"},
		{"base_and_two_taken", []string{"New Profile", "New Profile 2"}, "New Profile 3"},
		{"gap_is_filled", []string{"New Profile", "New Profile 3"}, "New Profile 2"},
		{"unrelated_names", []string{"Home", "Work"}, "New Profile"},
		{"match_is_case_sensitive", []string{"new profile"}, "New Profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{}
			for i, name := range tt.existing {
				cfg.Profiles = append(cfg.Profiles, DNSProfile{ID: string(rune('a' + i)), Name: name})
			}
			if got := cfg.NextProfileName(); got != tt.want {
				t.Errorf("NextProfileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortedProfiles(t *testing.T) {
	cfg := AppConfig{Profiles: []DNSProfile{
		{ID: "1", Name: "zeta"},
		{ID: "2", Name: "Apple"},
		{ID: "3", Name: "banana"},
	}}

	sorted := cfg.SortedProfiles()

	want := []string{"Apple", "banana", "zeta"}
	for i, name := range want {
		if sorted[i].Name != name {
			t.Errorf("SortedProfiles()[%d] = %q, want %q", i, sorted[i].Name, name)
		}
	}

	// The stored order stays untouched
	if cfg.Profiles[0].Name != "zeta" {
		t.Errorf("SortedProfiles() rearranged the stored list")
	}
}

func TestIsNameDuplicate(t *testing.T) {
	cfg := AppConfig{Profiles: []DNSProfile{
		{ID: "1", Name: "Home"},
		{ID: "2", Name: "Work"},
	}}

	tests := []struct {
		name      string
		candidate string
		excludeID string
		want      bool
	}{
		{"exact_match", "Home", "", true},
		{"case_insensitive_match", "hOmE", "", true},
		{"no_match", "Travel", "", false},
		{"own_name_excluded", "Home", "1", false},
		{"other_profile_still_counts", "Home", "2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.IsNameDuplicate(tt.candidate, tt.excludeID); got != tt.want {
				t.Errorf("IsNameDuplicate(%q, %q) = %v, want %v", tt.candidate, tt.excludeID, got, tt.want)
			}
		})
	}
}

func TestFindProfile(t *testing.T) {
	cfg := AppConfig{Profiles: []DNSProfile{
		{ID: "1", Name: "Home"},
		{ID: "2", Name: "Work"},
	}}

	profile, ok := cfg.FindProfile("2")
	if !ok || profile.Name != "Work" {
		t.Fatalf("FindProfile(2) = %+v, %v", profile, ok)
	}

	// The pointer aliases the stored profile
	profile.Name = "Office"
	if cfg.Profiles[1].Name != "Office" {
		t.Errorf("FindProfile() did not return a pointer into the config")
	}

	if _, ok := cfg.FindProfile("missing"); ok {
		t.Errorf("FindProfile(missing) reported a hit")
	}
}
