package config

import "testing"

func TestValidateIPv4(t *testing.T) {
	tests := []struct {
		addr  string
		valid bool
	}{
		{"", true},
		{"   ", true},
		{"8.8.8.8", true},
		{"192.168.1.1", true},
		{"255.255.255.255", true},
		{"0.0.0.0", true},
		{"256.1.1.1", false},
		{"1.1.1", false},
		{"1.1.1.1.1", false},
		{"abc.def.ghi.jkl", false},
		{"2001:4860:4860::8888", false},
		{"8.8.8.8 ", false},
	}

	for _, tt := range tests {
		if got := ValidateIPv4(tt.addr); got != tt.valid {
			t.Errorf("ValidateIPv4(%q) = %v, want %v", tt.addr, got, tt.valid)
		}
	}
}

func TestValidateIPv6(t *testing.T) {
	tests := []struct {
		addr  string
		valid bool
	}{
		{"", true},
		{"2001:4860:4860::8888", true},
		{"::1", true},
		{"fe80::1", true},
		{"2606:4700:4700::1111", true},
		{"8.8.8.8", false},
		{"not-an-address", false},
		{"2001:4860:4860:::8888", false},
	}

	for _, tt := range tests {
		if got := ValidateIPv6(tt.addr); got != tt.valid {
			t.Errorf("ValidateIPv6(%q) = %v, want %v", tt.addr, got, tt.valid)
		}
	}
}

func TestValidateDoHTemplate(t *testing.T) {
	tests := []struct {
		template string
		valid    bool
	}{
		{"", true},
		{"https://cloudflare-dns.com/dns-query{?dns}", true},
		{"https://dns.google/dns-query{?dns}", true},
		{"http://cloudflare-dns.com/dns-query{?dns}", false},
		{"https://cloudflare-dns.com/dns-query", false},
		{"cloudflare-dns.com/dns-query{?dns}", false},
	}

	for _, tt := range tests {
		if got := ValidateDoHTemplate(tt.template); got != tt.valid {
			t.Errorf("ValidateDoHTemplate(%q) = %v, want %v", tt.template, got, tt.valid)
		}
	}
}

func TestValidateSettings(t *testing.T) {
	validTemplate := "https://cloudflare-dns.com/dns-query{?dns}"

	tests := []struct {
		name        string
		settings    DNSSettings
		mode        DNSMode
		expectError bool
		errorMsg    string
	}{
		{
			name:     "automatic_mode_always_valid",
			settings: DNSSettings{IPv4: DNSEntry{Enabled: true, Primary: DNSServerEntry{Address: "garbage"}}},
			mode:     ModeAutomatic,
		},
		{
			name:     "manual_all_disabled",
			settings: DNSSettings{},
			mode:     ModeManual,
		},
		{
			name: "manual_valid_both_families",
			settings: DNSSettings{
				IPv4: DNSEntry{Enabled: true, Primary: DNSServerEntry{Address: "1.1.1.1"}, Secondary: DNSServerEntry{Address: "1.0.0.1"}},
				IPv6: DNSEntry{Enabled: true, Primary: DNSServerEntry{Address: "2606:4700:4700::1111"}},
			},
			mode: ModeManual,
		},
		{
			name:        "ipv4_primary_missing",
			settings:    DNSSettings{IPv4: DNSEntry{Enabled: true}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "IPv4 primary DNS is required when enabled",
		},
		{
			name:        "ipv4_primary_invalid",
			settings:    DNSSettings{IPv4: DNSEntry{Enabled: true, Primary: DNSServerEntry{Address: "256.1.1.1"}}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "Invalid IPv4 primary DNS address",
		},
		{
			name: "ipv4_secondary_invalid",
			settings: DNSSettings{IPv4: DNSEntry{
				Enabled:   true,
				Primary:   DNSServerEntry{Address: "8.8.8.8"},
				Secondary: DNSServerEntry{Address: "2001:4860:4860::8888"},
			}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "Invalid IPv4 secondary DNS address",
		},
		{
			name:        "ipv6_primary_missing",
			settings:    DNSSettings{IPv6: DNSEntry{Enabled: true}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "IPv6 primary DNS is required when enabled",
		},
		{
			name:        "ipv6_primary_invalid",
			settings:    DNSSettings{IPv6: DNSEntry{Enabled: true, Primary: DNSServerEntry{Address: "8.8.8.8"}}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "Invalid IPv6 primary DNS address",
		},
		{
			name: "doh_template_missing",
			settings: DNSSettings{IPv4: DNSEntry{
				Enabled: true,
				Primary: DNSServerEntry{Address: "1.1.1.1", DoHMode: DoHOn},
			}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "IPv4 primary DoH template is required when DoH is enabled",
		},
		{
			name: "doh_template_invalid",
			settings: DNSSettings{IPv4: DNSEntry{
				Enabled: true,
				Primary: DNSServerEntry{Address: "1.1.1.1", DoHMode: DoHOn, DoHTemplate: "http://cloudflare-dns.com/dns-query{?dns}"},
			}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "Invalid IPv4 primary DoH template URL",
		},
		{
			name: "doh_secondary_without_address",
			settings: DNSSettings{IPv4: DNSEntry{
				Enabled:   true,
				Primary:   DNSServerEntry{Address: "1.1.1.1"},
				Secondary: DNSServerEntry{DoHMode: DoHOn, DoHTemplate: validTemplate},
			}},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "IPv4 secondary DNS is required when DoH is enabled",
		},
		{
			name: "doh_valid",
			settings: DNSSettings{IPv4: DNSEntry{
				Enabled: true,
				Primary: DNSServerEntry{Address: "1.1.1.1", DoHMode: DoHOn, DoHTemplate: validTemplate},
			}},
			mode: ModeManual,
		},
		{
			name: "ipv4_error_reported_before_ipv6",
			settings: DNSSettings{
				IPv4: DNSEntry{Enabled: true},
				IPv6: DNSEntry{Enabled: true},
			},
			mode:        ModeManual,
			expectError: true,
			errorMsg:    "IPv4 primary DNS is required when enabled",
		},
		{
			name: "disabled_family_not_validated",
			settings: DNSSettings{
				IPv4: DNSEntry{Enabled: false, Primary: DNSServerEntry{Address: "garbage"}},
				IPv6: DNSEntry{Enabled: true, Primary: DNSServerEntry{Address: "::1"}},
			},
			mode: ModeManual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettings(&tt.settings, tt.mode)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error containing %q, but got no error", tt.errorMsg)
				} else if tt.errorMsg != "" && !contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, but got %q", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
