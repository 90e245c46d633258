package config

// DNSMode selects how resolvers are configured for an interface.
type DNSMode string

const (
	ModeAutomatic DNSMode = "Automatic"
	ModeManual    DNSMode = "Manual"
)

// AddressFamily identifies one of the two IP resolver slots on an interface.
type AddressFamily int

const (
	IPv4 AddressFamily = iota
	IPv6
)

// String returns the user-facing family label.
func (f AddressFamily) String() string {
	if f == IPv6 {
		return "IPv6"
	}
	return "IPv4"
}

// DoHMode is the per-server toggle for encrypted resolution.
type DoHMode string

const (
	DoHOff DoHMode = "Off"
	DoHOn  DoHMode = "On"
)

// DNSServerEntry is one configured resolver address and its DoH behavior.
type DNSServerEntry struct {
	Address       string  `yaml:"address"`
	DoHMode       DoHMode `yaml:"doh_mode"`
	DoHTemplate   string  `yaml:"doh_template"`
	AllowFallback bool    `yaml:"allow_fallback"`
}

// DNSEntry is one address family's configuration slot.
type DNSEntry struct {
	Enabled   bool           `yaml:"enabled"`
	Primary   DNSServerEntry `yaml:"primary"`
	Secondary DNSServerEntry `yaml:"secondary"`
}

// Addresses returns the entry's non-empty server addresses, primary first.
func (e *DNSEntry) Addresses() []string {
	var addresses []string
	if e.Primary.Address != "" {
		addresses = append(addresses, e.Primary.Address)
	}
	if e.Secondary.Address != "" {
		addresses = append(addresses, e.Secondary.Address)
	}
	return addresses
}

// DNSSettings is a complete candidate configuration: both address family
// slots of one profile or one ad-hoc apply.
type DNSSettings struct {
	IPv4 DNSEntry `yaml:"ipv4"`
	IPv6 DNSEntry `yaml:"ipv6"`
}

// Entry returns the slot for the given family.
func (s *DNSSettings) Entry(family AddressFamily) *DNSEntry {
	if family == IPv6 {
		return &s.IPv6
	}
	return &s.IPv4
}

// DNSProfile is a named, persisted settings bundle. Identity is the ID,
// which is assigned at creation and never recycled; the name is a label.
type DNSProfile struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Settings DNSSettings `yaml:"settings"`
}

// WindowState remembers the desktop shell placement between runs.
type WindowState struct {
	X         int  `yaml:"x"`
	Y         int  `yaml:"y"`
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	Maximized bool `yaml:"maximized"`
}

// AppConfig is the persisted root document.
type AppConfig struct {
	Profiles []DNSProfile `yaml:"profiles"`
	Window   *WindowState `yaml:"window,omitempty"`
}

// Clone returns a deep copy that is safe to persist while the original keeps
// being mutated.
func (c *AppConfig) Clone() *AppConfig {
	out := &AppConfig{}
	if len(c.Profiles) > 0 {
		out.Profiles = make([]DNSProfile, len(c.Profiles))
		copy(out.Profiles, c.Profiles)
	}
	if c.Window != nil {
		w := *c.Window
		out.Window = &w
	}
	return out
}
