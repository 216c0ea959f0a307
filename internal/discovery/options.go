package discovery

import (
	"fmt"
	"time"
)

// Options configures a Finder. Options are copied on use and never
// modified by this package.
type Options struct {
	// ShowLocalSources includes sources running on this host. nil means
	// unset; engines and Find both treat unset as true.
	ShowLocalSources *bool `yaml:"show_local_sources,omitempty"`

	// Groups restricts discovery to the named groups.
	Groups Filter `yaml:"groups,omitempty"`

	// ExtraIPs lists peers to query directly in addition to multicast
	// discovery.
	ExtraIPs Filter `yaml:"extra_ips,omitempty"`
}

// Bool returns a pointer to b, for Options.ShowLocalSources.
func Bool(b bool) *bool {
	return &b
}

// Settings is the normalized form of Options handed to an Engine.
// A nil filter means the caller did not supply one.
type Settings struct {
	ShowLocalSources bool
	Groups           *string
	ExtraIPs         *string
}

// Settings normalizes o. A nil receiver yields the defaults.
func (o *Options) Settings() Settings {
	s := Settings{ShowLocalSources: true}
	if o == nil {
		return s
	}
	if o.ShowLocalSources != nil {
		s.ShowLocalSources = *o.ShowLocalSources
	}
	s.Groups = o.Groups.pointer()
	s.ExtraIPs = o.ExtraIPs.pointer()
	return s
}

// Source is one advertised sender.
type Source struct {
	// Name is the human-readable source name, e.g. "STUDIO (Camera 1)".
	Name string `json:"name" yaml:"name"`

	// URLAddress is the host:port locator used to connect to the source.
	URLAddress string `json:"url" yaml:"url"`

	// Host is the advertised host name, when known.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// IP is the address the source was reached at.
	IP string `json:"ip,omitempty" yaml:"ip,omitempty"`

	// Port is the connection port.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Metadata contains TXT record key/values.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// DiscoveredAt is when the engine first reported the source.
	DiscoveredAt time.Time `json:"discovered_at" yaml:"discovered_at"`
}

// String returns a human-readable representation of the source
func (s Source) String() string {
	return fmt.Sprintf("%s at %s", s.Name, s.URLAddress)
}

// GetMetadata retrieves a metadata value by key, or "" if not found
func (s Source) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}

// Engine is an opaque discovery session. It is owned by exactly one Finder,
// which never calls it after Close.
type Engine interface {
	// CurrentSources returns the current snapshot without blocking.
	CurrentSources() ([]Source, error)

	// Close releases the session.
	Close() error
}

// EngineFactory starts a new engine session.
type EngineFactory func(Settings) (Engine, error)
