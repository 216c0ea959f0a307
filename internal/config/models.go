package config

import (
	"time"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/format"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version   int                    `yaml:"version"`
	Discovery *DiscoveryPrefs        `yaml:"discovery,omitempty"`
	Receive   *ReceivePrefs          `yaml:"receive,omitempty"`
	Sources   map[string]*SourceMeta `yaml:"sources,omitempty"` // Keyed by source name
}

// DiscoveryPrefs holds the default discovery options used by the CLI when
// no flags override them.
type DiscoveryPrefs struct {
	discovery.Options `yaml:",inline"`

	// WaitMS is the default find budget in milliseconds; zero or negative
	// means discovery.DefaultWait.
	WaitMS int `yaml:"wait_ms,omitempty"`
}

// ReceivePrefs records the preferred receive settings, stored by name.
type ReceivePrefs struct {
	ColorFormat      format.ColorFormat `yaml:"color_format"`
	Bandwidth        format.Bandwidth   `yaml:"bandwidth"`
	AudioFormat      format.AudioFormat `yaml:"audio_format"`
	AllowVideoFields bool               `yaml:"allow_video_fields"`
}

// SourceMeta is user metadata for a source seen by a previous find.
type SourceMeta struct {
	Nickname string    `yaml:"nickname,omitempty"`
	LastURL  string    `yaml:"last_url,omitempty"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:   1,
		Discovery: defaultDiscoveryPrefs(),
		Receive:   defaultReceivePrefs(),
		Sources:   make(map[string]*SourceMeta),
	}
}

func defaultDiscoveryPrefs() *DiscoveryPrefs {
	return &DiscoveryPrefs{
		Options: discovery.Options{ShowLocalSources: discovery.Bool(true)},
		WaitMS:  int(discovery.DefaultWait / time.Millisecond),
	}
}

func defaultReceivePrefs() *ReceivePrefs {
	return &ReceivePrefs{
		ColorFormat:      format.ColorFormatUYVYBGRA,
		Bandwidth:        format.BandwidthHighest,
		AudioFormat:      format.AudioFormatFloat32Separate,
		AllowVideoFields: true,
	}
}

// DiscoveryOptions returns a copy of the stored discovery options.
func (r *Registry) DiscoveryOptions() *discovery.Options {
	if r.Discovery == nil {
		return &discovery.Options{}
	}
	opts := r.Discovery.Options
	return &opts
}

// Wait returns the stored find budget.
func (r *Registry) Wait() time.Duration {
	if r.Discovery == nil {
		return discovery.DefaultWait
	}
	return discovery.WaitFromMillis(r.Discovery.WaitMS)
}

// GetSource retrieves source metadata by name.
// Returns nil if the source doesn't exist in the registry.
func (r *Registry) GetSource(name string) *SourceMeta {
	return r.Sources[name]
}

// EnsureSource ensures a source entry exists in the registry.
func (r *Registry) EnsureSource(name string) *SourceMeta {
	if r.Sources == nil {
		r.Sources = make(map[string]*SourceMeta)
	}

	if meta, exists := r.Sources[name]; exists {
		return meta
	}

	meta := &SourceMeta{}
	r.Sources[name] = meta
	return meta
}

// UpdateSourceLastSeen updates the last seen timestamp and URL for a source.
func (r *Registry) UpdateSourceLastSeen(name, url string, seen time.Time) {
	meta := r.EnsureSource(name)
	meta.LastSeen = seen
	meta.LastURL = url
}

// RecordSources stores every source of a discovery result.
func (r *Registry) RecordSources(sources []discovery.Source, seen time.Time) {
	for _, src := range sources {
		r.UpdateSourceLastSeen(src.Name, src.URLAddress, seen)
	}
}

// SetSourceNickname sets a user-friendly nickname for a source.
func (r *Registry) SetSourceNickname(name, nickname string) {
	r.EnsureSource(name).Nickname = nickname
}

// DisplayName returns the nickname for a source, or its name.
func (r *Registry) DisplayName(name string) string {
	if meta := r.Sources[name]; meta != nil && meta.Nickname != "" {
		return meta.Nickname
	}
	return name
}
