package grandiose

import (
	"context"
	"time"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/format"
	"github.com/artyom-g-dv/grandiose/internal/mdns"
	"github.com/artyom-g-dv/grandiose/internal/version"
)

type (
	Options       = discovery.Options
	Filter        = discovery.Filter
	Settings      = discovery.Settings
	Source        = discovery.Source
	Finder        = discovery.Finder
	Engine        = discovery.Engine
	EngineFactory = discovery.EngineFactory
	Operation     = discovery.Operation
	State         = discovery.State
	Error         = discovery.Error

	ColorFormat     = format.ColorFormat
	Bandwidth       = format.Bandwidth
	FrameFormatType = format.FrameFormatType
	AudioFormat     = format.AudioFormat
)

const (
	ColorFormatBGRXBGRA        = format.ColorFormatBGRXBGRA
	ColorFormatUYVYBGRA        = format.ColorFormatUYVYBGRA
	ColorFormatRGBXRGBA        = format.ColorFormatRGBXRGBA
	ColorFormatUYVYRGBA        = format.ColorFormatUYVYRGBA
	ColorFormatBGRXBGRAFlipped = format.ColorFormatBGRXBGRAFlipped
	ColorFormatFastest         = format.ColorFormatFastest

	BandwidthMetadataOnly = format.BandwidthMetadataOnly
	BandwidthAudioOnly    = format.BandwidthAudioOnly
	BandwidthLowest       = format.BandwidthLowest
	BandwidthHighest      = format.BandwidthHighest

	FrameFormatInterlaced  = format.FrameFormatInterlaced
	FrameFormatProgressive = format.FrameFormatProgressive
	FrameFormatField0      = format.FrameFormatField0
	FrameFormatField1      = format.FrameFormatField1

	AudioFormatFloat32Separate    = format.AudioFormatFloat32Separate
	AudioFormatFloat32Interleaved = format.AudioFormatFloat32Interleaved
	AudioFormatInt16Interleaved   = format.AudioFormatInt16Interleaved
)

const (
	PollInterval = discovery.PollInterval
	DefaultWait  = discovery.DefaultWait
)

var (
	ErrInitialization   = discovery.ErrInitialization
	ErrInvalidState     = discovery.ErrInvalidState
	ErrDiscoveryTimeout = discovery.ErrTimeout
	ErrEngine           = discovery.ErrEngine
)

// DefaultEngine starts a multicast DNS-SD session. It is the engine used by
// Find and NewFinder.
var DefaultEngine EngineFactory = mdns.New

// FilterString returns a filter holding a single, possibly comma-separated,
// string.
func FilterString(s string) Filter { return discovery.FilterString(s) }

// FilterList returns a filter holding a list of values.
func FilterList(values ...string) Filter { return discovery.FilterList(values...) }

// Bool returns a pointer to b, for Options.ShowLocalSources.
func Bool(b bool) *bool { return discovery.Bool(b) }

// Find polls a new Finder until at least one source is reported or wait
// elapses. A zero or negative wait means DefaultWait. The Finder is always
// closed before Find returns.
func Find(ctx context.Context, opts *Options, wait time.Duration) ([]Source, error) {
	return discovery.Find(ctx, DefaultEngine, opts, wait)
}

// FindWithEngine is Find with a caller-supplied engine.
func FindWithEngine(ctx context.Context, factory EngineFactory, opts *Options, wait time.Duration) ([]Source, error) {
	return discovery.Find(ctx, factory, opts, wait)
}

// NewFinder starts a discovery session. The caller must Close it.
func NewFinder(opts *Options) (*Finder, error) {
	return discovery.NewFinder(DefaultEngine, opts)
}

// NewFinderWithEngine is NewFinder with a caller-supplied engine.
func NewFinderWithEngine(factory EngineFactory, opts *Options) (*Finder, error) {
	return discovery.NewFinder(factory, opts)
}

// IsTimeout reports whether err is a discovery timeout.
func IsTimeout(err error) bool { return discovery.IsTimeout(err) }

// Version returns the library version.
func Version() string {
	return version.Version
}
