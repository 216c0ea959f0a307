package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorFormat selects the pixel layout delivered by a receiver.
// Where two layouts are named, the first is used for frames without an
// alpha channel and the second for frames with one.
type ColorFormat int

const (
	ColorFormatBGRXBGRA ColorFormat = 0
	ColorFormatUYVYBGRA ColorFormat = 1
	ColorFormatRGBXRGBA ColorFormat = 2
	ColorFormatUYVYRGBA ColorFormat = 3

	// ColorFormatFastest lets the engine pick the cheapest conversion.
	ColorFormatFastest ColorFormat = 100

	// ColorFormatBGRXBGRAFlipped delivers rows bottom to top with a negative
	// stride. The data pointer still references the logical top row.
	ColorFormatBGRXBGRAFlipped ColorFormat = 200
)

// Bandwidth selects which streams of a source are received.
type Bandwidth int

const (
	BandwidthMetadataOnly Bandwidth = -10 // metadata
	BandwidthLowest       Bandwidth = 0   // metadata, audio, reduced video
	BandwidthAudioOnly    Bandwidth = 10  // metadata, audio
	BandwidthHighest      Bandwidth = 100 // metadata, audio, full video
)

// FrameFormatType describes how a video frame is scanned.
type FrameFormatType int

const (
	FrameFormatInterlaced  FrameFormatType = 0
	FrameFormatProgressive FrameFormatType = 1
	FrameFormatField0      FrameFormatType = 2
	FrameFormatField1      FrameFormatType = 3
)

// AudioFormat describes the sample layout of an audio frame.
type AudioFormat int

const (
	// AudioFormatFloat32Separate stores each channel's samples contiguously.
	AudioFormatFloat32Separate    AudioFormat = 0
	AudioFormatFloat32Interleaved AudioFormat = 1
	AudioFormatInt16Interleaved   AudioFormat = 2
)

type named[T ~int] struct {
	value T
	name  string
}

// table lists the members of one family in declaration order.
type table[T ~int] []named[T]

func (t table[T]) name(v T) (string, bool) {
	for _, n := range t {
		if n.value == v {
			return n.name, true
		}
	}
	return "", false
}

func (t table[T]) parse(family, s string) (T, error) {
	trimmed := strings.TrimSpace(s)
	if i, err := strconv.Atoi(trimmed); err == nil {
		if _, ok := t.name(T(i)); ok {
			return T(i), nil
		}
		return 0, fmt.Errorf("unknown %s value %d", family, i)
	}
	key := strings.ToUpper(strings.ReplaceAll(trimmed, "-", "_"))
	for _, n := range t {
		if n.name == key {
			return n.value, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", family, s)
}

func (t table[T]) values() []T {
	out := make([]T, len(t))
	for i, n := range t {
		out[i] = n.value
	}
	return out
}

var colorFormats = table[ColorFormat]{
	{ColorFormatBGRXBGRA, "BGRX_BGRA"},
	{ColorFormatUYVYBGRA, "UYVY_BGRA"},
	{ColorFormatRGBXRGBA, "RGBX_RGBA"},
	{ColorFormatUYVYRGBA, "UYVY_RGBA"},
	{ColorFormatBGRXBGRAFlipped, "BGRX_BGRA_FLIPPED"},
	{ColorFormatFastest, "FASTEST"},
}

var bandwidths = table[Bandwidth]{
	{BandwidthMetadataOnly, "METADATA_ONLY"},
	{BandwidthAudioOnly, "AUDIO_ONLY"},
	{BandwidthLowest, "LOWEST"},
	{BandwidthHighest, "HIGHEST"},
}

var frameFormatTypes = table[FrameFormatType]{
	{FrameFormatProgressive, "PROGRESSIVE"},
	{FrameFormatInterlaced, "INTERLACED"},
	{FrameFormatField0, "FIELD_0"},
	{FrameFormatField1, "FIELD_1"},
}

var audioFormats = table[AudioFormat]{
	{AudioFormatFloat32Separate, "FLOAT_32_SEPARATE"},
	{AudioFormatFloat32Interleaved, "FLOAT_32_INTERLEAVED"},
	{AudioFormatInt16Interleaved, "INT_16_INTERLEAVED"},
}

// String returns the canonical name, or ColorFormat(n) for unknown values.
func (c ColorFormat) String() string {
	if s, ok := colorFormats.name(c); ok {
		return s
	}
	return fmt.Sprintf("ColorFormat(%d)", int(c))
}

// IsValid reports whether c is a member of the family.
func (c ColorFormat) IsValid() bool {
	_, ok := colorFormats.name(c)
	return ok
}

// MarshalText encodes c by name. Unknown values are rejected.
func (c ColorFormat) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid color format %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts anything ParseColorFormat accepts.
func (c *ColorFormat) UnmarshalText(text []byte) error {
	v, err := ParseColorFormat(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColorFormat parses a color format name or value.
func ParseColorFormat(s string) (ColorFormat, error) {
	return colorFormats.parse("color format", s)
}

// AllColorFormats returns every color format in declaration order.
func AllColorFormats() []ColorFormat { return colorFormats.values() }

// String returns the canonical name, or Bandwidth(n) for unknown values.
func (b Bandwidth) String() string {
	if s, ok := bandwidths.name(b); ok {
		return s
	}
	return fmt.Sprintf("Bandwidth(%d)", int(b))
}

// IsValid reports whether b is a known bandwidth tier.
func (b Bandwidth) IsValid() bool {
	_, ok := bandwidths.name(b)
	return ok
}

// MarshalText encodes b by name. Unknown values are rejected.
func (b Bandwidth) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, fmt.Errorf("invalid bandwidth %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText accepts anything ParseBandwidth accepts.
func (b *Bandwidth) UnmarshalText(text []byte) error {
	v, err := ParseBandwidth(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBandwidth parses a bandwidth tier name or value.
func ParseBandwidth(s string) (Bandwidth, error) {
	return bandwidths.parse("bandwidth", s)
}

// AllBandwidths returns every bandwidth tier in declaration order.
func AllBandwidths() []Bandwidth { return bandwidths.values() }

// String returns the canonical name, or FrameFormatType(n) for unknown values.
func (f FrameFormatType) String() string {
	if s, ok := frameFormatTypes.name(f); ok {
		return s
	}
	return fmt.Sprintf("FrameFormatType(%d)", int(f))
}

// IsValid reports whether f is a known frame format type.
func (f FrameFormatType) IsValid() bool {
	_, ok := frameFormatTypes.name(f)
	return ok
}

// MarshalText encodes f by name. Unknown values are rejected.
func (f FrameFormatType) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("invalid frame format type %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText accepts anything ParseFrameFormatType accepts.
func (f *FrameFormatType) UnmarshalText(text []byte) error {
	v, err := ParseFrameFormatType(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFrameFormatType parses a frame format type name or value.
func ParseFrameFormatType(s string) (FrameFormatType, error) {
	return frameFormatTypes.parse("frame format type", s)
}

// AllFrameFormatTypes returns every frame format type in declaration order.
func AllFrameFormatTypes() []FrameFormatType { return frameFormatTypes.values() }

// String returns the canonical name, or AudioFormat(n) for unknown values.
func (a AudioFormat) String() string {
	if s, ok := audioFormats.name(a); ok {
		return s
	}
	return fmt.Sprintf("AudioFormat(%d)", int(a))
}

// IsValid reports whether a is a known audio format.
func (a AudioFormat) IsValid() bool {
	_, ok := audioFormats.name(a)
	return ok
}

// MarshalText encodes a by name. Unknown values are rejected.
func (a AudioFormat) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("invalid audio format %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText accepts anything ParseAudioFormat accepts.
func (a *AudioFormat) UnmarshalText(text []byte) error {
	v, err := ParseAudioFormat(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAudioFormat parses an audio format name or value.
func ParseAudioFormat(s string) (AudioFormat, error) {
	return audioFormats.parse("audio format", s)
}

// AllAudioFormats returns every audio format in declaration order.
func AllAudioFormats() []AudioFormat { return audioFormats.values() }
