// Package format defines the enumerated configuration surface shared by
// source discovery and the receive/send pipelines.
//
// The integer value of every constant in this package is part of the
// compatibility contract with the native engine and must never be
// renumbered. Names are what users see in configuration files and CLI
// flags; values are what crosses the engine boundary.
//
// # Families
//
//   - ColorFormat: pixel layout requested from the receiver
//   - Bandwidth: how much of a source's streams to receive
//   - FrameFormatType: progressive, interlaced or single-field frames
//   - AudioFormat: planar or interleaved sample layout
//
// # Parsing
//
// Each family can be parsed from its canonical name (case-insensitive,
// "-" and "_" interchangeable) or from its decimal value:
//
//	cf, err := format.ParseColorFormat("uyvy_bgra")
//	bw, err := format.ParseBandwidth("-10") // METADATA_ONLY
//
// All types implement encoding.TextMarshaler and encoding.TextUnmarshaler,
// so they round-trip through YAML and JSON by name.
package format
