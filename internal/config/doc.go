// Package config provides user configuration management for grandiose.
//
// The configuration is a YAML file holding default discovery options, the
// preferred receive settings, and metadata for sources seen by earlier
// discovery runs. The file location follows OS conventions:
//   - Linux: $XDG_CONFIG_HOME/grandiose/config.yaml or $HOME/.config/grandiose/config.yaml
//   - macOS: $HOME/.config/grandiose/config.yaml
//   - Windows: %LOCALAPPDATA%\grandiose\config.yaml
//
// # Example file
//
//	version: 1
//	discovery:
//	    show_local_sources: true
//	    groups: [public, studio]
//	    extra_ips: 10.0.0.5
//	    wait_ms: 5000
//	receive:
//	    color_format: UYVY_BGRA
//	    bandwidth: HIGHEST
//	    audio_format: FLOAT_32_SEPARATE
//	    allow_video_fields: true
//	sources:
//	    STUDIO (Camera 1):
//	        nickname: Stage left
//	        last_url: 192.168.4.16:5961
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	sources, err := discovery.Find(ctx, mdns.New, registry.DiscoveryOptions(), registry.Wait())
//	if err == nil {
//	    registry.RecordSources(sources, time.Now())
//	    err = registry.Save()
//	}
//
// # Thread Safety
//
// The global registry is loaded once with sync.Once. Writes are serialized
// and go through a temporary file that is renamed into place.
package config
