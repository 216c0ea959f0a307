package discovery

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/artyom-g-dv/grandiose/internal/logging"
)

// Finder is a discovery handle. It owns one Engine from creation until
// Close; after Close only Close may be called again.
type Finder struct {
	mu       sync.Mutex
	engine   Engine
	settings Settings
	closed   bool
}

// NewFinder normalizes opts and starts an engine session synchronously.
// A nil opts leaves every field unset.
func NewFinder(factory EngineFactory, opts *Options) (*Finder, error) {
	if factory == nil {
		return nil, newInitializationError(fmt.Errorf("no engine factory configured"))
	}

	settings := opts.Settings()
	engine, err := factory(settings)
	if err != nil {
		return nil, newInitializationError(err)
	}
	if engine == nil {
		return nil, newInitializationError(fmt.Errorf("engine factory returned no engine"))
	}

	logging.Debug("Finder created",
		zap.Bool("show_local_sources", settings.ShowLocalSources),
		zap.Stringp("groups", settings.Groups),
		zap.Stringp("extra_ips", settings.ExtraIPs),
	)

	return &Finder{
		engine:   engine,
		settings: settings,
	}, nil
}

// Settings returns the normalized settings the engine was created with.
func (f *Finder) Settings() Settings {
	return f.settings
}

// CurrentSources returns the engine's current snapshot, possibly empty.
func (f *Finder) CurrentSources() ([]Source, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, newInvalidStateError("CurrentSources")
	}

	sources, err := f.engine.CurrentSources()
	if err != nil {
		return nil, newEngineError(err)
	}
	return sources, nil
}

// Closed reports whether Close has been called.
func (f *Finder) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Close releases the engine. The Finder is closed even when the engine
// fails to release; that failure is returned by the first call only.
// Later calls are no-ops.
func (f *Finder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	engine := f.engine
	f.engine = nil
	if err := engine.Close(); err != nil {
		return fmt.Errorf("failed to release discovery engine: %w", err)
	}

	logging.Debug("Finder closed")
	return nil
}
