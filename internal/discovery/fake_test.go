package discovery

import (
	"errors"
	"sync"
	"time"
)

// fakeEngine reports sources from a script and counts calls.
type fakeEngine struct {
	mu       sync.Mutex
	settings Settings
	polls    int
	closes   int
	closeErr error

	// report is called for each poll with the 1-based poll number.
	report func(poll int) ([]Source, error)
}

func (e *fakeEngine) CurrentSources() ([]Source, error) {
	e.mu.Lock()
	e.polls++
	poll := e.polls
	e.mu.Unlock()

	if e.report == nil {
		return nil, nil
	}
	return e.report(poll)
}

func (e *fakeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closes++
	return e.closeErr
}

func (e *fakeEngine) pollCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.polls
}

func (e *fakeEngine) closeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closes
}

// factory returns an EngineFactory that hands out e and records settings.
func (e *fakeEngine) factory() EngineFactory {
	return func(s Settings) (Engine, error) {
		e.settings = s
		return e, nil
	}
}

func failingFactory(err error) EngineFactory {
	return func(Settings) (Engine, error) {
		return nil, err
	}
}

// afterElapsed reports sources once d has passed since the engine was built.
func afterElapsed(d time.Duration, sources []Source) func(int) ([]Source, error) {
	start := time.Now()
	return func(int) ([]Source, error) {
		if time.Since(start) >= d {
			return sources, nil
		}
		return nil, nil
	}
}

var errEngineBroken = errors.New("engine socket closed")
