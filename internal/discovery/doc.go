// Package discovery locates audio/video sources advertised on the network.
//
// The package is split into three layers:
//
//   - Engine: an opaque discovery engine that can report its current set of
//     sources and be released. Engines are created by an EngineFactory; the
//     default one lives in internal/mdns.
//   - Finder: the discovery handle. It owns exactly one Engine, normalizes
//     the caller's Options before creating it, and guarantees that the
//     engine is released at most once.
//   - Operation / Find: the bounded discovery operation. It creates a
//     Finder, polls it every PollInterval until sources appear or the wait
//     budget runs out, and always closes the Finder before returning.
//
// # Usage Example
//
//	sources, err := discovery.Find(ctx, mdns.New, &discovery.Options{
//	    Groups: discovery.FilterList("studio", "public"),
//	}, 5*time.Second)
//	if discovery.IsTimeout(err) {
//	    // nothing answered within five seconds
//	}
//
// Long-running callers hold a Finder directly:
//
//	finder, err := discovery.NewFinder(mdns.New, nil)
//	if err != nil {
//	    return err
//	}
//	defer finder.Close()
//
//	for range ticker.C {
//	    sources, err := finder.CurrentSources()
//	    ...
//	}
//
// # Thread Safety
//
// A Finder serializes its own calls, so a cleanup path may call Close while
// another goroutine polls. Within one Operation polls are strictly
// sequential. Independent Finders share no state.
package discovery
