// Package logging provides structured logging for grandiose.
//
// This package wraps a zap logger with convenience functions for the
// logging patterns used across discovery, the engine and the feed server.
//
// # Log Levels
//
//   - Debug: state transitions, probe packets, per-poll results
//   - Info: sources appearing and disappearing, server lifecycle
//   - Warn: non-fatal issues (ignored release failures, dropped clients)
//   - Error: failures surfaced to the user
//
// # Structured Logging
//
//	logging.Info("Source discovered",
//	    zap.String("name", "STUDIO (Camera 1)"),
//	    zap.String("url", "192.168.1.20:5961"),
//	)
//
// # Configuration
//
// Logging is silent unless a level is given explicitly or through the
// GRANDIOSE_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Libraries embedding grandiose get a no-op logger until they opt in.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
