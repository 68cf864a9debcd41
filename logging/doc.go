// Package logging provides a minimal logging interface and adapters for
// BiomniBridge.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the bridge components use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - BridgeLogger with contextual helpers (component, invocation) and
//     domain helpers for agent resolution and invocation records
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
