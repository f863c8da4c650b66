// Package pkg provides shared utilities for the nanokvm client stack.
//
// This package contains common functionality used across the transport,
// protocol, and client layers, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for serial protocol errors
//   - Controller status byte decoding
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with client-stack context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentKVM, "controller ready", "version", info.ChipVersion)
//
// # Errors
//
// Protocol errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrChecksum) {
//	    // Frame was corrupted in transit
//	}
//
// Replies from the controller chip carry a status byte; [Status.Error]
// maps non-zero values to the matching sentinel:
//
//	if errors.Is(err, pkg.ErrStatusParameter) {
//	    // Controller rejected the request payload
//	}
package pkg
