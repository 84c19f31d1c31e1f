// Package logging provides a minimal logging interface and adapters for the
// agentcore library and its demos.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that clients and demos use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.New(logging.LevelInfo, "text", os.Stderr)
//	ac := agentcore.New(cfg, func(o *agentcore.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal so callers can plug
// any structured logger without vendor lock-in.
package logging
