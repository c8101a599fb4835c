// Package services defines shared utilities consumed by the HTTP handlers
// and external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent HTTP status codes and user-facing messages.
//   - Context helpers that stamp request identifiers for logging.
//
// Use these helpers when wiring new handler logic so error handling and
// observability stay uniform across the service.
package services
