// Package daemon runs the vibed process: a single-instance HTTP API server
// over the flat-file content stores, asset ingestor, and capture service.
package daemon
