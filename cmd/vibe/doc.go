// Package main hosts the vibe CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the content collections, the layout
// shuffle preview, configuration scaffolding, and the daemon status endpoint.
// It centralizes configuration resolution so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
