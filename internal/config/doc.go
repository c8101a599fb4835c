// Package config loads and validates the TOML configuration for the content
// service. Defaults cover every field so the daemon can start without a
// config file; paths are tilde-expanded and normalized to absolute form.
package config
