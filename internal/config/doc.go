// Package config loads, normalizes, and validates modcabinet
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/modcabinet/config.toml
// or a project-local modcabinet.toml. The Config type centralizes every
// knob the sorter and CLI need: checkout locations, public URL prefixes,
// cache placement, and git behavior.
//
// Always obtain settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear validation
// errors.
package config
