// Package config loads, normalizes, and validates Steamer configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STEAMDB_CF_CLEARANCE. The Config type centralizes every knob the CLI and
// watch loop need, letting the plugin directory, archive location, registry
// database, and SteamDB client settings be discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
