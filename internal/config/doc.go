// Package config loads, normalizes, and validates mangasync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ANILIST_TOKEN. The Config type centralizes every knob the CLI needs:
// AniList connection settings, matcher thresholds, sync pacing, and log
// output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
