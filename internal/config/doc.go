// Package config loads, normalizes, and validates holdcut configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as HF_TOKEN. The Config
// type centralizes every knob the CLI and render pipeline need: working and
// output directories, the hold trigger offset, subtitle styling, transcription
// and download settings, and encoder options.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical subtitle modes, and clear validation errors.
package config
