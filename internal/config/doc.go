// Package config loads, normalizes, and validates famtree configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FAMTREE_GEDCOM. The Config type centralizes every knob the generator and CLI
// need, so the GEDCOM source, output tree layout, and state directory are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
