// Package config loads, normalizes, and validates vodsnip configuration.
//
// Configuration lives in a single TOML file (default
// ~/.config/vodsnip/config.toml, with ./vodsnip.toml as a project-local
// fallback). Load applies defaults for every absent field, expands ~ in all
// path fields, and rejects unusable values before any processing starts so a
// detection run can only fail on configuration before its scan begins.
package config
