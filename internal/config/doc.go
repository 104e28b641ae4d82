// Package config loads, normalizes, and validates videocatalog configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// VIDEOCATALOG_DB_DSN. Variables may also come from a dotenv file named by
// VIDEOCATALOG_ENV_FILE.
//
// Always obtain settings through this package so the store and CLI receive
// sanitized paths and clear validation errors.
package config
