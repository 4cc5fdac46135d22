// Package config loads, normalizes, and validates the TOML configuration for
// the apsdir CLI. Paths are home-expanded and every field has a usable
// default so the tool runs without a config file present.
package config
