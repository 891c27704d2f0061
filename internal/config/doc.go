// Package config loads, validates and normalizes the kinosync TOML
// configuration.
package config
