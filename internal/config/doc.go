// Package config loads, normalizes, and validates the vadcut configuration.
// Configuration is TOML with repository defaults applied first, so an absent
// file yields a fully usable config. All path fields are expanded to
// absolute paths during normalization.
package config
