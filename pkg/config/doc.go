// Package config handles configuration management for stapler.
// Values are layered from the embedded defaults, the user's config.toml
// and STAPLER_* environment variables.
package config
