// Package config loads the registry configuration from an optional YAML
// file with environment variable overrides.
package config
