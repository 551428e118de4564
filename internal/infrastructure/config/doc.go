// Package config loads and validates Hearth Core configuration.
//
// Configuration comes from three layers, each overriding the last:
// hardcoded defaults, a YAML file, and HEARTH_* environment variables.
// The loaded Config is constructed once at startup and passed by
// reference to the components that need it.
package config
