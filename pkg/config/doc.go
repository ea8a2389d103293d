// Package config defines the Scrivener configuration structure and its
// loading pipeline: YAML file, then defaults, then SCRIVENER_* environment
// overrides, then validation. Every section has working defaults so an
// empty file is a valid configuration.
package config
