// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for tgdispatch.
package config

import (
	"slices"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Modules maps module IDs to their raw YAML configuration.
	// Keys must match registered module IDs (e.g. "node.telegram_send").
	Modules map[string]yaml.Node `yaml:"modules"`
}

// Resolve returns the ordered list of module IDs to load. Modules are
// loaded in sorted-ID order, which brings infrastructure namespaces
// ("gateway", "journal") up before the "node" and "schedule" modules that
// consume their services.
func Resolve(cfg *Config) []string {
	ids := maps.Keys(cfg.Modules)
	slices.Sort(ids)
	return ids
}
