// Package config loads and validates the boundary configuration of
// spec.md section 6: the dataset path, symbols dictionary path, and
// mode. The two user ids are supplied separately as CLI arguments.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"copytrace/internal/domain"
)

// Config is the run-wide configuration loaded from an external YAML file.
type Config struct {
	DatasetPath string `yaml:"dataset_path"`
	SymbolsPath string `yaml:"symbols_path"`
	Mode        string `yaml:"mode"`
	// MetricsAddr, if set, serves Prometheus metrics on this address
	// for the duration of the run (SPEC_FULL.md section 2.3). Optional:
	// a run over a small dataset has no need for a liveness probe.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Load reads and validates a YAML configuration file from path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &c, nil
}

// Validate checks that every required field is present and well formed.
// No reflection-based validator is used here: three fields, checked by
// hand, is simpler and faster to read than wiring a tag-driven library
// for a boundary this small.
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("dataset_path is required")
	}
	if c.SymbolsPath == "" {
		return fmt.Errorf("symbols_path is required")
	}
	if _, err := domain.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	return nil
}

// ParsedMode returns the configured mode, assuming Validate has
// already succeeded.
func (c *Config) ParsedMode() domain.Mode {
	m, _ := domain.ParseMode(c.Mode)
	return m
}
