// Package config loads the mameset CLI's JSON configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config describes the application-level configuration loaded from JSON.
type Config struct {
	Store   StoreConfig   `json:"store"`
	Catalog CatalogConfig `json:"catalog"`
	Log     LogConfig     `json:"log"`
}

// StoreConfig names where the SQLite store lives by default.
type StoreConfig struct {
	Path string `json:"path"`
}

// CatalogConfig lists directories for catalog XML files. No command reads
// it: ingest always takes the catalog path from --xml.
type CatalogConfig struct {
	SearchPaths []string `json:"search_paths"`
}

// LogConfig holds log level and path settings. The CLI initializes its
// logger with fixed settings and does not read them.
type LogConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

// LoadFirst tries each path in order, returning the configuration from the
// first path that exists. A file that exists but fails to decode or validate
// stops the search with its error. If none exist, it returns the last error seen.
func LoadFirst(paths ...string) (*Config, error) {
	var lastErr error
	for _, path := range paths {
		if path == "" {
			continue
		}
		cfg, err := Load(path)
		if errors.Is(err, os.ErrNotExist) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("config not found in paths: %v", paths)
	}
	return nil, lastErr
}

// Load reads configuration from a single JSON file path, applying defaults
// to any field the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config with sane defaults for a bare invocation.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Path: "mame.db"},
		Log:   LogConfig{Level: "info"},
	}
}

// Validate performs basic validation of the configuration.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return errors.New("config.store.path must be set")
	}
	return nil
}
