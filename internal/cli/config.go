package cli

import (
	"os"
	"path/filepath"

	"github.com/xxxsen/mameset/internal/config"
)

// ConfigFlag is the CLI flag name used to specify an explicit config path.
const ConfigFlag = "config"

const (
	defaultConfigName = "mameset.json"
	systemConfigPath  = "/etc/mameset.json"
)

// loadConfig resolves the configuration file respecting precedence rules:
// an explicit path, then a config file in the working directory, then the
// system-wide path, falling back to defaults if none are readable.
func loadConfig(explicit string) *config.Config {
	searchPaths := make([]string, 0, 3)
	if explicit != "" {
		searchPaths = append(searchPaths, explicit)
	}
	if wd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(wd, defaultConfigName))
	}
	searchPaths = append(searchPaths, systemConfigPath)

	cfg, err := config.LoadFirst(searchPaths...)
	if err != nil {
		return config.Default()
	}
	return cfg
}
