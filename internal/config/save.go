package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file in the user's config directory.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// Bootstrap writes the defaults to DefaultPath when no config file is found,
// so there is one to edit while the viewer runs. It returns the path written,
// or "" when a config file already exists.
func Bootstrap() (string, error) {
	if Resolve() != "" {
		return "", nil
	}
	if err := Default().Save(); err != nil {
		return "", fmt.Errorf("writing default config: %w", err)
	}
	return DefaultPath(), nil
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
