// Package project loads per-repository defaults from an optional
// .treeship.yaml at the monorepo root. Command-line flags always win over
// file values.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up at the repository root.
const ConfigFileName = ".treeship.yaml"

// Config holds the optional per-repository defaults.
type Config struct {
	// Branch is the default target branch for publishes.
	Branch string `yaml:"branch"`

	// Author is the default commit identity in "Name <email>" form.
	Author string `yaml:"author"`
}

// Load reads the config file from dir. A missing file is not an error and
// yields an empty config; a malformed file is an error.
func Load(dir string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}
