package platform

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the workspace configuration file, relative to the
// system directory.
const ConfigFileName = "config.yaml"

// Config is the persisted workspace configuration. Explicit options
// always win over values read from this file.
type Config struct {
	Adapter     string `yaml:"adapter,omitempty"`
	Versioned   *bool  `yaml:"versioned,omitempty"`
	EventBuffer int    `yaml:"event_buffer,omitempty"`
}

// LoadConfig reads the workspace configuration. A missing file is not an
// error and yields the zero config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes the workspace configuration.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
