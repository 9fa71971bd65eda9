package cli

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	envAPIKey = "BIZYAIR_API_KEY"
	envServer = "BIZYAIR_SERVER"
)

// Config is the on-disk CLI configuration.
type Config struct {
	Server string `yaml:"server,omitempty"`
	APIKey string `yaml:"apiKey,omitempty"`
}

// LoadConfig reads the config file at path. A missing file yields an empty config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, readable only by the owner since it holds the key.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// withEnv returns a copy of cfg with environment overrides applied.
func (c Config) withEnv(getenv func(string) string) Config {
	if v := getenv(envServer); v != "" {
		c.Server = v
	}
	if v := getenv(envAPIKey); v != "" {
		c.APIKey = v
	}
	return c
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./bizyair-config.yaml"
	}
	return filepath.Join(dir, "bizyair", "config.yaml")
}
