// Package userconfig provides user configuration for chromedrv.
// Settings live in $CHROMEDRV_HOME/config.toml (default
// ~/.chromedrv/config.toml); command-line flags take precedence over
// everything here.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chromedrv/chromedrv/internal/config"
)

// Config represents user-configurable defaults.
type Config struct {
	// Proxy is the default proxy URL for all outbound requests
	// (http, https, or socks5 scheme).
	Proxy string `toml:"proxy"`

	// SSLNoVerify disables TLS certificate verification by default.
	SSLNoVerify bool `toml:"ssl_no_verify"`

	// BinDir overrides the driver installation directory.
	BinDir string `toml:"bin_dir"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{}
}

// Load reads the config file and returns the configuration.
// Missing files are not an error; defaults are returned.
func Load() (*Config, error) {
	path, err := config.ConfigFile()
	if err != nil {
		return DefaultConfig(), nil
	}
	return loadFromPath(path)
}

// loadFromPath reads config from a specific file path (for testing).
func loadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	path, err := config.ConfigFile()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.saveToPath(path)
}

// saveToPath writes config to a specific file path (for testing).
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
