// Package config resolves chromedrv's directories and tunables from
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// EnvHome overrides the default chromedrv home directory.
	EnvHome = "CHROMEDRV_HOME"

	// EnvAPITimeout configures the timeout for metadata requests.
	EnvAPITimeout = "CHROMEDRV_API_TIMEOUT"

	// DefaultAPITimeout is the default timeout for metadata requests.
	DefaultAPITimeout = 30 * time.Second
)

// HomeDir returns the chromedrv home directory: $CHROMEDRV_HOME if set,
// otherwise ~/.chromedrv.
func HomeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(userHome, ".chromedrv"), nil
}

// BinDir returns the directory drivers are installed into, creating it
// if necessary.
func BinDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, "bin")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create bin directory: %w", err)
	}
	return dir, nil
}

// ConfigFile returns the path of the user config file.
func ConfigFile() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.toml"), nil
}

// APITimeout returns the configured metadata request timeout from
// CHROMEDRV_API_TIMEOUT. If unset or invalid, returns DefaultAPITimeout.
// Accepts duration strings like "30s", "1m", "2m30s".
func APITimeout() time.Duration {
	envValue := os.Getenv(EnvAPITimeout)
	if envValue == "" {
		return DefaultAPITimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvAPITimeout, envValue, DefaultAPITimeout)
		return DefaultAPITimeout
	}

	// Clamp to a sane range.
	if duration < 1*time.Second {
		return 1 * time.Second
	}
	if duration > 10*time.Minute {
		return 10 * time.Minute
	}

	return duration
}
