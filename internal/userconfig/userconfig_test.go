package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromedrv/chromedrv/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
proxy = "socks5://127.0.0.1:1080"
ssl_no_verify = true
bin_dir = "/opt/drivers"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "socks5://127.0.0.1:1080", cfg.Proxy)
	assert.True(t, cfg.SSLNoVerify)
	assert.Equal(t, "/opt/drivers", cfg.BinDir)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("proxy = [broken"), 0o644))

	_, err := loadFromPath(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := &Config{Proxy: "http://proxy.example:3128", SSLNoVerify: true}
	require.NoError(t, cfg.saveToPath(path))

	loaded, err := loadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadHonorsHomeEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	content := []byte(`proxy = "http://env.example:8080"`)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), content, 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example:8080", cfg.Proxy)
}
