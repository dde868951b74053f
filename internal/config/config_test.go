package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001/api", cfg.API.BaseURL)
	assert.Equal(t, 60, cfg.API.TimeoutSecs)
	assert.Equal(t, ".quote-cli-token", cfg.Auth.TokenFile)
	assert.Empty(t, cfg.Auth.Token)
	assert.Equal(t, 256, cfg.Cache.MaxEntries)
	assert.Equal(t, 300, cfg.Cache.TTLSecs)
	assert.Equal(t, "ja-JP", cfg.Display.Locale)
	assert.Equal(t, "JPY", cfg.Display.Currency)
	assert.Equal(t, "quote-history.db", cfg.History.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
api:
  base_url: https://quotes.example.com/api
display:
  locale: en-US
  currency: USD
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://quotes.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "en-US", cfg.Display.Locale)
	assert.Equal(t, "USD", cfg.Display.Currency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, 256, cfg.Cache.MaxEntries)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
api:
  base_url: https://file.example.com/api
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("QUOTE_API_BASE_URL", "https://env.example.com/api")
	t.Setenv("QUOTE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	assert.Error(t, err)
}
