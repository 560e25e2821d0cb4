package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
steam:
  steam_id: "76561199088392199"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 730, cfg.Steam.AppID)
	assert.Equal(t, 2, cfg.Steam.ContextID)
	assert.Equal(t, 30*time.Second, cfg.Steam.RequestTimeout())
	assert.Equal(t, time.Minute, cfg.Monitor.Interval())
	assert.Equal(t, "inventory_data.json", cfg.Monitor.SnapshotPath)
	assert.Equal(t, "Steam库存变化通知", cfg.Push.Title)
	assert.True(t, cfg.Monitor.RunFirstTickImmediately())
	assert.Empty(t, cfg.Push.Provider)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  log_level: debug
steam:
  steam_id: "123"
  app_id: 440
  context_id: 6
  timeout_seconds: 10
push:
  provider: BARK
  token: devkey
  title: 自定义标题
monitor:
  interval_seconds: 300
  run_immediately: false
  snapshot_path: /tmp/snap.json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 440, cfg.Steam.AppID)
	assert.Equal(t, 6, cfg.Steam.ContextID)
	assert.Equal(t, "bark", cfg.Push.Provider) // normalized to lower case
	assert.Equal(t, "自定义标题", cfg.Push.Title)
	assert.Equal(t, 5*time.Minute, cfg.Monitor.Interval())
	assert.False(t, cfg.Monitor.RunFirstTickImmediately())
}

func TestLoad_MissingSteamID(t *testing.T) {
	path := writeConfig(t, `
push:
  provider: pushplus
  token: x
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steam_id")
}

func TestLoad_NonNumericSteamID(t *testing.T) {
	path := writeConfig(t, `
steam:
  steam_id: gaben
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownProvider(t *testing.T) {
	path := writeConfig(t, `
steam:
  steam_id: "123"
push:
  provider: telegram
  token: x
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push.provider")
}

func TestLoad_ProviderWithoutToken(t *testing.T) {
	path := writeConfig(t, `
steam:
  steam_id: "123"
push:
  provider: pushplus
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push.token")
}

func TestLoad_SessionRequiresDevtoolsURL(t *testing.T) {
	path := writeConfig(t, `
steam:
  steam_id: "123"
  use_session: true
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devtools_url")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
