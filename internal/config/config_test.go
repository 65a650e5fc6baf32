package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.App.Listen)
	assert.Equal(t, PolicyAdvisory, cfg.Pipeline.Policy)
	assert.Equal(t, 200, cfg.Activity.Capacity)
	assert.Equal(t, "https://paper-api.alpaca.markets", cfg.Broker.BaseURL)
	assert.Equal(t, 15, cfg.Broker.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Advisor.TimeoutSeconds)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
app:
  listen: ":8080"
  log_level: "debug"
pipeline:
  policy: "GATE"
activity:
  capacity: 50
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.Listen)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, PolicyGate, cfg.Pipeline.Policy, "策略取值大小写不敏感")
	assert.Equal(t, 50, cfg.Activity.Capacity)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("APCA_API_KEY_ID", "env-key")
	t.Setenv("APCA_API_SECRET_KEY", "env-secret")
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("TRADEPULSE_POLICY", "gate")
	t.Setenv("PORT", "9000")

	path := writeConfig(t, `
broker:
  key_id: "file-key"
pipeline:
  policy: "advisory"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Broker.KeyID)
	assert.Equal(t, "env-secret", cfg.Broker.SecretKey)
	assert.Equal(t, "env-openai", cfg.Advisor.APIKey)
	assert.Equal(t, PolicyGate, cfg.Pipeline.Policy)
	assert.Equal(t, ":9000", cfg.App.Listen)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	path := writeConfig(t, `
pipeline:
  policy: "both"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline.policy")
}

func TestLoad_InvalidCapacity(t *testing.T) {
	path := writeConfig(t, `
activity:
  capacity: -5
`)
	// 非正数容量按默认值处理后通过校验
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Activity.Capacity)
}
