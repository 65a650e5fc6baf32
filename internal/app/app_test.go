package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepulse/internal/activity"
	"tradepulse/internal/config"
	"tradepulse/internal/pipeline"
)

func TestNewApp_RecordsStartupEntry(t *testing.T) {
	cfg := &config.Config{}
	cfg.Pipeline.Policy = config.PolicyGate
	cfg.Activity.Capacity = 10

	a, err := NewApp(cfg)
	require.NoError(t, err)

	entries := a.logs.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, activity.KindWebhook, entries[0].Type)
	assert.Equal(t, pipeline.SourceSystem, entries[0].Source, "启动事件靠 source=System 与真实信号区分")
	assert.Contains(t, entries[0].Message, "Service started")
	assert.Contains(t, entries[0].Message, config.PolicyGate)
}

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(nil)
	require.Error(t, err)
}
