package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "agentbay_chat_history", cfg.HistoryKey)
	assert.Equal(t, 50, cfg.MaxSessions)
	assert.Equal(t, "MOCK", cfg.BackendMode)
	assert.Equal(t, 60*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "travel-agent", cfg.GeneralAgentID)
	assert.Equal(t, 1024, cfg.ConversationCacheSize)
	assert.Empty(t, cfg.DisabledAgents)
	assert.Equal(t, 30*time.Second, cfg.WSPingInterval)
	assert.Equal(t, int64(65536), cfg.WSMaxMessageSize)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AGENTBAY_HTTP_PORT", "9090")
	t.Setenv("AGENTBAY_STORAGE_DRIVER", "Memory")
	t.Setenv("AGENTBAY_BACKEND_TIMEOUT", "5s")
	t.Setenv("AGENTBAY_DISABLED_AGENTS", "music-agent, news-agent")
	t.Setenv("AGENTBAY_GENERAL_AGENT_ID", "data-agent")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"music-agent", "news-agent"}, cfg.DisabledAgents)
	assert.Equal(t, "data-agent", cfg.GeneralAgentID)
}
