package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:24050/ws", cfg.Feed.URL)
	assert.Equal(t, 2*time.Second, cfg.Feed.ReconnectDelay)
	assert.Equal(t, int64(1<<20), cfg.Feed.ReadLimit)
	assert.Equal(t, ":7777", cfg.Relay.Addr)
	assert.Contains(t, cfg.Store.Path, "results.db")
}

func TestInitConfig_Env(t *testing.T) {
	t.Setenv("GOSU_FEED_URL", "ws://127.0.0.1:9000/ws")
	t.Setenv("GOSU_FEED_RECONNECT_DELAY", "250ms")
	t.Setenv("GOSU_RELAY_ADDR", "127.0.0.1:8080")
	t.Setenv("GOSU_STORE_DB", "/tmp/x.db")
	t.Setenv("GOSU_LOG_LEVEL", "debug")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "ws://127.0.0.1:9000/ws", cfg.Feed.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.Feed.ReconnectDelay)
	assert.Equal(t, "127.0.0.1:8080", cfg.Relay.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.Store.Path)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestInitConfig_BadValues(t *testing.T) {
	t.Setenv("GOSU_FEED_RECONNECT_DELAY", "soon")
	_, err := InitConfig()
	assert.Error(t, err)

	t.Setenv("GOSU_FEED_RECONNECT_DELAY", "1s")
	t.Setenv("GOSU_FEED_READ_LIMIT", "0")
	_, err = InitConfig()
	assert.Error(t, err)
}

func TestLevel_Unknown(t *testing.T) {
	cfg := &Configuration{LogLevel: "loud"}
	_, err := cfg.Level()
	assert.Error(t, err)
}
