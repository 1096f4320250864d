package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const prefix = "GOSU"

type Configuration struct {
	Feed struct {
		URL            string        `envconfig:"URL" default:"ws://localhost:24050/ws"`
		ReconnectDelay time.Duration `envconfig:"RECONNECT_DELAY" default:"2s"`
		ReadLimit      int64         `envconfig:"READ_LIMIT" default:"1048576"`
	}
	Relay struct {
		Addr string `envconfig:"ADDR" default:":7777"`
	}
	Store struct {
		Path string `envconfig:"DB"`
	}
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// InitConfig reads GOSU_* environment variables. Nested sections add their
// own name, so the feed URL is GOSU_FEED_URL and the database GOSU_STORE_DB.
func InitConfig() (*Configuration, error) {
	cfg := &Configuration{}
	if err := envconfig.Process(prefix, cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultDBPath()
	}
	if cfg.Feed.ReadLimit <= 0 {
		return nil, fmt.Errorf("read limit must be positive, got %d", cfg.Feed.ReadLimit)
	}

	return cfg, nil
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gosumemory-helper", "results.db")
}

// Level maps LogLevel to a slog level.
func (c *Configuration) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}
