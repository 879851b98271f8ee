package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/wricardo/mcp-training/game2048/game/service"
	"github.com/wricardo/mcp-training/game2048/game/session"
)

// serverConfig is read from the environment; command line flags override it.
type serverConfig struct {
	Host        string        `env:"GAME2048_HOST"          envDefault:"localhost"`
	Port        int           `env:"GAME2048_PORT"          envDefault:"8080"`
	ConfigDir   string        `env:"CONFIG_DIR"             envDefault:"configs"`
	Store       string        `env:"GAME2048_STORE"         envDefault:"file"`
	SessionsDir string        `env:"GAME2048_SESSIONS_DIR"  envDefault:"sessions"`
	SQLitePath  string        `env:"GAME2048_SQLITE_PATH"   envDefault:"sessions.db"`
	SessionTTL  time.Duration `env:"GAME2048_SESSION_TTL"   envDefault:"24h"`
	SyncEvery   time.Duration `env:"GAME2048_SYNC_INTERVAL" envDefault:"5s"`

	NgrokEnabled bool   `env:"NGROK_ENABLED"`
	NgrokAuth    string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain  string `env:"NGROK_DOMAIN"`
}

func loadServerConfig() (serverConfig, error) {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store != "file" && cfg.Store != "sqlite" {
		return cfg, fmt.Errorf("GAME2048_STORE must be file or sqlite, got %q", cfg.Store)
	}
	return cfg, nil
}

func (c serverConfig) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// sessionStore is a persistence backend that may hold resources.
type sessionStore interface {
	session.SessionPersistence
	Close() error
}

type fileStore struct {
	*session.FilePersistence
}

func (fileStore) Close() error { return nil }

func openStore(cfg serverConfig, configs service.ConfigManager) (sessionStore, error) {
	switch cfg.Store {
	case "sqlite":
		store, err := session.OpenSQLitePersistence(cfg.SQLitePath, configs)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := session.NewFilePersistence(cfg.SessionsDir, configs)
		if err != nil {
			return nil, err
		}
		return fileStore{store}, nil
	}
}
