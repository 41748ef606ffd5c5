package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything roost needs to reach the broker and keep its
// local data.
type Config struct {
	BrokerURL    string
	DataDir      string
	LogPath      string
	RefreshEvery time.Duration
	StrictReset  bool
}

const (
	defaultConfigPath = "~/.config/roost/config.toml"
	defaultDataDir    = "~/.local/share/roost"
	defaultBrokerURL  = "http://localhost:8080"
	defaultRefresh    = 60 * time.Second
)

// Load locates and parses the roost config, falling back to defaults when
// missing. Environment variables (optionally from a .env file) override
// file values: ROOST_BROKER_URL, ROOST_DATA_DIR, ROOST_STRICT_RESET.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BrokerURL:    defaultBrokerURL,
		DataDir:      defaultDataDir,
		RefreshEvery: defaultRefresh,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer file.Close()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			BrokerURL      string `toml:"broker_url"`
			DataDir        string `toml:"data_dir"`
			RefreshSeconds int    `toml:"refresh_seconds"`
			StrictReset    bool   `toml:"strict_reset"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		if v := strings.TrimSpace(raw.BrokerURL); v != "" {
			cfg.BrokerURL = v
		}
		if v := strings.TrimSpace(raw.DataDir); v != "" {
			cfg.DataDir = v
		}
		if raw.RefreshSeconds > 0 {
			cfg.RefreshEvery = time.Duration(raw.RefreshSeconds) * time.Second
		}
		cfg.StrictReset = raw.StrictReset
	}

	if v := strings.TrimSpace(os.Getenv("ROOST_BROKER_URL")); v != "" {
		cfg.BrokerURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ROOST_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ROOST_STRICT_RESET"); v == "true" || v == "1" {
		cfg.StrictReset = true
	}

	cfg.DataDir = mustExpand(cfg.DataDir)
	cfg.LogPath = filepath.Join(cfg.DataDir, "roost.log")

	return cfg, nil
}

// CachePath returns the path of the local sqlite cache.
func (c Config) CachePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
