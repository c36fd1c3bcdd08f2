package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	Site    SiteConfig    `toml:"site"`
	Data    DataConfig    `toml:"data"`
	Server  ServerConfig  `toml:"server"`
	Compare CompareConfig `toml:"compare"`
	Log     LogConfig     `toml:"log"`
}

// SiteConfig points at the deck site being scraped.
type SiteConfig struct {
	BaseURL       string `toml:"base_url"`       // deck index + export endpoints
	CollectionURL string `toml:"collection_url"` // logged-in collection page
	User          string `toml:"user"`           // collection owner label
}

type DataConfig struct {
	Dir string `toml:"dir"` // snapshot directory (decks.json, collection.json)
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type CompareConfig struct {
	MaxMissing int `toml:"max_missing"` // inclusive "close" tolerance
}

type LogConfig struct {
	Level string `toml:"level"`
}

func defaults() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:       "https://decks.riftmaster.gg",
			CollectionURL: "https://decks.riftmaster.gg/collection",
		},
		Data:    DataConfig{Dir: "data"},
		Server:  ServerConfig{Port: "8080"},
		Compare: CompareConfig{MaxMissing: 4},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads tracker.toml (or $TRACKER_CONFIG) when present, then applies
// environment overrides. Missing config file is fine; everything has a
// default except the site base URL, which must not end up empty.
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := defaults()

	path := getEnv("TRACKER_CONFIG", "tracker.toml")
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug().Str("path", path).Msg("config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Site.BaseURL = getEnv("TRACKER_SITE_URL", cfg.Site.BaseURL)
	cfg.Site.CollectionURL = getEnv("TRACKER_COLLECTION_URL", cfg.Site.CollectionURL)
	cfg.Site.User = getEnv("TRACKER_USER", cfg.Site.User)
	cfg.Data.Dir = getEnv("TRACKER_DATA_DIR", cfg.Data.Dir)
	cfg.Server.Port = getEnv("TRACKER_PORT", cfg.Server.Port)
	cfg.Log.Level = getEnv("TRACKER_LOG_LEVEL", cfg.Log.Level)
	if v := os.Getenv("TRACKER_MAX_MISSING"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TRACKER_MAX_MISSING: %w", err)
		}
		cfg.Compare.MaxMissing = n
	}

	if cfg.Site.BaseURL == "" {
		return nil, fmt.Errorf("site.base_url is required")
	}
	if cfg.Compare.MaxMissing < 0 {
		return nil, fmt.Errorf("compare.max_missing must be >= 0")
	}

	logger.Info().
		Str("site_url", cfg.Site.BaseURL).
		Str("data_dir", cfg.Data.Dir).
		Str("server_port", cfg.Server.Port).
		Int("max_missing", cfg.Compare.MaxMissing).
		Str("log_level", cfg.Log.Level).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
