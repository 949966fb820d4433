package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Port         string       `mapstructure:"port"`
	DBPath       string       `mapstructure:"db_path"`
	StaticDir    string       `mapstructure:"static_dir"`
	ContentPath  string       `mapstructure:"content_path"`
	SessionLimit int          `mapstructure:"session_limit"`
	Bridge       BridgeConfig `mapstructure:"bridge"`
}

// BridgeConfig holds the remote reply bridge settings
type BridgeConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from an optional yaml file plus environment
// variables. A missing config file is fine; env and defaults carry it.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "data/app.db")
	v.SetDefault("static_dir", "static")
	v.SetDefault("content_path", "")
	v.SetDefault("session_limit", 12)
	v.SetDefault("bridge.url", "")
	v.SetDefault("bridge.timeout", 15*time.Second)

	// Enable environment variable support
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides
	if port := v.GetString("PORT"); port != "" {
		config.Port = port
	}
	if dbPath := v.GetString("DB_PATH"); dbPath != "" {
		config.DBPath = dbPath
	}
	if staticDir := v.GetString("STATIC_DIR"); staticDir != "" {
		config.StaticDir = staticDir
	}
	if contentPath := v.GetString("CONTENT_PATH"); contentPath != "" {
		config.ContentPath = contentPath
	}
	if limit := v.GetInt("SESSION_LIMIT"); limit > 0 {
		config.SessionLimit = limit
	}
	if url := v.GetString("BRIDGE_URL"); url != "" {
		config.Bridge.URL = url
	}
	if timeout := v.GetDuration("BRIDGE_TIMEOUT"); timeout > 0 {
		config.Bridge.Timeout = timeout
	}

	return &config, nil
}
