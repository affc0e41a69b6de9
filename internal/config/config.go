package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	LogConfig   logger.LogConfig `json:"log_config"`
	Database    DatabaseConfig   `json:"database"`
	FileStore   FileStoreConfig  `json:"file_store"`
	AI          AIConfig         `json:"ai"`
	Session     SessionConfig    `json:"session"`
	CORSOrigins []string         `json:"cors_origins"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIConfig struct {
	Provider string      `json:"provider"`
	Data     interface{} `json:"data"`
	Model    string      `json:"model"`
	// MaxInputChars caps document/context excerpts embedded into prompts.
	MaxInputChars    int `json:"max_input_chars"`
	TimeoutSeconds   int `json:"timeout_seconds"`
	KeyPointCacheCap int `json:"key_point_cache_cap"`
	KeyPointCacheTTL int `json:"key_point_cache_ttl_minutes"`
}

type SessionConfig struct {
	TTLMinutes   int    `json:"ttl_minutes"`
	CleanupCron  string `json:"cleanup_cron"`
	RateLimitSec int    `json:"rate_limit_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.Model == "" {
		return nil, fmt.Errorf("ai.model is required")
	}
	if cfg.AI.MaxInputChars <= 0 {
		cfg.AI.MaxInputChars = 3000
	}
	if cfg.AI.TimeoutSeconds <= 0 {
		cfg.AI.TimeoutSeconds = 60
	}
	if cfg.AI.KeyPointCacheCap <= 0 {
		cfg.AI.KeyPointCacheCap = 128
	}
	if cfg.AI.KeyPointCacheTTL <= 0 {
		cfg.AI.KeyPointCacheTTL = 120
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 240
	}
	if cfg.Session.CleanupCron == "" {
		cfg.Session.CleanupCron = "*/30 * * * *"
	}
	if cfg.Session.RateLimitSec <= 0 {
		cfg.Session.RateLimitSec = 1
	}
	return &cfg, nil
}
