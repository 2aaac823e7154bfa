package config

import (
	"time"

	"quant-board-store/pkg/config"
	"quant-board-store/pkg/postgres"
)

// Config holds the configuration of the store binaries.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Store    Store           `mapstructure:"store"`
	Schema   Schema          `mapstructure:"schema"`
}

// Store holds service layer settings.
type Store struct {
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
	CacheCleanupInterval time.Duration `mapstructure:"cache_cleanup_interval"`
	BatchSize            int           `mapstructure:"batch_size"`
	DefaultPageSize      int           `mapstructure:"default_page_size"`
	MaxPageSize          int           `mapstructure:"max_page_size"`
}

// Schema holds migration settings. An empty MigrationsPath selects the
// migrations embedded in the binary.
type Schema struct {
	MigrationsPath string `mapstructure:"migrations_path"`
}

var storeDefaults = map[string]interface{}{
	"store.cache_ttl":              "10m",
	"store.cache_cleanup_interval": "30m",
	"store.batch_size":             500,
	"store.default_page_size":      100,
	"store.max_page_size":          1000,
	"schema.migrations_path":       "",
}

// Load reads the configuration from path, falling back to defaults and
// environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.LoadWithDefaults(path, &cfg, storeDefaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Postgres maps the database block onto the connection settings.
func (c *Config) Postgres() postgres.Config {
	db := c.Database
	return postgres.Config{
		Host:               db.Host,
		Port:               db.Port,
		User:               db.User,
		Password:           db.Password,
		DBName:             db.DBName,
		SSLMode:            db.SSLMode,
		TimeZone:           db.TimeZone,
		MaxIdleConns:       db.MaxIdleConns,
		MaxOpenConns:       db.MaxOpenConns,
		ConnMaxLifetime:    db.ConnMaxLifetime,
		LogLevel:           db.LogLevel,
		SlowQueryThreshold: db.SlowQueryThreshold,
	}
}
