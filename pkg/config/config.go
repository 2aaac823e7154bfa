package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// App holds application configuration.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Database holds database configuration.
type Database struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	DBName             string `mapstructure:"name"`
	SSLMode            string `mapstructure:"ssl_mode"`
	TimeZone           string `mapstructure:"time_zone"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime    string `mapstructure:"conn_max_lifetime"`
	LogLevel           string `mapstructure:"log_level"`
	SlowQueryThreshold string `mapstructure:"slow_query_threshold"`
}

// defaults are registered on every load so a partial file (or none at all,
// when running purely from environment variables) still yields a usable config.
var defaults = map[string]interface{}{
	"app.name":                      "quant-board-store",
	"app.env":                       "development",
	"logger.level":                  "info",
	"logger.encoding":               "json",
	"database.host":                 "localhost",
	"database.port":                 5432,
	"database.user":                 "postgres",
	"database.password":             "",
	"database.name":                 "quant_board",
	"database.ssl_mode":             "disable",
	"database.time_zone":            "UTC",
	"database.max_idle_conns":       5,
	"database.max_open_conns":       20,
	"database.conn_max_lifetime":    "30m",
	"database.log_level":            "warn",
	"database.slow_query_threshold": "200ms",
}

// Load loads configuration from a file into the given config struct.
// Every key can be overridden from the environment, e.g. DATABASE_HOST.
func Load(path string, config interface{}) error {
	return LoadWithDefaults(path, config, nil)
}

// LoadWithDefaults is Load with extra, service specific default values.
func LoadWithDefaults(path string, config interface{}, extra map[string]interface{}) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, value := range extra {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("Failed to read config file, falling back to environment variables")
	}

	return v.Unmarshal(config)
}
