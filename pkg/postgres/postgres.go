// Package postgres opens the GORM connection pool used by the store.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quant-board-store/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds the connection settings.
type Config struct {
	Host               string
	Port               int
	User               string
	Password           string
	DBName             string
	SSLMode            string
	TimeZone           string
	MaxIdleConns       int
	MaxOpenConns       int
	ConnMaxLifetime    string
	LogLevel           string
	SlowQueryThreshold string
}

// DSN returns the keyword/value connection string understood by pgx. Values
// are single-quoted so empty values and values with spaces survive. TimeZone
// stays bare because the gorm dialector reads it back with a regexp.
func (c Config) DSN() string {
	pairs := []string{
		"host=" + quoteDSNValue(c.Host),
		"port=" + strconv.Itoa(c.Port),
		"user=" + quoteDSNValue(c.User),
		"password=" + quoteDSNValue(c.Password),
		"dbname=" + quoteDSNValue(c.DBName),
		"sslmode=" + quoteDSNValue(sslMode(c.SSLMode)),
	}
	if c.TimeZone != "" {
		pairs = append(pairs, "TimeZone="+c.TimeZone)
	}
	return strings.Join(pairs, " ")
}

var dsnValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnValueEscaper.Replace(v) + "'"
}

// URL returns the postgres:// form of the DSN, as expected by golang-migrate.
func (c Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + sslMode(c.SSLMode),
	}
	return u.String()
}

func sslMode(mode string) string {
	if mode == "" {
		return "disable"
	}
	return mode
}

// DB wraps the GORM handle.
type DB struct {
	DB *gorm.DB
}

// NewDB opens the pool, applies the pool limits and pings the server.
func NewDB(cfg Config, log *logger.Logger) (*DB, error) {
	gormLogger, err := NewGormLogger(log, cfg.LogLevel, cfg.SlowQueryThreshold)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid conn_max_lifetime %q: %w", cfg.ConnMaxLifetime, err)
		}
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the underlying pool.
func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
