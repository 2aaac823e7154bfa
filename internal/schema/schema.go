// Package schema holds the versioned DDL of the store and applies it with
// golang-migrate. The SQL files are embedded so the binaries carry their
// own schema; a directory on disk can be used instead for local work.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"quant-board-store/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Tables lists the store tables in dependency order.
var Tables = []string{"stocks", "daily_stock_prices", "financial_statements"}

// NewEmbeddedSource returns a migration source reading the embedded SQL files.
func NewEmbeddedSource() (source.Driver, error) {
	return iofs.New(migrationsFS, migrationsDir)
}

// Migrator applies and reverts schema versions.
type Migrator struct {
	m      *migrate.Migrate
	logger *logger.Logger
}

// NewMigrator connects to databaseURL (postgres://...). When migrationsPath
// is empty the embedded migrations are used, otherwise the SQL files are
// read from that directory.
func NewMigrator(databaseURL, migrationsPath string, log *logger.Logger) (*Migrator, error) {
	if log == nil {
		log = logger.NewNop()
	}

	var (
		m   *migrate.Migrate
		err error
	)
	if migrationsPath != "" {
		sourceURL := migrationsPath
		if !strings.Contains(sourceURL, "://") {
			sourceURL = "file://" + sourceURL
		}
		m, err = migrate.New(sourceURL, databaseURL)
	} else {
		var src source.Driver
		src, err = NewEmbeddedSource()
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
		}
		m, err = migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	m.Log = &migrateLogger{logger: log}
	return &Migrator{m: m, logger: log}, nil
}

// Up applies every pending version. Being already up to date is not an error.
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("schema up failed: %w", err)
	}
	mg.logger.Info("Applied schema migrations successfully")
	return nil
}

// Down reverts the most recent version.
func (mg *Migrator) Down() error {
	err := mg.m.Steps(-1)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("schema down failed: %w", err)
	}
	mg.logger.Info("Reverted last schema migration successfully")
	return nil
}

// Reset reverts every version, dropping all store tables.
func (mg *Migrator) Reset() error {
	err := mg.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("schema reset failed: %w", err)
	}
	return nil
}

// Version reports the applied version; 0 means no version applied yet.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		mg.logger.Error("Migration source error on close", logger.ErrorField(srcErr))
	}
	if dbErr != nil {
		mg.logger.Error("Migration database error on close", logger.ErrorField(dbErr))
	}
	return errors.Join(srcErr, dbErr)
}

type migrateLogger struct {
	logger *logger.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
