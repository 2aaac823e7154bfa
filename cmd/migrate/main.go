package main

import (
	"fmt"
	"log"
	"os"

	"quant-board-store/internal/schema"
	"quant-board-store/internal/store/config"
	"quant-board-store/pkg/logger"

	"github.com/spf13/cobra"
)

var configPath string

func withMigrator(fn func(m *schema.Migrator, appLogger *logger.Logger) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	m, err := schema.NewMigrator(cfg.Postgres().URL(), cfg.Schema.MigrationsPath, appLogger)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return fn(m, appLogger)
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *schema.Migrator, _ *logger.Logger) error {
			return m.Up()
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last schema migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *schema.Migrator, _ *logger.Logger) error {
			return m.Down()
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *schema.Migrator, appLogger *logger.Logger) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			appLogger.Info("Schema version", logger.Field("version", version), logger.Field("dirty", dirty))
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		})
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "migrate", SilenceUsage: true}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}
