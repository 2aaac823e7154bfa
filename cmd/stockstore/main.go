package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quant-board-store/internal/store/config"
	"quant-board-store/internal/store/delivery/cli"
	"quant-board-store/internal/store/repository"
	"quant-board-store/internal/store/service"
	"quant-board-store/pkg/logger"
	"quant-board-store/pkg/postgres"
)

func main() {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		appLogger *logger.Logger
		db        *postgres.DB
	)

	bootstrap := func(_ context.Context, configPath string) (*cli.Services, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}

		appLogger, err = logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		appLogger.Debug("Starting stock store CLI", logger.Field("name", cfg.App.Name))

		db, err = postgres.NewDB(cfg.Postgres(), appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize database", logger.ErrorField(err))
			return nil, err
		}

		// Initialize repositories
		stocksRepo := repository.NewStocksRepository(db.DB)
		pricesRepo := repository.NewDailyStockPriceRepository(db.DB)
		statementsRepo := repository.NewFinancialStatementRepository(db.DB)

		// Initialize services
		stockCache := service.NewStockCache(stocksRepo, cfg.Store.CacheTTL, cfg.Store.CacheCleanupInterval)
		limits := service.PageLimits{Default: cfg.Store.DefaultPageSize, Max: cfg.Store.MaxPageSize}

		return &cli.Services{
			Stocks:     service.NewStockService(stocksRepo, pricesRepo, statementsRepo, stockCache, limits, appLogger),
			Prices:     service.NewDailyPriceService(pricesRepo, stockCache, cfg.Store.BatchSize, appLogger),
			Statements: service.NewFinancialStatementService(statementsRepo, stockCache, appLogger),
		}, nil
	}

	err := cli.NewRootCommand(bootstrap).ExecuteContext(ctx)

	if db != nil {
		if closeErr := db.Close(); closeErr != nil && appLogger != nil {
			appLogger.Error("Failed to close database", logger.ErrorField(closeErr))
		}
	}
	if appLogger != nil {
		_ = appLogger.Sync()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}
