package service

import (
	"context"
	"errors"
	"fmt"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"
	"quant-board-store/internal/store/repository"
	"quant-board-store/pkg/logger"
)

// Pagination bounds used when the caller passes zero values.
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// StockService defines the interface for managing stock reference data.
type StockService interface {
	CreateStock(ctx context.Context, in dto.StockInput) (*entity.Stock, error)
	RegisterStock(ctx context.Context, in dto.StockInput) (*entity.Stock, error)
	GetStockByCode(ctx context.Context, code string) (*entity.Stock, error)
	GetStockDetail(ctx context.Context, code string) (*entity.Stock, error)
	ListStocks(ctx context.Context, param dto.ListStocksParam) ([]entity.Stock, error)
}

// PageLimits bounds ListStocks page sizes.
type PageLimits struct {
	Default int
	Max     int
}

type stockService struct {
	stocksRepo     repository.StocksRepository
	pricesRepo     repository.DailyStockPriceRepository
	statementsRepo repository.FinancialStatementRepository
	stockCache     *StockCache
	limits         PageLimits
	logger         *logger.Logger
}

// NewStockService creates a new stock service.
func NewStockService(
	stocksRepo repository.StocksRepository,
	pricesRepo repository.DailyStockPriceRepository,
	statementsRepo repository.FinancialStatementRepository,
	stockCache *StockCache,
	limits PageLimits,
	logger *logger.Logger,
) StockService {
	if limits.Default <= 0 {
		limits.Default = DefaultPageSize
	}
	if limits.Max <= 0 {
		limits.Max = MaxPageSize
	}
	return &stockService{
		stocksRepo:     stocksRepo,
		pricesRepo:     pricesRepo,
		statementsRepo: statementsRepo,
		stockCache:     stockCache,
		limits:         limits,
		logger:         logger,
	}
}

// CreateStock inserts a new stock. A code that is already registered fails
// with ErrStockExists.
func (s *stockService) CreateStock(ctx context.Context, in dto.StockInput) (*entity.Stock, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	stock := toStockEntity(in)
	if err := s.stocksRepo.Create(ctx, stock); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w: code %q: %w", ErrStockExists, in.Code, err)
		}
		logWriteError(ctx, s.logger, "Failed to create stock", err, logger.StringField("code", in.Code))
		return nil, err
	}

	s.stockCache.Set(stock)
	s.logger.InfoContext(ctx, "Stock created", logger.StringField("code", stock.Code), logger.Field("stock_id", stock.ID))
	return stock, nil
}

// RegisterStock creates the stock or refreshes the descriptive fields of the
// stock already registered under the same code.
func (s *stockService) RegisterStock(ctx context.Context, in dto.StockInput) (*entity.Stock, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	stock := toStockEntity(in)
	if err := s.stocksRepo.Upsert(ctx, stock); err != nil {
		s.stockCache.Invalidate(in.Code)
		logWriteError(ctx, s.logger, "Failed to register stock", err, logger.StringField("code", in.Code))
		return nil, err
	}

	s.stockCache.Set(stock)
	s.logger.InfoContext(ctx, "Stock registered", logger.StringField("code", stock.Code), logger.Field("stock_id", stock.ID))
	return stock, nil
}

// GetStockByCode retrieves a stock by its code.
func (s *stockService) GetStockByCode(ctx context.Context, code string) (*entity.Stock, error) {
	return s.stockCache.ByCode(ctx, code)
}

// GetStockDetail retrieves a stock together with its daily prices, oldest
// first, and its financial statements, newest period first.
func (s *stockService) GetStockDetail(ctx context.Context, code string) (*entity.Stock, error) {
	stock, err := s.stockCache.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	prices, err := s.pricesRepo.Find(ctx, dto.GetDailyPricesParam{StockID: stock.ID})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get daily prices", logger.ErrorField(err), logger.StringField("code", code))
		return nil, err
	}

	statements, err := s.statementsRepo.Find(ctx, dto.GetFinancialStatementsParam{StockID: stock.ID})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get financial statements", logger.ErrorField(err), logger.StringField("code", code))
		return nil, err
	}

	stock.DailyPrices = prices
	stock.FinancialStatements = statements
	return stock, nil
}

// ListStocks pages through stocks in id order.
func (s *stockService) ListStocks(ctx context.Context, param dto.ListStocksParam) ([]entity.Stock, error) {
	if param.Offset < 0 {
		param.Offset = 0
	}
	if param.Limit <= 0 {
		param.Limit = s.limits.Default
	}
	if param.Limit > s.limits.Max {
		param.Limit = s.limits.Max
	}
	return s.stocksRepo.List(ctx, param)
}
