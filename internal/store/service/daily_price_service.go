package service

import (
	"context"
	"errors"
	"time"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"
	"quant-board-store/internal/store/repository"
	"quant-board-store/pkg/logger"
	"quant-board-store/pkg/utils"
)

// DailyPriceService defines the interface for storing and reading daily bars.
type DailyPriceService interface {
	AddDailyPrice(ctx context.Context, code string, in dto.DailyPriceInput) (*entity.DailyStockPrice, error)
	AddDailyPrices(ctx context.Context, code string, in []dto.DailyPriceInput) (int, error)
	AppendNewDailyPrices(ctx context.Context, code string, in []dto.DailyPriceInput) (int, error)
	GetDailyPrices(ctx context.Context, code string, startDate, endDate *time.Time) ([]entity.DailyStockPrice, error)
	GetLatestDailyPrice(ctx context.Context, code string) (*entity.DailyStockPrice, error)
}

type dailyPriceService struct {
	pricesRepo repository.DailyStockPriceRepository
	stockCache *StockCache
	batchSize  int
	logger     *logger.Logger
}

// NewDailyPriceService creates a new daily price service. Batch inserts are
// split into chunks of batchSize rows.
func NewDailyPriceService(
	pricesRepo repository.DailyStockPriceRepository,
	stockCache *StockCache,
	batchSize int,
	logger *logger.Logger,
) DailyPriceService {
	return &dailyPriceService{
		pricesRepo: pricesRepo,
		stockCache: stockCache,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// AddDailyPrice stores one bar for the stock registered under code.
func (s *dailyPriceService) AddDailyPrice(ctx context.Context, code string, in dto.DailyPriceInput) (*entity.DailyStockPrice, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	stock, err := s.stockCache.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	price, err := toDailyPriceEntity(stock.ID, in)
	if err != nil {
		return nil, err
	}

	if err := s.pricesRepo.Create(ctx, &price); err != nil {
		logWriteError(ctx, s.logger, "Failed to add daily price", err,
			logger.StringField("code", code), logger.StringField("date", in.Date))
		return nil, err
	}
	return &price, nil
}

// AddDailyPrices stores every bar in a single transaction and returns the
// number of rows written.
func (s *dailyPriceService) AddDailyPrices(ctx context.Context, code string, in []dto.DailyPriceInput) (int, error) {
	stock, prices, err := s.prepare(ctx, code, in)
	if err != nil {
		return 0, err
	}
	return s.insert(ctx, stock, prices)
}

// AppendNewDailyPrices stores only the bars dated strictly after the latest
// bar already stored for the stock, so the same history can be replayed
// without producing duplicate days.
func (s *dailyPriceService) AppendNewDailyPrices(ctx context.Context, code string, in []dto.DailyPriceInput) (int, error) {
	stock, prices, err := s.prepare(ctx, code, in)
	if err != nil {
		return 0, err
	}

	latest, err := s.pricesRepo.Latest(ctx, stock.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.insert(ctx, stock, prices)
	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to get latest daily price", logger.ErrorField(err), logger.StringField("code", code))
		return 0, err
	}

	cutoff := utils.TruncateToDate(latest.Day())
	fresh := prices[:0]
	for _, p := range prices {
		if p.Day().After(cutoff) {
			fresh = append(fresh, p)
		}
	}

	s.logger.DebugContext(ctx, "Filtered daily prices against latest stored date",
		logger.StringField("code", code),
		logger.StringField("latest_date", cutoff.Format(utils.DateLayout)),
		logger.IntField("received", len(prices)),
		logger.IntField("new", len(fresh)))

	return s.insert(ctx, stock, fresh)
}

// GetDailyPrices returns the stock's bars within the optional inclusive
// date range, oldest first.
func (s *dailyPriceService) GetDailyPrices(ctx context.Context, code string, startDate, endDate *time.Time) ([]entity.DailyStockPrice, error) {
	stock, err := s.stockCache.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.pricesRepo.Find(ctx, dto.GetDailyPricesParam{
		StockID:   stock.ID,
		StartDate: startDate,
		EndDate:   endDate,
	})
}

// GetLatestDailyPrice returns the most recent bar of the stock.
func (s *dailyPriceService) GetLatestDailyPrice(ctx context.Context, code string) (*entity.DailyStockPrice, error) {
	stock, err := s.stockCache.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.pricesRepo.Latest(ctx, stock.ID)
}

func (s *dailyPriceService) prepare(ctx context.Context, code string, in []dto.DailyPriceInput) (*entity.Stock, []entity.DailyStockPrice, error) {
	for i := range in {
		if err := validateInput(in[i]); err != nil {
			return nil, nil, err
		}
	}

	stock, err := s.stockCache.ByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	prices := make([]entity.DailyStockPrice, 0, len(in))
	for i := range in {
		price, err := toDailyPriceEntity(stock.ID, in[i])
		if err != nil {
			return nil, nil, err
		}
		prices = append(prices, price)
	}
	return stock, prices, nil
}

func (s *dailyPriceService) insert(ctx context.Context, stock *entity.Stock, prices []entity.DailyStockPrice) (int, error) {
	if len(prices) == 0 {
		return 0, nil
	}
	if err := s.pricesRepo.CreateBatch(ctx, prices, s.batchSize); err != nil {
		logWriteError(ctx, s.logger, "Failed to add daily prices", err,
			logger.StringField("code", stock.Code), logger.IntField("count", len(prices)))
		return 0, err
	}
	s.logger.InfoContext(ctx, "Daily prices stored", logger.StringField("code", stock.Code), logger.IntField("count", len(prices)))
	return len(prices), nil
}
