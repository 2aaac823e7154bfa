package repository

import (
	"context"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"

	"gorm.io/gorm"
)

const defaultPriceBatchSize = 500

// DailyStockPriceRepository persists daily OHLCV bars.
type DailyStockPriceRepository interface {
	Create(ctx context.Context, price *entity.DailyStockPrice) error
	CreateBatch(ctx context.Context, prices []entity.DailyStockPrice, batchSize int) error
	Find(ctx context.Context, param dto.GetDailyPricesParam) ([]entity.DailyStockPrice, error)
	Latest(ctx context.Context, stockID uint) (*entity.DailyStockPrice, error)
}

type dailyStockPriceRepository struct {
	db *gorm.DB
}

// NewDailyStockPriceRepository creates a new GORM-based daily price repository.
func NewDailyStockPriceRepository(db *gorm.DB) DailyStockPriceRepository {
	return &dailyStockPriceRepository{db: db}
}

// Create inserts one bar. An unknown stock_id fails with ErrForeignKeyViolation.
func (r *dailyStockPriceRepository) Create(ctx context.Context, price *entity.DailyStockPrice) error {
	return translateError(r.db.WithContext(ctx).Create(price).Error)
}

// CreateBatch inserts bars in chunks of batchSize. GORM wraps multi-chunk
// inserts in one transaction, so either every bar is stored or none is.
func (r *dailyStockPriceRepository) CreateBatch(ctx context.Context, prices []entity.DailyStockPrice, batchSize int) error {
	if len(prices) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = defaultPriceBatchSize
	}
	return translateError(r.db.WithContext(ctx).CreateInBatches(&prices, batchSize).Error)
}

// Find returns a stock's bars in ascending date order.
func (r *dailyStockPriceRepository) Find(ctx context.Context, param dto.GetDailyPricesParam) ([]entity.DailyStockPrice, error) {
	var prices []entity.DailyStockPrice

	query := r.db.WithContext(ctx).Where("stock_id = ?", param.StockID)
	if param.StartDate != nil {
		query = query.Where("date >= ?", *param.StartDate)
	}
	if param.EndDate != nil {
		query = query.Where("date <= ?", *param.EndDate)
	}

	if err := query.Order("date").Order("id").Find(&prices).Error; err != nil {
		return nil, translateError(err)
	}
	return prices, nil
}

// Latest returns the bar with the most recent date for the stock.
func (r *dailyStockPriceRepository) Latest(ctx context.Context, stockID uint) (*entity.DailyStockPrice, error) {
	var price entity.DailyStockPrice
	err := r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Order("date DESC").
		Order("id DESC").
		First(&price).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &price, nil
}
