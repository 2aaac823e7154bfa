package repository

import (
	"context"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StocksRepository persists stock reference records.
type StocksRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	Upsert(ctx context.Context, stock *entity.Stock) error
	FindByID(ctx context.Context, id uint) (*entity.Stock, error)
	FindByCode(ctx context.Context, code string) (*entity.Stock, error)
	List(ctx context.Context, param dto.ListStocksParam) ([]entity.Stock, error)
}

type stocksRepository struct {
	db *gorm.DB
}

// NewStocksRepository creates a new GORM-based stocks repository.
func NewStocksRepository(db *gorm.DB) StocksRepository {
	return &stocksRepository{db: db}
}

// Create inserts a new stock. A taken code fails with ErrUniqueViolation.
func (r *stocksRepository) Create(ctx context.Context, stock *entity.Stock) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(stock).Error
	return translateError(err)
}

// Upsert inserts the stock or, when its code already exists, overwrites the
// descriptive columns of that row and refreshes updated_at. The stored row
// (including the original id and created_at) is read back into stock.
func (r *stocksRepository) Upsert(ctx context.Context, stock *entity.Stock) error {
	set := clause.AssignmentColumns(entity.StockDescriptiveColumns)
	set = append(set, clause.Assignment{
		Column: clause.Column{Name: "updated_at"},
		Value:  gorm.Expr("now()"),
	})

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: set,
			},
			clause.Returning{},
		).
		Create(stock).Error
	return translateError(err)
}

// FindByID retrieves a stock by its primary key.
func (r *stocksRepository) FindByID(ctx context.Context, id uint) (*entity.Stock, error) {
	var stock entity.Stock
	if err := r.db.WithContext(ctx).First(&stock, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &stock, nil
}

// FindByCode retrieves a stock by its ticker code.
func (r *stocksRepository) FindByCode(ctx context.Context, code string) (*entity.Stock, error) {
	var stock entity.Stock
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&stock).Error; err != nil {
		return nil, translateError(err)
	}
	return &stock, nil
}

// List pages through stocks in id order.
func (r *stocksRepository) List(ctx context.Context, param dto.ListStocksParam) ([]entity.Stock, error) {
	var stocks []entity.Stock
	query := r.db.WithContext(ctx).Order("id")
	if param.Offset > 0 {
		query = query.Offset(param.Offset)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}
	if err := query.Find(&stocks).Error; err != nil {
		return nil, translateError(err)
	}
	return stocks, nil
}
