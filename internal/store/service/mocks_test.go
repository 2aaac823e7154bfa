package service

import (
	"context"
	"time"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"

	"github.com/stretchr/testify/mock"
)

type mockStocksRepository struct {
	mock.Mock
}

func (m *mockStocksRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *mockStocksRepository) Upsert(ctx context.Context, stock *entity.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *mockStocksRepository) FindByID(ctx context.Context, id uint) (*entity.Stock, error) {
	args := m.Called(ctx, id)
	stock, _ := args.Get(0).(*entity.Stock)
	return stock, args.Error(1)
}

func (m *mockStocksRepository) FindByCode(ctx context.Context, code string) (*entity.Stock, error) {
	args := m.Called(ctx, code)
	stock, _ := args.Get(0).(*entity.Stock)
	return stock, args.Error(1)
}

func (m *mockStocksRepository) List(ctx context.Context, param dto.ListStocksParam) ([]entity.Stock, error) {
	args := m.Called(ctx, param)
	stocks, _ := args.Get(0).([]entity.Stock)
	return stocks, args.Error(1)
}

type mockDailyStockPriceRepository struct {
	mock.Mock
}

func (m *mockDailyStockPriceRepository) Create(ctx context.Context, price *entity.DailyStockPrice) error {
	return m.Called(ctx, price).Error(0)
}

func (m *mockDailyStockPriceRepository) CreateBatch(ctx context.Context, prices []entity.DailyStockPrice, batchSize int) error {
	return m.Called(ctx, prices, batchSize).Error(0)
}

func (m *mockDailyStockPriceRepository) Find(ctx context.Context, param dto.GetDailyPricesParam) ([]entity.DailyStockPrice, error) {
	args := m.Called(ctx, param)
	prices, _ := args.Get(0).([]entity.DailyStockPrice)
	return prices, args.Error(1)
}

func (m *mockDailyStockPriceRepository) Latest(ctx context.Context, stockID uint) (*entity.DailyStockPrice, error) {
	args := m.Called(ctx, stockID)
	price, _ := args.Get(0).(*entity.DailyStockPrice)
	return price, args.Error(1)
}

type mockFinancialStatementRepository struct {
	mock.Mock
}

func (m *mockFinancialStatementRepository) Create(ctx context.Context, statement *entity.FinancialStatement) error {
	return m.Called(ctx, statement).Error(0)
}

func (m *mockFinancialStatementRepository) Upsert(ctx context.Context, statement *entity.FinancialStatement) error {
	return m.Called(ctx, statement).Error(0)
}

func (m *mockFinancialStatementRepository) Find(ctx context.Context, param dto.GetFinancialStatementsParam) ([]entity.FinancialStatement, error) {
	args := m.Called(ctx, param)
	statements, _ := args.Get(0).([]entity.FinancialStatement)
	return statements, args.Error(1)
}

func newTestCache(repo *mockStocksRepository) *StockCache {
	return NewStockCache(repo, time.Minute, time.Minute)
}
