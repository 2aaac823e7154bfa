package service

import (
	"context"
	"fmt"
	"time"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/repository"

	"github.com/patrickmn/go-cache"
)

// StockCache resolves stock codes to rows, keeping recent lookups in memory.
// Cached rows never carry their price or statement associations.
type StockCache struct {
	stocksRepo    repository.StocksRepository
	inmemoryCache *cache.Cache
}

// NewStockCache creates a cache in front of the stocks repository.
func NewStockCache(stocksRepo repository.StocksRepository, ttl, cleanupInterval time.Duration) *StockCache {
	return &StockCache{
		stocksRepo:    stocksRepo,
		inmemoryCache: cache.New(ttl, cleanupInterval),
	}
}

// ByCode returns the stock registered under code. An unknown code yields an
// error matching repository.ErrNotFound.
func (c *StockCache) ByCode(ctx context.Context, code string) (*entity.Stock, error) {
	if cached, found := c.inmemoryCache.Get(code); found {
		stock := cached.(entity.Stock)
		return &stock, nil
	}

	stock, err := c.stocksRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("stock %q: %w", code, err)
	}
	c.Set(stock)
	return stock, nil
}

// Set stores a copy of stock under its code.
func (c *StockCache) Set(stock *entity.Stock) {
	if stock == nil || stock.Code == "" {
		return
	}
	row := *stock
	row.DailyPrices = nil
	row.FinancialStatements = nil
	c.inmemoryCache.SetDefault(row.Code, row)
}

// Invalidate drops code from the cache.
func (c *StockCache) Invalidate(code string) {
	c.inmemoryCache.Delete(code)
}
