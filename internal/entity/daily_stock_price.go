package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DailyStockPrice is one trading day's OHLCV bar for a stock. Rows are
// append-only; there is no updated_at.
type DailyStockPrice struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StockID     uint           `gorm:"not null;index" json:"stock_id"`
	Date        datatypes.Date `gorm:"not null;index" json:"date"`
	Open        *float64       `json:"open"`
	High        *float64       `json:"high"`
	Low         *float64       `json:"low"`
	Close       *float64       `json:"close"`
	AdjClose    *float64       `json:"adj_close"`
	Volume      *int64         `json:"volume"`
	Dividends   *float64       `gorm:"default:0" json:"dividends"`
	StockSplits *float64       `gorm:"default:0" json:"stock_splits"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the DailyStockPrice model.
func (DailyStockPrice) TableName() string {
	return "daily_stock_prices"
}

// Day returns the bar's calendar date.
func (p DailyStockPrice) Day() time.Time {
	return time.Time(p.Date)
}
