package entity

import (
	"time"
)

// Stock is the reference record of a listed security. Code is the ticker
// and is unique across the table.
type Stock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex:ix_stocks_code;not null" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	Industry  *string   `json:"industry,omitempty"`
	Sector    *string   `json:"sector,omitempty"`
	Country   *string   `json:"country,omitempty"`
	Exchange  *string   `json:"exchange,omitempty"`
	Currency  *string   `json:"currency,omitempty"`
	MarketCap *int64    `json:"market_cap,omitempty"`
	Website   *string   `json:"website,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	DailyPrices         []DailyStockPrice    `gorm:"foreignKey:StockID" json:"daily_prices,omitempty"`
	FinancialStatements []FinancialStatement `gorm:"foreignKey:StockID" json:"financial_statements,omitempty"`
}

// TableName specifies the table name for the Stock model.
func (Stock) TableName() string {
	return "stocks"
}

// StockDescriptiveColumns are the columns refreshed when a stock is
// registered again under the same code.
var StockDescriptiveColumns = []string{
	"name",
	"industry",
	"sector",
	"country",
	"exchange",
	"currency",
	"market_cap",
	"website",
}
