package dto

import (
	"time"

	"quant-board-store/internal/entity"
)

// StockInput carries the registrable fields of a stock.
type StockInput struct {
	Code      string  `json:"code" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Industry  *string `json:"industry,omitempty"`
	Sector    *string `json:"sector,omitempty"`
	Country   *string `json:"country,omitempty"`
	Exchange  *string `json:"exchange,omitempty"`
	Currency  *string `json:"currency,omitempty"`
	MarketCap *int64  `json:"market_cap,omitempty"`
	Website   *string `json:"website,omitempty"`
}

// DailyPriceInput is one OHLCV bar. Date is YYYY-MM-DD.
type DailyPriceInput struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Open        *float64 `json:"open,omitempty"`
	High        *float64 `json:"high,omitempty"`
	Low         *float64 `json:"low,omitempty"`
	Close       *float64 `json:"close,omitempty"`
	AdjClose    *float64 `json:"adj_close,omitempty"`
	Volume      *int64   `json:"volume,omitempty"`
	Dividends   *float64 `json:"dividends,omitempty"`
	StockSplits *float64 `json:"stock_splits,omitempty"`
}

// FinancialStatementInput is one reported period. PeriodEndDate is YYYY-MM-DD.
type FinancialStatementInput struct {
	PeriodType        string `json:"period_type" validate:"required,oneof=annual quarterly"`
	PeriodEndDate     string `json:"period_end_date" validate:"required,datetime=2006-01-02"`
	TotalRevenue      *int64 `json:"total_revenue,omitempty"`
	CostOfRevenue     *int64 `json:"cost_of_revenue,omitempty"`
	GrossProfit       *int64 `json:"gross_profit,omitempty"`
	OperatingIncome   *int64 `json:"operating_income,omitempty"`
	NetIncome         *int64 `json:"net_income,omitempty"`
	TotalAssets       *int64 `json:"total_assets,omitempty"`
	TotalLiabilities  *int64 `json:"total_liabilities,omitempty"`
	ShareholderEquity *int64 `json:"shareholder_equity,omitempty"`
	FreeCashFlow      *int64 `json:"free_cash_flow,omitempty"`
}

// ListStocksParam pages through stocks ordered by id.
type ListStocksParam struct {
	Offset int
	Limit  int
}

// GetDailyPricesParam selects a stock's bars, optionally within an
// inclusive date range.
type GetDailyPricesParam struct {
	StockID   uint
	StartDate *time.Time
	EndDate   *time.Time
}

// GetFinancialStatementsParam selects a stock's statements, optionally
// narrowed by period type and period end date.
type GetFinancialStatementsParam struct {
	StockID       uint
	PeriodType    *entity.PeriodType
	PeriodEndDate *time.Time
}
