package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PeriodType is the reporting cadence of a financial statement.
type PeriodType string

const (
	PeriodTypeAnnual    PeriodType = "annual"
	PeriodTypeQuarterly PeriodType = "quarterly"
)

// Valid reports whether p is one of the known period types.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodTypeAnnual, PeriodTypeQuarterly:
		return true
	}
	return false
}

// FinancialStatement is a periodic report snapshot. At most one row exists
// per (stock_id, period_type, period_end_date); a restated filing for the
// same period updates that row in place.
type FinancialStatement struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	StockID           uint           `gorm:"not null;index;uniqueIndex:uq_financial_statements_period" json:"stock_id"`
	PeriodType        PeriodType     `gorm:"type:varchar;not null;uniqueIndex:uq_financial_statements_period" json:"period_type"`
	PeriodEndDate     datatypes.Date `gorm:"not null;index;uniqueIndex:uq_financial_statements_period" json:"period_end_date"`
	TotalRevenue      *int64         `json:"total_revenue"`
	CostOfRevenue     *int64         `json:"cost_of_revenue"`
	GrossProfit       *int64         `json:"gross_profit"`
	OperatingIncome   *int64         `json:"operating_income"`
	NetIncome         *int64         `json:"net_income"`
	TotalAssets       *int64         `json:"total_assets"`
	TotalLiabilities  *int64         `json:"total_liabilities"`
	ShareholderEquity *int64         `json:"shareholder_equity"`
	FreeCashFlow      *int64         `json:"free_cash_flow"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the FinancialStatement model.
func (FinancialStatement) TableName() string {
	return "financial_statements"
}

// FinancialStatementConflictColumns is the composite unique key.
var FinancialStatementConflictColumns = []string{"stock_id", "period_type", "period_end_date"}

// FinancialStatementValueColumns are replaced when a statement for an
// existing period key is saved again.
var FinancialStatementValueColumns = []string{
	"total_revenue",
	"cost_of_revenue",
	"gross_profit",
	"operating_income",
	"net_income",
	"total_assets",
	"total_liabilities",
	"shareholder_equity",
	"free_cash_flow",
}
