package service

import (
	"fmt"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"
	"quant-board-store/pkg/utils"

	"gorm.io/datatypes"
)

func validateInput(v interface{}) error {
	if err := dto.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func toStockEntity(in dto.StockInput) *entity.Stock {
	return &entity.Stock{
		Code:      in.Code,
		Name:      in.Name,
		Industry:  in.Industry,
		Sector:    in.Sector,
		Country:   in.Country,
		Exchange:  in.Exchange,
		Currency:  in.Currency,
		MarketCap: in.MarketCap,
		Website:   in.Website,
	}
}

// toDailyPriceEntity expects in to be validated already.
func toDailyPriceEntity(stockID uint, in dto.DailyPriceInput) (entity.DailyStockPrice, error) {
	date, err := utils.ParseDate(in.Date)
	if err != nil {
		return entity.DailyStockPrice{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return entity.DailyStockPrice{
		StockID:     stockID,
		Date:        datatypes.Date(date),
		Open:        in.Open,
		High:        in.High,
		Low:         in.Low,
		Close:       in.Close,
		AdjClose:    in.AdjClose,
		Volume:      in.Volume,
		Dividends:   utils.ToPointer(utils.ValueOr(in.Dividends, 0)),
		StockSplits: utils.ToPointer(utils.ValueOr(in.StockSplits, 0)),
	}, nil
}

// toFinancialStatementEntity expects in to be validated already.
func toFinancialStatementEntity(stockID uint, in dto.FinancialStatementInput) (*entity.FinancialStatement, error) {
	periodEnd, err := utils.ParseDate(in.PeriodEndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &entity.FinancialStatement{
		StockID:           stockID,
		PeriodType:        entity.PeriodType(in.PeriodType),
		PeriodEndDate:     datatypes.Date(periodEnd),
		TotalRevenue:      in.TotalRevenue,
		CostOfRevenue:     in.CostOfRevenue,
		GrossProfit:       in.GrossProfit,
		OperatingIncome:   in.OperatingIncome,
		NetIncome:         in.NetIncome,
		TotalAssets:       in.TotalAssets,
		TotalLiabilities:  in.TotalLiabilities,
		ShareholderEquity: in.ShareholderEquity,
		FreeCashFlow:      in.FreeCashFlow,
	}, nil
}
