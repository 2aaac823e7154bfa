package service

import (
	"context"
	"fmt"
	"time"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"
	"quant-board-store/internal/store/repository"
	"quant-board-store/pkg/logger"
)

// FinancialStatementService defines the interface for storing and reading
// financial statements.
type FinancialStatementService interface {
	CreateFinancialStatement(ctx context.Context, code string, in dto.FinancialStatementInput) (*entity.FinancialStatement, error)
	UpsertFinancialStatement(ctx context.Context, code string, in dto.FinancialStatementInput) (*entity.FinancialStatement, error)
	GetFinancialStatements(ctx context.Context, code string, periodType string, periodEndDate *time.Time) ([]entity.FinancialStatement, error)
}

type financialStatementService struct {
	statementsRepo repository.FinancialStatementRepository
	stockCache     *StockCache
	logger         *logger.Logger
}

// NewFinancialStatementService creates a new financial statement service.
func NewFinancialStatementService(
	statementsRepo repository.FinancialStatementRepository,
	stockCache *StockCache,
	logger *logger.Logger,
) FinancialStatementService {
	return &financialStatementService{
		statementsRepo: statementsRepo,
		stockCache:     stockCache,
		logger:         logger,
	}
}

// CreateFinancialStatement inserts a statement. A statement already stored
// for the same period fails with repository.ErrUniqueViolation.
func (s *financialStatementService) CreateFinancialStatement(ctx context.Context, code string, in dto.FinancialStatementInput) (*entity.FinancialStatement, error) {
	statement, err := s.build(ctx, code, in)
	if err != nil {
		return nil, err
	}

	if err := s.statementsRepo.Create(ctx, statement); err != nil {
		logWriteError(ctx, s.logger, "Failed to create financial statement", err,
			logger.StringField("code", code),
			logger.StringField("period_type", in.PeriodType),
			logger.StringField("period_end_date", in.PeriodEndDate))
		return nil, err
	}
	return statement, nil
}

// UpsertFinancialStatement stores the statement, replacing the values of
// the row already stored for the same stock, period type and period end.
func (s *financialStatementService) UpsertFinancialStatement(ctx context.Context, code string, in dto.FinancialStatementInput) (*entity.FinancialStatement, error) {
	statement, err := s.build(ctx, code, in)
	if err != nil {
		return nil, err
	}

	if err := s.statementsRepo.Upsert(ctx, statement); err != nil {
		logWriteError(ctx, s.logger, "Failed to upsert financial statement", err,
			logger.StringField("code", code),
			logger.StringField("period_type", in.PeriodType),
			logger.StringField("period_end_date", in.PeriodEndDate))
		return nil, err
	}
	return statement, nil
}

// GetFinancialStatements returns the stock's statements, newest period
// first. Empty periodType and nil periodEndDate match every statement.
func (s *financialStatementService) GetFinancialStatements(ctx context.Context, code string, periodType string, periodEndDate *time.Time) ([]entity.FinancialStatement, error) {
	param := dto.GetFinancialStatementsParam{PeriodEndDate: periodEndDate}
	if periodType != "" {
		pt := entity.PeriodType(periodType)
		if !pt.Valid() {
			return nil, fmt.Errorf("%w: unknown period type %q", ErrInvalidInput, periodType)
		}
		param.PeriodType = &pt
	}

	stock, err := s.stockCache.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	param.StockID = stock.ID

	return s.statementsRepo.Find(ctx, param)
}

func (s *financialStatementService) build(ctx context.Context, code string, in dto.FinancialStatementInput) (*entity.FinancialStatement, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	stock, err := s.stockCache.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toFinancialStatementEntity(stock.ID, in)
}
