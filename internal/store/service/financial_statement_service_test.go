package service

import (
	"context"
	"testing"
	"time"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"
	"quant-board-store/internal/store/repository"
	"quant-board-store/pkg/logger"
	"quant-board-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStatementServiceForTest() (FinancialStatementService, *mockStocksRepository, *mockFinancialStatementRepository) {
	stocks := &mockStocksRepository{}
	statements := &mockFinancialStatementRepository{}
	return NewFinancialStatementService(statements, newTestCache(stocks), logger.NewNop()), stocks, statements
}

func TestFinancialStatementService_UpsertFinancialStatement(t *testing.T) {
	ctx := context.Background()
	svc, stocks, statements := newStatementServiceForTest()

	stocks.On("FindByCode", ctx, "AAPL").Return(&entity.Stock{ID: 1, Code: "AAPL"}, nil).Once()
	statements.On("Upsert", ctx, mock.MatchedBy(func(fs *entity.FinancialStatement) bool {
		return fs.StockID == 1 &&
			fs.PeriodType == entity.PeriodTypeAnnual &&
			time.Time(fs.PeriodEndDate).Equal(time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC)) &&
			*fs.TotalRevenue == 383285000000 &&
			fs.NetIncome == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.FinancialStatement).ID = 7
	}).Return(nil).Once()

	fs, err := svc.UpsertFinancialStatement(ctx, "AAPL", dto.FinancialStatementInput{
		PeriodType:    "annual",
		PeriodEndDate: "2023-09-30",
		TotalRevenue:  utils.ToPointer(int64(383285000000)),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), fs.ID)
	statements.AssertExpectations(t)
}

func TestFinancialStatementService_CreateFinancialStatement_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, stocks, statements := newStatementServiceForTest()

	stocks.On("FindByCode", ctx, "AAPL").Return(&entity.Stock{ID: 1, Code: "AAPL"}, nil).Once()
	statements.On("Create", ctx, mock.Anything).Return(&repository.ConstraintError{
		Kind:       repository.ErrUniqueViolation,
		Table:      "financial_statements",
		Constraint: "uq_financial_statements_period",
	}).Once()

	_, err := svc.CreateFinancialStatement(ctx, "AAPL", dto.FinancialStatementInput{PeriodType: "quarterly", PeriodEndDate: "2024-03-31"})
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)
}

func TestFinancialStatementService_InvalidPeriodType(t *testing.T) {
	ctx := context.Background()
	svc, stocks, statements := newStatementServiceForTest()

	_, err := svc.CreateFinancialStatement(ctx, "AAPL", dto.FinancialStatementInput{PeriodType: "monthly", PeriodEndDate: "2024-03-31"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetFinancialStatements(ctx, "AAPL", "monthly", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	stocks.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	statements.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestFinancialStatementService_GetFinancialStatements(t *testing.T) {
	ctx := context.Background()
	svc, stocks, statements := newStatementServiceForTest()

	quarterly := entity.PeriodTypeQuarterly
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	stocks.On("FindByCode", ctx, "AAPL").Return(&entity.Stock{ID: 1, Code: "AAPL"}, nil).Once()
	statements.On("Find", ctx, dto.GetFinancialStatementsParam{StockID: 1, PeriodType: &quarterly, PeriodEndDate: &end}).
		Return([]entity.FinancialStatement{{ID: 3}}, nil).Once()
	statements.On("Find", ctx, dto.GetFinancialStatementsParam{StockID: 1}).
		Return([]entity.FinancialStatement{{ID: 3}, {ID: 2}}, nil).Once()

	got, err := svc.GetFinancialStatements(ctx, "AAPL", "quarterly", &end)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	all, err := svc.GetFinancialStatements(ctx, "AAPL", "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	stocks.AssertExpectations(t)
	statements.AssertExpectations(t)
}
