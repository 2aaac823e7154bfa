package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"quant-board-store/internal/entity"
	"quant-board-store/internal/store/dto"
	"quant-board-store/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStockService struct{ mock.Mock }

func (m *mockStockService) CreateStock(ctx context.Context, in dto.StockInput) (*entity.Stock, error) {
	args := m.Called(ctx, in)
	stock, _ := args.Get(0).(*entity.Stock)
	return stock, args.Error(1)
}

func (m *mockStockService) RegisterStock(ctx context.Context, in dto.StockInput) (*entity.Stock, error) {
	args := m.Called(ctx, in)
	stock, _ := args.Get(0).(*entity.Stock)
	return stock, args.Error(1)
}

func (m *mockStockService) GetStockByCode(ctx context.Context, code string) (*entity.Stock, error) {
	args := m.Called(ctx, code)
	stock, _ := args.Get(0).(*entity.Stock)
	return stock, args.Error(1)
}

func (m *mockStockService) GetStockDetail(ctx context.Context, code string) (*entity.Stock, error) {
	args := m.Called(ctx, code)
	stock, _ := args.Get(0).(*entity.Stock)
	return stock, args.Error(1)
}

func (m *mockStockService) ListStocks(ctx context.Context, param dto.ListStocksParam) ([]entity.Stock, error) {
	args := m.Called(ctx, param)
	stocks, _ := args.Get(0).([]entity.Stock)
	return stocks, args.Error(1)
}

type mockPriceService struct{ mock.Mock }

func (m *mockPriceService) AddDailyPrice(ctx context.Context, code string, in dto.DailyPriceInput) (*entity.DailyStockPrice, error) {
	args := m.Called(ctx, code, in)
	price, _ := args.Get(0).(*entity.DailyStockPrice)
	return price, args.Error(1)
}

func (m *mockPriceService) AddDailyPrices(ctx context.Context, code string, in []dto.DailyPriceInput) (int, error) {
	args := m.Called(ctx, code, in)
	return args.Int(0), args.Error(1)
}

func (m *mockPriceService) AppendNewDailyPrices(ctx context.Context, code string, in []dto.DailyPriceInput) (int, error) {
	args := m.Called(ctx, code, in)
	return args.Int(0), args.Error(1)
}

func (m *mockPriceService) GetDailyPrices(ctx context.Context, code string, startDate, endDate *time.Time) ([]entity.DailyStockPrice, error) {
	args := m.Called(ctx, code, startDate, endDate)
	prices, _ := args.Get(0).([]entity.DailyStockPrice)
	return prices, args.Error(1)
}

func (m *mockPriceService) GetLatestDailyPrice(ctx context.Context, code string) (*entity.DailyStockPrice, error) {
	args := m.Called(ctx, code)
	price, _ := args.Get(0).(*entity.DailyStockPrice)
	return price, args.Error(1)
}

type mockStatementService struct{ mock.Mock }

func (m *mockStatementService) CreateFinancialStatement(ctx context.Context, code string, in dto.FinancialStatementInput) (*entity.FinancialStatement, error) {
	args := m.Called(ctx, code, in)
	fs, _ := args.Get(0).(*entity.FinancialStatement)
	return fs, args.Error(1)
}

func (m *mockStatementService) UpsertFinancialStatement(ctx context.Context, code string, in dto.FinancialStatementInput) (*entity.FinancialStatement, error) {
	args := m.Called(ctx, code, in)
	fs, _ := args.Get(0).(*entity.FinancialStatement)
	return fs, args.Error(1)
}

func (m *mockStatementService) GetFinancialStatements(ctx context.Context, code string, periodType string, periodEndDate *time.Time) ([]entity.FinancialStatement, error) {
	args := m.Called(ctx, code, periodType, periodEndDate)
	statements, _ := args.Get(0).([]entity.FinancialStatement)
	return statements, args.Error(1)
}

type testServices struct {
	stocks     *mockStockService
	prices     *mockPriceService
	statements *mockStatementService
	configPath string
}

func newTestServices() *testServices {
	return &testServices{
		stocks:     &mockStockService{},
		prices:     &mockPriceService{},
		statements: &mockStatementService{},
	}
}

func (ts *testServices) bootstrap(_ context.Context, configPath string) (*Services, error) {
	ts.configPath = configPath
	return &Services{Stocks: ts.stocks, Prices: ts.prices, Statements: ts.statements}, nil
}

func run(t *testing.T, ts *testServices, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(ts.bootstrap)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStockCreate(t *testing.T) {
	ts := newTestServices()
	exchange := "NASDAQ"
	marketCap := int64(2900000000000)
	ts.stocks.On("CreateStock", mock.Anything, dto.StockInput{
		Code:      "AAPL",
		Name:      "Apple Inc.",
		Exchange:  &exchange,
		MarketCap: &marketCap,
	}).Return(&entity.Stock{ID: 1, Code: "AAPL", Name: "Apple Inc.", Exchange: &exchange}, nil).Once()

	out, err := run(t, ts, "", "stock", "create", "--code", "AAPL", "--name", "Apple Inc.",
		"--exchange", "NASDAQ", "--market-cap", "2.9e12", "-c", "custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", ts.configPath)

	var got entity.Stock
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "AAPL", got.Code)
	ts.stocks.AssertExpectations(t)
}

func TestStockCreate_RequiresCodeAndName(t *testing.T) {
	ts := newTestServices()

	_, err := run(t, ts, "", "stock", "create", "--code", "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	ts.stocks.AssertNotCalled(t, "CreateStock", mock.Anything, mock.Anything)
}

func TestStockRegisterAndGet(t *testing.T) {
	ts := newTestServices()
	ts.stocks.On("RegisterStock", mock.Anything, dto.StockInput{Code: "7203.T", Name: "Toyota Motor Corp"}).
		Return(&entity.Stock{ID: 2, Code: "7203.T"}, nil).Once()
	ts.stocks.On("GetStockDetail", mock.Anything, "7203.T").
		Return(&entity.Stock{ID: 2, Code: "7203.T", DailyPrices: []entity.DailyStockPrice{{ID: 1}}}, nil).Once()
	ts.stocks.On("GetStockByCode", mock.Anything, "7203.T").
		Return(&entity.Stock{ID: 2, Code: "7203.T"}, nil).Once()

	_, err := run(t, ts, "", "stock", "register", "--code", "7203.T", "--name", "Toyota Motor Corp")
	require.NoError(t, err)

	out, err := run(t, ts, "", "stock", "get", "7203.T", "--detail")
	require.NoError(t, err)
	assert.Contains(t, out, `"daily_prices"`)

	out, err = run(t, ts, "", "stock", "get", "7203.T")
	require.NoError(t, err)
	assert.NotContains(t, out, `"daily_prices"`)

	ts.stocks.AssertExpectations(t)
}

func TestStockList(t *testing.T) {
	ts := newTestServices()
	ts.stocks.On("ListStocks", mock.Anything, dto.ListStocksParam{Offset: 10, Limit: 5}).
		Return([]entity.Stock{{ID: 11}, {ID: 12}}, nil).Once()

	out, err := run(t, ts, "", "stock", "list", "--skip", "10", "--limit", "5")
	require.NoError(t, err)

	var got []entity.Stock
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
}

func TestCommandPathCarriedInContext(t *testing.T) {
	ts := newTestServices()
	withCommand := mock.MatchedBy(func(ctx context.Context) bool {
		for _, f := range logger.FieldsFromContext(ctx) {
			if f.Key == "command" && f.String == "stockstore price latest" {
				return true
			}
		}
		return false
	})
	ts.prices.On("GetLatestDailyPrice", withCommand, "AAPL").
		Return(&entity.DailyStockPrice{ID: 3, StockID: 1}, nil).Once()

	_, err := run(t, ts, "", "price", "latest", "AAPL")
	require.NoError(t, err)
	ts.prices.AssertExpectations(t)
}

func TestPriceAdd_NonFiniteVolumeIsNull(t *testing.T) {
	ts := newTestServices()
	ts.prices.On("AddDailyPrice", mock.Anything, "AAPL", mock.MatchedBy(func(in dto.DailyPriceInput) bool {
		return in.Date == "2023-01-03" &&
			in.Close != nil && *in.Close == 125.07 &&
			in.Volume == nil &&
			in.Dividends == nil && in.StockSplits == nil
	})).Return(&entity.DailyStockPrice{ID: 1, StockID: 1}, nil).Once()

	_, err := run(t, ts, "", "price", "add", "AAPL", "--date", "2023-01-03", "--close", "125.07", "--volume", "NaN")
	require.NoError(t, err)
	ts.prices.AssertExpectations(t)
}

func TestPriceAdd_BadNumber(t *testing.T) {
	ts := newTestServices()

	_, err := run(t, ts, "", "price", "add", "AAPL", "--date", "2023-01-03", "--open", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--open")
}

func TestPriceImport(t *testing.T) {
	stdin := `[{"date":"2023-01-03","close":125.07},{"date":"2023-01-04","close":126.36}]`
	want := []dto.DailyPriceInput{
		{Date: "2023-01-03", Close: ptr(125.07)},
		{Date: "2023-01-04", Close: ptr(126.36)},
	}

	t.Run("all bars", func(t *testing.T) {
		ts := newTestServices()
		ts.prices.On("AddDailyPrices", mock.Anything, "AAPL", want).Return(2, nil).Once()

		out, err := run(t, ts, stdin, "price", "import", "AAPL")
		require.NoError(t, err)
		assert.Contains(t, out, `"stored": 2`)
		ts.prices.AssertExpectations(t)
	})

	t.Run("append only new", func(t *testing.T) {
		ts := newTestServices()
		ts.prices.On("AppendNewDailyPrices", mock.Anything, "AAPL", want).Return(1, nil).Once()

		out, err := run(t, ts, stdin, "price", "import", "AAPL", "--append")
		require.NoError(t, err)
		assert.Contains(t, out, `"received": 2`)
		assert.Contains(t, out, `"stored": 1`)
		ts.prices.AssertNotCalled(t, "AddDailyPrices", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed input", func(t *testing.T) {
		ts := newTestServices()
		_, err := run(t, ts, "{not json", "price", "import", "AAPL")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode bars")
	})
}

func TestPriceListAndLatest(t *testing.T) {
	ts := newTestServices()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.prices.On("GetDailyPrices", mock.Anything, "AAPL", &start, (*time.Time)(nil)).
		Return([]entity.DailyStockPrice{{ID: 1}}, nil).Once()
	ts.prices.On("GetLatestDailyPrice", mock.Anything, "AAPL").
		Return(&entity.DailyStockPrice{ID: 9}, nil).Once()

	_, err := run(t, ts, "", "price", "list", "AAPL", "--start", "2023-01-01")
	require.NoError(t, err)

	_, err = run(t, ts, "", "price", "latest", "AAPL")
	require.NoError(t, err)

	_, err = run(t, ts, "", "price", "list", "AAPL", "--end", "31/01/2023")
	assert.Error(t, err)

	ts.prices.AssertExpectations(t)
}

func TestStatementUpsert(t *testing.T) {
	ts := newTestServices()
	ts.statements.On("UpsertFinancialStatement", mock.Anything, "AAPL", mock.MatchedBy(func(in dto.FinancialStatementInput) bool {
		return in.PeriodType == "annual" &&
			in.PeriodEndDate == "2023-09-30" &&
			in.TotalRevenue != nil && *in.TotalRevenue == 383285000000 &&
			in.NetIncome == nil &&
			in.FreeCashFlow != nil && *in.FreeCashFlow == -1200
	})).Return(&entity.FinancialStatement{ID: 4}, nil).Once()

	_, err := run(t, ts, "", "statement", "upsert", "AAPL",
		"--period-type", "annual", "--period-end-date", "2023-09-30",
		"--value", "total_revenue=3.83285e11",
		"--value", "net_income=NaN",
		"--value", "free_cash_flow=-1200")
	require.NoError(t, err)
	ts.statements.AssertExpectations(t)
}

func TestStatementCreate_UnknownValue(t *testing.T) {
	ts := newTestServices()

	_, err := run(t, ts, "", "statement", "create", "AAPL",
		"--period-type", "annual", "--period-end-date", "2023-09-30",
		"--value", "ebitda=10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown statement value "ebitda"`)
	ts.statements.AssertNotCalled(t, "CreateFinancialStatement", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatementList(t *testing.T) {
	ts := newTestServices()
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	ts.statements.On("GetFinancialStatements", mock.Anything, "AAPL", "quarterly", &end).
		Return([]entity.FinancialStatement{{ID: 1}}, nil).Once()

	_, err := run(t, ts, "", "statement", "list", "AAPL", "--period-type", "quarterly", "--period-end-date", "2024-03-31")
	require.NoError(t, err)
	ts.statements.AssertExpectations(t)
}

func TestBootstrapError(t *testing.T) {
	cmd := NewRootCommand(func(context.Context, string) (*Services, error) {
		return nil, errors.New("failed to connect to database")
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"stock", "list"})

	err := cmd.Execute()
	assert.EqualError(t, err, "failed to connect to database")
}

func ptr[T any](v T) *T {
	return &v
}
