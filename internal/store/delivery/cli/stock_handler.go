package cli

import (
	"quant-board-store/internal/store/dto"

	"github.com/spf13/cobra"
)

// StockHandler handles the stock commands.
type StockHandler struct {
	svc *Services
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(svc *Services) *StockHandler {
	return &StockHandler{svc: svc}
}

// RegisterCommands registers the stock commands under parent.
func (h *StockHandler) RegisterCommands(parent *cobra.Command) {
	stockCmd := &cobra.Command{
		Use:   "stock",
		Short: "Manage stock reference data",
	}

	stockCmd.AddCommand(
		h.writeCommand("create", "Create a new stock, failing if the code is taken", false),
		h.writeCommand("register", "Create a stock or refresh the stock with the same code", true),
		h.getCommand(),
		h.listCommand(),
	)
	parent.AddCommand(stockCmd)
}

type stockFlags struct {
	code, name, industry, sector, country, exchange, currency, marketCap, website string
}

func (h *StockHandler) writeCommand(use, short string, upsert bool) *cobra.Command {
	var f stockFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			marketCap, err := optionalInt("market-cap", f.marketCap)
			if err != nil {
				return err
			}

			in := dto.StockInput{
				Code:      f.code,
				Name:      f.name,
				Industry:  optionalString(cmd, "industry", f.industry),
				Sector:    optionalString(cmd, "sector", f.sector),
				Country:   optionalString(cmd, "country", f.country),
				Exchange:  optionalString(cmd, "exchange", f.exchange),
				Currency:  optionalString(cmd, "currency", f.currency),
				MarketCap: marketCap,
				Website:   optionalString(cmd, "website", f.website),
			}

			if upsert {
				stock, err := h.svc.Stocks.RegisterStock(cmd.Context(), in)
				if err != nil {
					return err
				}
				return writeJSON(cmd, stock)
			}

			stock, err := h.svc.Stocks.CreateStock(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd, stock)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.code, "code", "", "Ticker code (required)")
	flags.StringVar(&f.name, "name", "", "Company name (required)")
	flags.StringVar(&f.industry, "industry", "", "Industry")
	flags.StringVar(&f.sector, "sector", "", "Sector")
	flags.StringVar(&f.country, "country", "", "Country")
	flags.StringVar(&f.exchange, "exchange", "", "Listing exchange")
	flags.StringVar(&f.currency, "currency", "", "Trading currency")
	flags.StringVar(&f.marketCap, "market-cap", "", "Market capitalisation")
	flags.StringVar(&f.website, "website", "", "Company website URL")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (h *StockHandler) getCommand() *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "get CODE",
		Short: "Show a stock, optionally with its prices and statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if detail {
				stock, err := h.svc.Stocks.GetStockDetail(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, stock)
			}

			stock, err := h.svc.Stocks.GetStockByCode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, stock)
		},
	}
	cmd.Flags().BoolVar(&detail, "detail", false, "Include daily prices and financial statements")
	return cmd
}

func (h *StockHandler) listCommand() *cobra.Command {
	var param dto.ListStocksParam

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stocks ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stocks, err := h.svc.Stocks.ListStocks(cmd.Context(), param)
			if err != nil {
				return err
			}
			return writeJSON(cmd, stocks)
		},
	}
	cmd.Flags().IntVar(&param.Offset, "skip", 0, "Number of stocks to skip")
	cmd.Flags().IntVar(&param.Limit, "limit", 0, "Maximum number of stocks (0 uses the configured default)")
	return cmd
}
