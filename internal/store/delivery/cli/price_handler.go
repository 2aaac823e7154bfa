package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"quant-board-store/internal/store/dto"
	"quant-board-store/pkg/utils"

	"github.com/spf13/cobra"
)

// PriceHandler handles the daily price commands.
type PriceHandler struct {
	svc *Services
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(svc *Services) *PriceHandler {
	return &PriceHandler{svc: svc}
}

// RegisterCommands registers the price commands under parent.
func (h *PriceHandler) RegisterCommands(parent *cobra.Command) {
	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Store and read daily OHLCV bars",
	}

	priceCmd.AddCommand(
		h.addCommand(),
		h.importCommand(),
		h.listCommand(),
		h.latestCommand(),
	)
	parent.AddCommand(priceCmd)
}

type priceFlags struct {
	date, open, high, low, close, adjClose, volume, dividends, stockSplits string
}

func (f priceFlags) input() (dto.DailyPriceInput, error) {
	in := dto.DailyPriceInput{Date: f.date}

	floats := []struct {
		name string
		raw  string
		dst  **float64
	}{
		{"open", f.open, &in.Open},
		{"high", f.high, &in.High},
		{"low", f.low, &in.Low},
		{"close", f.close, &in.Close},
		{"adj-close", f.adjClose, &in.AdjClose},
		{"dividends", f.dividends, &in.Dividends},
		{"stock-splits", f.stockSplits, &in.StockSplits},
	}
	for _, fl := range floats {
		v, err := optionalFloat(fl.name, fl.raw)
		if err != nil {
			return dto.DailyPriceInput{}, err
		}
		*fl.dst = v
	}

	volume, err := optionalInt("volume", f.volume)
	if err != nil {
		return dto.DailyPriceInput{}, err
	}
	in.Volume = volume
	return in, nil
}

func (h *PriceHandler) addCommand() *cobra.Command {
	var f priceFlags

	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Store one daily bar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			price, err := h.svc.Prices.AddDailyPrice(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return writeJSON(cmd, price)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.date, "date", "", "Trading day, YYYY-MM-DD (required)")
	flags.StringVar(&f.open, "open", "", "Open price")
	flags.StringVar(&f.high, "high", "", "High price")
	flags.StringVar(&f.low, "low", "", "Low price")
	flags.StringVar(&f.close, "close", "", "Close price")
	flags.StringVar(&f.adjClose, "adj-close", "", "Adjusted close price")
	flags.StringVar(&f.volume, "volume", "", "Traded volume")
	flags.StringVar(&f.dividends, "dividends", "", "Dividends paid on the day (default 0)")
	flags.StringVar(&f.stockSplits, "stock-splits", "", "Split ratio effective on the day (default 0)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func (h *PriceHandler) importCommand() *cobra.Command {
	var (
		file      string
		appendNew bool
	)

	cmd := &cobra.Command{
		Use:   "import CODE",
		Short: "Store a JSON array of daily bars in one transaction",
		Long: "Reads a JSON array of bars ({\"date\": \"2023-01-03\", \"close\": 125.07, ...}) " +
			"from --file, or from stdin when --file is \"-\". With --append only bars dated " +
			"after the latest stored bar are written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bars, err := readBars(cmd, file)
			if err != nil {
				return err
			}

			var n int
			if appendNew {
				n, err = h.svc.Prices.AppendNewDailyPrices(cmd.Context(), args[0], bars)
			} else {
				n, err = h.svc.Prices.AddDailyPrices(cmd.Context(), args[0], bars)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]interface{}{
				"code":     args[0],
				"received": len(bars),
				"stored":   n,
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file with the bars, - for stdin")
	cmd.Flags().BoolVar(&appendNew, "append", false, "Skip bars not newer than the latest stored bar")
	return cmd
}

func readBars(cmd *cobra.Command, file string) ([]dto.DailyPriceInput, error) {
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		fh, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		r = fh
	}

	var bars []dto.DailyPriceInput
	if err := json.NewDecoder(r).Decode(&bars); err != nil {
		return nil, fmt.Errorf("failed to decode bars: %w", err)
	}
	return bars, nil
}

func (h *PriceHandler) listCommand() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "list CODE",
		Short: "List daily bars, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := utils.ParseOptionalDate(start)
			if err != nil {
				return err
			}
			endDate, err := utils.ParseOptionalDate(end)
			if err != nil {
				return err
			}

			prices, err := h.svc.Prices.GetDailyPrices(cmd.Context(), args[0], startDate, endDate)
			if err != nil {
				return err
			}
			return writeJSON(cmd, prices)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "First day, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "Last day, YYYY-MM-DD (inclusive)")
	return cmd
}

func (h *PriceHandler) latestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest CODE",
		Short: "Show the most recent daily bar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := h.svc.Prices.GetLatestDailyPrice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, price)
		},
	}
}
