// Package cli exposes the store operations as cobra commands. Every command
// prints its result as JSON on the command's output stream.
package cli

import (
	"context"
	"encoding/json"
	"errors"

	"quant-board-store/internal/store/service"
	"quant-board-store/pkg/logger"

	"github.com/spf13/cobra"
)

// Services are the store facades the commands call.
type Services struct {
	Stocks     service.StockService
	Prices     service.DailyPriceService
	Statements service.FinancialStatementService
}

// Bootstrap builds the services from the configuration file at configPath.
// It runs once, before the selected command.
type Bootstrap func(ctx context.Context, configPath string) (*Services, error)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "configs/config.yaml"

// NewRootCommand creates the stockstore command tree.
func NewRootCommand(bootstrap Bootstrap) *cobra.Command {
	var configPath string
	svc := &Services{}

	rootCmd := &cobra.Command{
		Use:           "stockstore",
		Short:         "Manage stocks, daily prices and financial statements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := bootstrap(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			if built == nil {
				return errors.New("bootstrap returned no services")
			}
			*svc = *built
			cmd.SetContext(logger.ContextWithFields(cmd.Context(), logger.StringField("command", cmd.CommandPath())))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to the configuration file")

	NewStockHandler(svc).RegisterCommands(rootCmd)
	NewPriceHandler(svc).RegisterCommands(rootCmd)
	NewStatementHandler(svc).RegisterCommands(rootCmd)

	return rootCmd
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
