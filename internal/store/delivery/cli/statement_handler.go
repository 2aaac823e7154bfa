package cli

import (
	"fmt"
	"sort"
	"strings"

	"quant-board-store/internal/store/dto"
	"quant-board-store/pkg/utils"

	"github.com/spf13/cobra"
)

// StatementHandler handles the financial statement commands.
type StatementHandler struct {
	svc *Services
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(svc *Services) *StatementHandler {
	return &StatementHandler{svc: svc}
}

// RegisterCommands registers the statement commands under parent.
func (h *StatementHandler) RegisterCommands(parent *cobra.Command) {
	statementCmd := &cobra.Command{
		Use:   "statement",
		Short: "Store and read financial statements",
	}

	statementCmd.AddCommand(
		h.writeCommand("create", "Store a statement, failing if the period is already stored", false),
		h.writeCommand("upsert", "Store a statement, replacing the values of an already stored period", true),
		h.listCommand(),
	)
	parent.AddCommand(statementCmd)
}

// statementValues maps --value keys onto the input fields.
func statementValues(in *dto.FinancialStatementInput) map[string]**int64 {
	return map[string]**int64{
		"total_revenue":      &in.TotalRevenue,
		"cost_of_revenue":    &in.CostOfRevenue,
		"gross_profit":       &in.GrossProfit,
		"operating_income":   &in.OperatingIncome,
		"net_income":         &in.NetIncome,
		"total_assets":       &in.TotalAssets,
		"total_liabilities":  &in.TotalLiabilities,
		"shareholder_equity": &in.ShareholderEquity,
		"free_cash_flow":     &in.FreeCashFlow,
	}
}

func statementInput(periodType, periodEnd string, values map[string]string) (dto.FinancialStatementInput, error) {
	in := dto.FinancialStatementInput{PeriodType: periodType, PeriodEndDate: periodEnd}
	fields := statementValues(&in)

	for key, raw := range values {
		dst, ok := fields[key]
		if !ok {
			known := make([]string, 0, len(fields))
			for k := range fields {
				known = append(known, k)
			}
			sort.Strings(known)
			return dto.FinancialStatementInput{}, fmt.Errorf("unknown statement value %q, expected one of %s", key, strings.Join(known, ", "))
		}
		v, err := optionalInt("value "+key, raw)
		if err != nil {
			return dto.FinancialStatementInput{}, err
		}
		*dst = v
	}
	return in, nil
}

func (h *StatementHandler) writeCommand(use, short string, upsert bool) *cobra.Command {
	var (
		periodType string
		periodEnd  string
		values     map[string]string
	)

	cmd := &cobra.Command{
		Use:   use + " CODE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := statementInput(periodType, periodEnd, values)
			if err != nil {
				return err
			}

			if upsert {
				statement, err := h.svc.Statements.UpsertFinancialStatement(cmd.Context(), args[0], in)
				if err != nil {
					return err
				}
				return writeJSON(cmd, statement)
			}

			statement, err := h.svc.Statements.CreateFinancialStatement(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return writeJSON(cmd, statement)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&periodType, "period-type", "", "annual or quarterly (required)")
	flags.StringVar(&periodEnd, "period-end-date", "", "Period end, YYYY-MM-DD (required)")
	flags.StringToStringVar(&values, "value", nil, "Reported value as name=amount, e.g. total_revenue=383285000000")
	_ = cmd.MarkFlagRequired("period-type")
	_ = cmd.MarkFlagRequired("period-end-date")

	return cmd
}

func (h *StatementHandler) listCommand() *cobra.Command {
	var periodType, periodEnd string

	cmd := &cobra.Command{
		Use:   "list CODE",
		Short: "List financial statements, newest period first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodEndDate, err := utils.ParseOptionalDate(periodEnd)
			if err != nil {
				return err
			}

			statements, err := h.svc.Statements.GetFinancialStatements(cmd.Context(), args[0], periodType, periodEndDate)
			if err != nil {
				return err
			}
			return writeJSON(cmd, statements)
		},
	}
	cmd.Flags().StringVar(&periodType, "period-type", "", "Only annual or quarterly statements")
	cmd.Flags().StringVar(&periodEnd, "period-end-date", "", "Only statements for this period end, YYYY-MM-DD")
	return cmd
}
