package cli

import (
	"fmt"
	"strconv"
	"strings"

	"quant-board-store/pkg/utils"

	"github.com/spf13/cobra"
)

// optionalString returns nil unless the flag was set on the command line.
func optionalString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// optionalFloat parses a numeric flag value. Empty, NaN and ±Inf yield nil.
func optionalFloat(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return utils.FiniteFloat64(v), nil
}

// optionalInt parses an integer column value. Providers report these as
// floats, so "1.5e9" is accepted and truncated. Empty, NaN and ±Inf yield nil.
func optionalInt(name, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return utils.FiniteInt64(v), nil
}
