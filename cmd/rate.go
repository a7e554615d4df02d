package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/money"
)

var rateCmd = &cobra.Command{
	Use:   "rate [value]",
	Short: "Show or set the USD conversion rate",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRate,
}

func init() {
	rootCmd.AddCommand(rateCmd)
}

func runRate(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		if len(args) == 0 {
			raw := ctx.USDRate()
			if raw == "" {
				fmt.Println(cli.Muted("  No USD rate set. Foreign amounts convert to zero."))
				return false, nil
			}
			fmt.Printf("  USD rate: %s (parsed %.4f)\n", raw, money.Parse(raw))
			return false, nil
		}

		ctx.SetUSDRate(args[0])
		parsed := money.Parse(args[0])
		if parsed <= 0 {
			fmt.Println(cli.Warn("  Rate is not a positive number; foreign amounts will convert to zero."))
		} else {
			fmt.Printf("  USD rate set to %.4f\n", parsed)
		}
		return true, nil
	})
}
