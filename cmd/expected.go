package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/money"
)

var flagExpectedDate string

var expectedCmd = &cobra.Command{
	Use:   "expected",
	Short: "Track probability-weighted future cash events",
}

var expectedAddCmd = &cobra.Command{
	Use:   "add <label> <amount> <probability>",
	Short: "Add an expected cash event (probability 0-1 or 0-100)",
	Args:  cobra.ExactArgs(3),
	RunE:  runExpectedAdd,
}

var expectedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expected cash events",
	RunE:  runExpectedList,
}

var expectedRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an expected cash event",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpectedRm,
}

func init() {
	expectedAddCmd.Flags().StringVar(&flagExpectedDate, "date", "", "Expected date (yyyy-mm-dd, default today)")

	expectedCmd.AddCommand(expectedAddCmd)
	expectedCmd.AddCommand(expectedListCmd)
	expectedCmd.AddCommand(expectedRmCmd)
	rootCmd.AddCommand(expectedCmd)
}

func runExpectedAdd(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		id := ctx.AddProjection(args[0], args[1], args[2], flagExpectedDate)
		fmt.Printf("  Added expected event %s\n", cli.ShortID(id))
		return true, nil
	})
}

func runExpectedList(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		entries := ctx.ProjectionEntries()
		if len(entries) == 0 {
			fmt.Println(cli.Muted("  No expected cash events."))
			return false, nil
		}

		sym := currencySymbol()
		rows := make([][]string, 0, len(entries))
		for _, p := range entries {
			rows = append(rows, []string{
				cli.ShortID(p.ID),
				cli.FormatDate(p.Date),
				p.Label,
				cli.FormatMoney(money.Parse(p.Amount), sym),
				cli.FormatPercent(p.Probability),
				cli.FormatMoney(money.Parse(p.Amount)*p.Probability, sym),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Expected Cash",
			Headers: []string{"ID", "Date", "Label", "Amount", "Prob", "Weighted"},
			Rows:    rows,
		}))
		return false, nil
	})
}

func runExpectedRm(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		for _, p := range ctx.ProjectionEntries() {
			if p.ID == args[0] || strings.HasPrefix(p.ID, args[0]) {
				ctx.RemoveProjection(p.ID)
				fmt.Printf("  Removed %s\n", cli.ShortID(p.ID))
				return true, nil
			}
		}
		return false, fmt.Errorf("no expected event matches %q", args[0])
	})
}
