package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/money"
)

var flagIncomeDate string

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Track one-off extra income",
}

var incomeAddCmd = &cobra.Command{
	Use:   "add <source> <amount>",
	Short: "Record extra income",
	Args:  cobra.ExactArgs(2),
	RunE:  runIncomeAdd,
}

var incomeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List extra income",
	RunE:  runIncomeList,
}

var incomeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an extra income entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncomeRm,
}

func init() {
	incomeAddCmd.Flags().StringVar(&flagIncomeDate, "date", "", "Income date (yyyy-mm-dd, default today)")

	incomeCmd.AddCommand(incomeAddCmd)
	incomeCmd.AddCommand(incomeListCmd)
	incomeCmd.AddCommand(incomeRmCmd)
	rootCmd.AddCommand(incomeCmd)
}

func runIncomeAdd(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		id := ctx.AddExtraIncome(args[0], args[1], flagIncomeDate)
		fmt.Printf("  Recorded %s from %s (%s)\n", args[1], args[0], cli.ShortID(id))
		return true, nil
	})
}

func runIncomeList(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		entries := ctx.ExtraIncomeEntries()
		if len(entries) == 0 {
			fmt.Println(cli.Muted("  No extra income recorded."))
			return false, nil
		}

		sym := currencySymbol()
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				cli.ShortID(e.ID),
				cli.FormatDate(e.Date),
				e.Source,
				cli.FormatMoney(money.Parse(e.Amount), sym),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Extra Income",
			Headers: []string{"ID", "Date", "Source", "Amount"},
			Rows:    rows,
		}))
		return false, nil
	})
}

func runIncomeRm(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		for _, e := range ctx.ExtraIncomeEntries() {
			if e.ID == args[0] || strings.HasPrefix(e.ID, args[0]) {
				ctx.RemoveExtraIncome(e.ID)
				fmt.Printf("  Removed %s\n", cli.ShortID(e.ID))
				return true, nil
			}
		}
		return false, fmt.Errorf("no extra income entry matches %q", args[0])
	})
}
