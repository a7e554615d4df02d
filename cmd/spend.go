package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/money"
)

var flagSpendDate string

var spendCmd = &cobra.Command{
	Use:   "spend",
	Short: "Track discretionary spending",
}

var spendAddCmd = &cobra.Command{
	Use:   "add <category> <amount>",
	Short: "Record a purchase",
	Args:  cobra.ExactArgs(2),
	RunE:  runSpendAdd,
}

var spendListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded spending",
	RunE:  runSpendList,
}

var spendRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a spending entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpendRm,
}

func init() {
	spendAddCmd.Flags().StringVar(&flagSpendDate, "date", "", "Purchase date (yyyy-mm-dd, default today)")

	spendCmd.AddCommand(spendAddCmd)
	spendCmd.AddCommand(spendListCmd)
	spendCmd.AddCommand(spendRmCmd)
	rootCmd.AddCommand(spendCmd)
}

func runSpendAdd(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		id := ctx.AddSpending(args[0], args[1], flagSpendDate)
		fmt.Printf("  Recorded %s on %s (%s)\n", args[1], args[0], cli.ShortID(id))

		m := ctx.Metrics()
		if m.WeeklyLimit > 0 && m.WeeklySpend > m.WeeklyLimit {
			fmt.Println(cli.Warn(fmt.Sprintf("  Weekly spend %s is over the %s limit.",
				cli.FormatMoney(m.WeeklySpend, currencySymbol()),
				cli.FormatMoney(m.WeeklyLimit, currencySymbol()))))
		}
		return true, nil
	})
}

func runSpendList(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		entries := ctx.SpendingEntries()
		if len(entries) == 0 {
			fmt.Println(cli.Muted("  No spending recorded."))
			return false, nil
		}

		sym := currencySymbol()
		var total float64
		rows := make([][]string, 0, len(entries)+2)
		for _, s := range entries {
			total += money.Parse(s.Amount)
			rows = append(rows, []string{
				cli.ShortID(s.ID),
				cli.FormatDate(s.Date),
				s.Category,
				cli.FormatMoney(money.Parse(s.Amount), sym),
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"", "", "Total", cli.FormatMoney(total, sym)})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Spending",
			Headers: []string{"ID", "Date", "Category", "Amount"},
			Rows:    rows,
		}))
		return false, nil
	})
}

func runSpendRm(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		for _, s := range ctx.SpendingEntries() {
			if s.ID == args[0] || strings.HasPrefix(s.ID, args[0]) {
				ctx.RemoveSpending(s.ID)
				fmt.Printf("  Removed %s\n", cli.ShortID(s.ID))
				return true, nil
			}
		}
		return false, fmt.Errorf("no spending entry matches %q", args[0])
	})
}
