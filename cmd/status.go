package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals, category breakdown and plan health",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		sym := currencySymbol()
		totals := ctx.Totals()
		cat := ctx.Categories()
		m := ctx.Metrics()

		fmt.Println()
		fmt.Println(cli.RenderTitle("FINANCEX STATUS"))
		fmt.Println()

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Totals",
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Net worth", cli.Positive(cli.FormatMoney(totals.NetWorth, sym), totals.NetWorth >= 0)},
				{"Assets", cli.FormatMoney(totals.Assets, sym)},
				{"Debt", cli.FormatMoney(totals.Debt, sym)},
				{"---"},
				{"Credit cards", cli.FormatMoney(cat.Cards, sym)},
				{"Other debts", cli.FormatMoney(cat.Debts, sym)},
				{"Crypto", cli.FormatMoney(cat.Crypto, sym)},
				{"Other assets", cli.FormatMoney(cat.Assets, sym)},
			},
		}))

		if history := ctx.PlanHistory(); len(history) > 1 {
			values := make([]float64, 0, len(history))
			for _, p := range history {
				values = append(values, p.Value)
			}
			fmt.Printf("  Net worth trend  %s\n\n", cli.RenderSparkline(values))
		}

		if m.GoalValue > 0 {
			fmt.Printf("  Goal progress    %s\n", cli.RenderProgress(m.ProgressToGoal, 30))
			if m.PlanFeasible {
				fmt.Printf("  Plan: %s, %s flexible per month\n",
					cli.Positive("feasible", true),
					cli.FormatMoney(m.FlexibleSpending, sym))
			} else {
				fmt.Printf("  Plan: %s — shortfall %s/month\n",
					cli.Positive("not feasible", false),
					cli.FormatMoney(m.MonthlyShortfall, sym))
			}
			fmt.Println()
		} else {
			fmt.Println(cli.Muted("  No savings goal set. Run `financex plan goal <amount>` to start planning."))
			fmt.Println()
		}

		return false, nil
	})
}
