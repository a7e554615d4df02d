package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show and configure the savings plan",
	RunE:  runPlanShow,
}

var planGoalCmd = &cobra.Command{
	Use:   "goal <amount>",
	Short: "Set the savings goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setPlanField(func(ctx *engine.Context) { ctx.SetGoal(args[0]) }, "goal")
	},
}

var planIncomeCmd = &cobra.Command{
	Use:   "income <amount>",
	Short: "Set the monthly income",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setPlanField(func(ctx *engine.Context) { ctx.SetMonthlyIncome(args[0]) }, "monthly income")
	},
}

var planIncomeDayCmd = &cobra.Command{
	Use:   "income-day <day>",
	Short: "Set the day of month income arrives (clamped to month length)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setPlanField(func(ctx *engine.Context) { ctx.SetMonthlyIncomeDay(args[0]) }, "income day")
	},
}

var planDurationCmd = &cobra.Command{
	Use:   "duration <months>",
	Short: "Target the goal over a number of months",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setPlanField(func(ctx *engine.Context) {
			ctx.SetTargetMode(string(model.TargetDuration))
			ctx.SetTargetDuration(args[0])
		}, "target duration")
	},
}

var planDateCmd = &cobra.Command{
	Use:   "date <yyyy-mm-dd>",
	Short: "Target the goal by a calendar date",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setPlanField(func(ctx *engine.Context) {
			ctx.SetTargetMode(string(model.TargetDate))
			ctx.SetTargetDate(args[0])
		}, "target date")
	},
}

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage fixed monthly expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <category> <amount>",
	Short: "Add a fixed monthly expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpenseAdd,
}

var expenseSetCmd = &cobra.Command{
	Use:   "set <id> <category> <amount>",
	Short: "Update a fixed expense",
	Args:  cobra.ExactArgs(3),
	RunE:  runExpenseSet,
}

var expenseRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a fixed expense (the last one cannot be removed)",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseRm,
}

func init() {
	planCmd.AddCommand(planGoalCmd)
	planCmd.AddCommand(planIncomeCmd)
	planCmd.AddCommand(planIncomeDayCmd)
	planCmd.AddCommand(planDurationCmd)
	planCmd.AddCommand(planDateCmd)

	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseSetCmd)
	expenseCmd.AddCommand(expenseRmCmd)
	planCmd.AddCommand(expenseCmd)

	rootCmd.AddCommand(planCmd)
}

func setPlanField(apply func(*engine.Context), what string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		apply(ctx)
		fmt.Printf("  Set %s\n", what)
		return true, nil
	})
}

func runPlanShow(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		sym := currencySymbol()
		m := ctx.Metrics()
		settings := ctx.Planning()

		fmt.Println()
		fmt.Println(cli.RenderTitle("SAVINGS PLAN"))
		fmt.Println()

		horizon := cli.FormatMonths(m.PlanDurationMonths)
		if settings.Mode == model.TargetDate && settings.TargetDate != "" {
			horizon = fmt.Sprintf("%s (by %s)", horizon, settings.TargetDate)
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Plan",
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Goal", cli.FormatMoney(m.GoalValue, sym)},
				{"Monthly income", cli.FormatMoney(m.IncomeValue, sym)},
				{"Income day", settings.MonthlyIncomeDay},
				{"Horizon", horizon},
				{"Planned completion", cli.FormatDate(m.PlannedCompletion)},
				{"---"},
				{"Fixed expenses", cli.FormatMoney(m.FixedTotal, sym)},
				{"Remaining to goal", cli.FormatMoney(m.RemainingGoal, sym)},
				{"Saving target", cli.FormatMoney(m.MonthlySavingTarget, sym) + "/mo"},
				{"Flexible spending", cli.FormatMoney(m.FlexibleSpending, sym) + "/mo"},
				{"Weekly limit", cli.FormatMoney(m.WeeklyLimit, sym)},
				{"Weekly spend", cli.FormatMoney(m.WeeklySpend, sym)},
			},
		}))

		if m.PlanFeasible {
			fmt.Printf("  %s\n", cli.Positive("Plan is feasible", true))
		} else {
			fmt.Printf("  %s\n", cli.Positive(fmt.Sprintf(
				"Not feasible: shortfall %s/month (%s of income)",
				cli.FormatMoney(m.MonthlyShortfall, sym),
				cli.FormatPercent(m.ShortfallRatio)), false))
		}
		fmt.Printf("  Goal progress  %s\n", cli.RenderProgress(m.ProgressToGoal, 30))
		fmt.Printf("  Weekly budget  %s\n", cli.RenderProgress(m.WeeklyProgress, 30))
		fmt.Println()

		if len(settings.Expenses) > 0 {
			rows := make([][]string, 0, len(settings.Expenses))
			for _, e := range settings.Expenses {
				rows = append(rows, []string{cli.ShortID(e.ID), e.Category, e.Amount})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Fixed Expenses",
				Headers: []string{"ID", "Category", "Amount"},
				Rows:    rows,
			}))
		}

		return false, nil
	})
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		id := ctx.AddFixedExpense(args[0], args[1])
		fmt.Printf("  Added expense %s\n", cli.ShortID(id))
		return true, nil
	})
}

func runExpenseSet(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		id, ok := findExpense(ctx, args[0])
		if !ok {
			return false, fmt.Errorf("no expense matches %q", args[0])
		}
		ctx.UpdateFixedExpense(id, args[1], args[2])
		fmt.Printf("  Updated expense %s\n", cli.ShortID(id))
		return true, nil
	})
}

func runExpenseRm(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		id, ok := findExpense(ctx, args[0])
		if !ok {
			return false, fmt.Errorf("no expense matches %q", args[0])
		}
		before := len(ctx.Planning().Expenses)
		ctx.RemoveFixedExpense(id)
		if len(ctx.Planning().Expenses) == before {
			fmt.Println(cli.Warn("  The last fixed expense cannot be removed."))
			return false, nil
		}
		fmt.Printf("  Removed expense %s\n", cli.ShortID(id))
		return true, nil
	})
}

func findExpense(ctx *engine.Context, id string) (string, bool) {
	for _, e := range ctx.Planning().Expenses {
		if e.ID == id || strings.HasPrefix(e.ID, id) {
			return e.ID, true
		}
	}
	return "", false
}
