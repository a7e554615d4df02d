package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/model"
)

var historyCmd = &cobra.Command{
	Use:   "history [bucket]",
	Short: "Show net-worth or category history (buckets: cards, debts, crypto, assets)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [bucket]",
	Short: "Clear net-worth history, or one category bucket",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryClear,
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a single history point by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRm,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyRmCmd)
	rootCmd.AddCommand(historyCmd)
}

func parseBucket(s string) (model.Bucket, bool) {
	b := model.Bucket(strings.ToLower(s))
	for _, known := range model.Buckets {
		if b == known {
			return b, true
		}
	}
	return "", false
}

func runHistory(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		title := "Net Worth History"
		points := ctx.PlanHistory()

		if len(args) == 1 {
			b, ok := parseBucket(args[0])
			if !ok {
				return false, fmt.Errorf("unknown bucket %q (want cards, debts, crypto or assets)", args[0])
			}
			title = strings.ToUpper(string(b)[:1]) + string(b)[1:] + " History"
			points = ctx.CategorySeries(b)
		}

		if len(points) == 0 {
			fmt.Println(cli.Muted("  No history recorded yet."))
			return false, nil
		}

		sym := currencySymbol()

		values := make([]float64, 0, len(points))
		rows := make([][]string, 0, len(points))
		var prev float64
		for i, p := range points {
			values = append(values, p.Value)
			delta := ""
			if i > 0 {
				delta = cli.FormatSignedMoney(p.Value-prev, sym)
			}
			prev = p.Value
			rows = append(rows, []string{
				cli.ShortID(p.ID),
				cli.FormatDateTime(p.CapturedAt),
				cli.FormatMoney(p.Value, sym),
				delta,
			})
		}

		fmt.Println()
		fmt.Printf("  %s\n\n", cli.RenderSparkline(values))
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   title,
			Headers: []string{"ID", "Captured", "Value", "Change"},
			Rows:    rows,
		}))
		return false, nil
	})
}

func runHistoryClear(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		if len(args) == 0 {
			ctx.ClearPlanHistory()
			fmt.Println("  Cleared net-worth history")
			return true, nil
		}

		b, ok := parseBucket(args[0])
		if !ok {
			return false, fmt.Errorf("unknown bucket %q", args[0])
		}
		ctx.ClearCategoryHistory(b)
		fmt.Printf("  Cleared %s history\n", b)
		return true, nil
	})
}

func runHistoryRm(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		for _, p := range ctx.PlanHistory() {
			if p.ID == args[0] || strings.HasPrefix(p.ID, args[0]) {
				ctx.DeletePlanPoint(p.ID)
				fmt.Printf("  Removed point %s\n", cli.ShortID(p.ID))
				return true, nil
			}
		}
		for _, b := range model.Buckets {
			for _, p := range ctx.CategorySeries(b) {
				if p.ID == args[0] || strings.HasPrefix(p.ID, args[0]) {
					ctx.DeleteCategoryPoint(b, p.ID)
					fmt.Printf("  Removed %s point %s\n", b, cli.ShortID(p.ID))
					return true, nil
				}
			}
		}
		return false, fmt.Errorf("no history point matches %q", args[0])
	})
}
