package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/model"
)

var flagForecastFull bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project net worth across upcoming paydays",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().BoolVar(&flagForecastFull, "full", false, "List every projected point")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		points := ctx.Forecast()
		if len(points) == 0 {
			fmt.Println(cli.Muted("  Nothing to project. Set a goal horizon and income first."))
			return false, nil
		}

		sym := currencySymbol()

		fmt.Println()
		fmt.Println(cli.RenderTitle("NET WORTH FORECAST"))
		fmt.Println()

		values := make([]float64, 0, len(points))
		for _, p := range points {
			values = append(values, p.Value)
		}
		fmt.Printf("  %s\n\n", cli.RenderSparkline(values))

		first, last := points[0], points[len(points)-1]
		fmt.Printf("  %s → %s\n", cli.FormatDate(first.Date), cli.FormatDate(last.Date))
		fmt.Printf("  Start %s, end %s (%s)\n\n",
			cli.FormatMoney(first.Value, sym),
			cli.FormatMoney(last.Value, sym),
			cli.FormatSignedMoney(last.Value-first.Value, sym))

		if !flagForecastFull {
			return false, nil
		}

		rows := make([][]string, 0, len(points))
		for _, p := range points {
			rows = append(rows, []string{
				cli.FormatDate(p.Date),
				kindLabel(p.Kind),
				cli.FormatMoney(p.Value, sym),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Projected Points",
			Headers: []string{"Date", "Point", "Net Worth"},
			Rows:    rows,
		}))
		return false, nil
	})
}

func kindLabel(k model.PointKind) string {
	switch k {
	case model.PointPreIncome:
		return "before payday"
	case model.PointPostIncome:
		return "after payday"
	case model.PointFinal:
		return "horizon end"
	}
	return string(k)
}
