package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/config"
	"github.com/kerem6790/financeX/internal/engine"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	var (
		goal      string
		income    string
		incomeDay string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency symbol").
				Options(
					huh.NewOption("₺ Turkish lira", "₺"),
					huh.NewOption("$ US dollar", "$"),
					huh.NewOption("€ Euro", "€"),
					huh.NewOption("£ Pound", "£"),
				).
				Value(&cfg.General.CurrencySymbol),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&cfg.Appearance.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Savings goal").
				Description("Leave empty to skip planning for now.").
				Value(&goal),
			huh.NewInput().
				Title("Monthly income").
				Value(&income),
			huh.NewInput().
				Title("Income day of month").
				Placeholder("1").
				Value(&incomeDay),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	appConfig = cfg

	if goal != "" || income != "" || incomeDay != "" {
		err := withContext(func(ctx *engine.Context) (bool, error) {
			if goal != "" {
				ctx.SetGoal(goal)
			}
			if income != "" {
				ctx.SetMonthlyIncome(income)
			}
			if incomeDay != "" {
				ctx.SetMonthlyIncomeDay(incomeDay)
			}
			return true, nil
		})
		if err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `financex setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
