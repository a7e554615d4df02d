// Package tui implements the interactive dashboard.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/model"
	"github.com/kerem6790/financeX/internal/tui/components"
	"github.com/kerem6790/financeX/internal/tui/theme"
)

// App is the bubbletea model for the dashboard.
type App struct {
	ctx    *engine.Context
	save   func() error
	symbol string

	width  int
	height int
	tab    int

	editingRate bool
	rateInput   textinput.Model

	flash string
}

// New returns a dashboard over the given derivation context. save is
// invoked on quit and after snapshots so edits reach the store.
func New(ctx *engine.Context, save func() error, symbol string) App {
	ti := textinput.New()
	ti.Placeholder = "USD rate, e.g. 41,5"
	ti.CharLimit = 16
	ti.Width = 20

	return App{ctx: ctx, save: save, symbol: symbol, rateInput: ti}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.editingRate {
			return a.updateRateInput(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			if a.save != nil {
				_ = a.save()
			}
			return a, tea.Quit
		case "tab", "right", "l":
			a.tab = (a.tab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab", "left", "h":
			a.tab = (a.tab + len(components.Tabs) - 1) % len(components.Tabs)
			return a, nil
		case "r":
			a.editingRate = true
			a.rateInput.SetValue(a.ctx.USDRate())
			a.rateInput.Focus()
			return a, textinput.Blink
		case "s":
			snap := a.ctx.TakeSnapshot()
			if a.save != nil {
				_ = a.save()
			}
			a.flash = fmt.Sprintf("snapshot taken: %s", cli.FormatMoney(snap.Value, a.symbol))
			return a, nil
		}

		if idx := components.TabIdxByKey(keyRune(msg)); idx >= 0 {
			a.tab = idx
		}
		return a, nil
	}

	return a, nil
}

func (a App) updateRateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.ctx.SetUSDRate(a.rateInput.Value())
		a.editingRate = false
		a.rateInput.Blur()
		if a.save != nil {
			_ = a.save()
		}
		return a, nil
	case "esc":
		a.editingRate = false
		a.rateInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.rateInput, cmd = a.rateInput.Update(msg)
	return a, cmd
}

func keyRune(msg tea.KeyMsg) rune {
	if len(msg.Runes) == 1 {
		return msg.Runes[0]
	}
	return 0
}

// View implements tea.Model.
func (a App) View() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  financeX"))
	b.WriteString("\n\n")
	b.WriteString(components.RenderTabBar(a.tab))
	b.WriteString("\n\n")

	switch a.tab {
	case 0:
		b.WriteString(a.viewOverview())
	case 1:
		b.WriteString(a.viewPlan())
	case 2:
		b.WriteString(a.viewForecast())
	}

	b.WriteString("\n")
	b.WriteString(a.viewStatusBar())
	return b.String()
}

func (a App) viewOverview() string {
	t := theme.Active
	totals := a.ctx.Totals()
	cat := a.ctx.Categories()

	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	green := lipgloss.NewStyle().Foreground(t.Green)
	red := lipgloss.NewStyle().Foreground(t.Red)

	netStyle := green
	if totals.NetWorth < 0 {
		netStyle = red
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Net worth  "), netStyle.Render(cli.FormatMoney(totals.NetWorth, a.symbol)))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Assets     "), value.Render(cli.FormatMoney(totals.Assets, a.symbol)))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Debt       "), value.Render(cli.FormatMoney(totals.Debt, a.symbol)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Cards      "), cli.FormatMoney(cat.Cards, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Other debt "), cli.FormatMoney(cat.Debts, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Crypto     "), cli.FormatMoney(cat.Crypto, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Assets     "), cli.FormatMoney(cat.Assets, a.symbol))

	history := a.ctx.PlanHistory()
	if len(history) > 1 {
		values := make([]float64, 0, len(history))
		for _, p := range history {
			values = append(values, p.Value)
		}
		width := a.width - 6
		if width < 10 {
			width = 40
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n", label.Render("Net worth history"))
		fmt.Fprintf(&b, "  %s\n", components.Sparkline(components.Downsample(values, width), t.Accent))
	}

	if a.editingRate {
		fmt.Fprintf(&b, "\n  USD rate: %s\n", a.rateInput.View())
	} else {
		rate := a.ctx.USDRate()
		if rate == "" {
			rate = "unset"
		}
		fmt.Fprintf(&b, "\n  %s %s\n", label.Render("USD rate   "), rate)
	}

	return b.String()
}

func (a App) viewPlan() string {
	t := theme.Active
	m := a.ctx.Metrics()

	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	green := lipgloss.NewStyle().Foreground(t.Green)
	red := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Goal            "), cli.FormatMoney(m.GoalValue, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Monthly income  "), cli.FormatMoney(m.IncomeValue, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Fixed expenses  "), cli.FormatMoney(m.FixedTotal, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Saving target   "), cli.FormatMoney(m.MonthlySavingTarget, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Flexible        "), cli.FormatMoney(m.FlexibleSpending, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Weekly limit    "), cli.FormatMoney(m.WeeklyLimit, a.symbol))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Horizon         "), cli.FormatMonths(m.PlanDurationMonths))
	fmt.Fprintf(&b, "  %s %s\n", label.Render("Completion      "), cli.FormatDate(m.PlannedCompletion))
	b.WriteString("\n")

	if m.PlanFeasible {
		fmt.Fprintf(&b, "  %s\n", green.Render("Plan is feasible"))
	} else {
		fmt.Fprintf(&b, "  %s\n", red.Render(fmt.Sprintf(
			"Shortfall %s/month (%s of income)",
			cli.FormatMoney(m.MonthlyShortfall, a.symbol), cli.FormatPercent(m.ShortfallRatio))))
	}
	b.WriteString("\n")

	barW := a.width - 30
	if barW < 10 {
		barW = 30
	}
	fmt.Fprintf(&b, "  %s\n", components.LabeledBar("Goal progress", m.ProgressToGoal, 14, barW))
	fmt.Fprintf(&b, "  %s\n", components.LabeledBar("Weekly spend", m.WeeklyProgress, 14, barW))

	return b.String()
}

func (a App) viewForecast() string {
	t := theme.Active
	points := a.ctx.Forecast()

	label := lipgloss.NewStyle().Foreground(t.TextMuted)

	if len(points) == 0 {
		return label.Render("  No forecast available — set a goal and income first.") + "\n"
	}

	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
	}

	width := a.width - 6
	if width < 10 {
		width = 40
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", label.Render("Projected net worth (payday cycles)"))
	fmt.Fprintf(&b, "  %s\n\n", components.Sparkline(components.Downsample(values, width), t.Blue))

	first, last := points[0], points[len(points)-1]
	fmt.Fprintf(&b, "  %s %s → %s\n",
		label.Render("Range     "),
		cli.FormatDate(first.Date), cli.FormatDate(last.Date))
	fmt.Fprintf(&b, "  %s %s\n",
		label.Render("Ends at   "),
		cli.FormatMoney(last.Value, a.symbol))

	pre, post := 0, 0
	for _, p := range points {
		switch p.Kind {
		case model.PointPreIncome:
			pre++
		case model.PointPostIncome:
			post++
		}
	}
	fmt.Fprintf(&b, "  %s %d paydays\n", label.Render("Deposits  "), post)
	_ = pre

	return b.String()
}

func (a App) viewStatusBar() string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextDim)

	left := " [tab]switch  [r]ate  [s]napshot  [q]uit"
	if a.flash != "" {
		return style.Render(left) + "  " + lipgloss.NewStyle().Foreground(t.Green).Render(a.flash)
	}
	return style.Render(left)
}
