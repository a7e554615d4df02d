package engine

import (
	"math"
	"time"

	"github.com/kerem6790/financeX/internal/model"
	"github.com/kerem6790/financeX/internal/money"
)

const (
	// DaysPerMonth is the mean Gregorian month length used for all
	// date-cycle arithmetic.
	DaysPerMonth = 30.4375

	// WeeksPerMonth converts monthly flexible spending to a weekly limit.
	WeeksPerMonth = 4.34524

	defaultHorizonMonths = 4

	dateLayout = "2006-01-02"
)

// PlanInputs carries everything the metrics computation reads. All raw
// fields are free text; parsing failures fall back to safe defaults.
type PlanInputs struct {
	Goal           string
	MonthlyIncome  string
	Expenses       []model.FixedExpense
	Mode           model.TargetMode
	DurationMonths string
	TargetDate     string

	NetWorth    float64
	WeeklySpend float64
	Now         time.Time
}

// ComputeMetrics derives a complete feasibility snapshot from the plan
// inputs. It is pure: the same inputs always produce the same metrics, and
// the result replaces any previous snapshot wholesale.
func ComputeMetrics(in PlanInputs) model.PlanningMetrics {
	m := model.PlanningMetrics{
		GoalValue:   money.Parse(in.Goal),
		IncomeValue: money.Parse(in.MonthlyIncome),
		WeeklySpend: in.WeeklySpend,
	}

	for _, fe := range in.Expenses {
		m.FixedTotal += money.Parse(fe.Amount)
	}

	m.PlanDurationMonths, m.PlannedCompletion = resolveHorizon(in)

	m.RemainingGoal = m.GoalValue - in.NetWorth

	clamped := math.Max(m.RemainingGoal, 0)
	if m.PlanDurationMonths > 0 {
		m.MonthlySavingTarget = clamped / m.PlanDurationMonths
	} else {
		m.MonthlySavingTarget = clamped
	}

	m.FlexibleSpending = m.IncomeValue - m.FixedTotal - m.MonthlySavingTarget

	m.MonthlyShortfall = math.Max(-m.FlexibleSpending, 0)
	m.PlanFeasible = m.MonthlyShortfall == 0
	switch {
	case m.IncomeValue > 0:
		m.ShortfallRatio = math.Min(m.MonthlyShortfall/m.IncomeValue, 1)
	case m.MonthlyShortfall > 0:
		m.ShortfallRatio = 1
	}

	m.WeeklyLimit = math.Max(m.FlexibleSpending, 0) / WeeksPerMonth

	if m.GoalValue > 0 {
		m.ProgressToGoal = clamp01(in.NetWorth / m.GoalValue)
	}
	if m.WeeklyLimit > 0 {
		m.WeeklyProgress = clamp01(in.WeeklySpend / m.WeeklyLimit)
	}

	return m
}

// resolveHorizon turns the target mode into a month count and an optional
// completion date. Duration mode defaults to 4 months; date mode floors at
// one month and falls back to the duration default when the date is
// missing or unparseable.
func resolveHorizon(in PlanInputs) (float64, time.Time) {
	if in.Mode == model.TargetDate {
		target, err := time.ParseInLocation(dateLayout, in.TargetDate, in.Now.Location())
		if err == nil {
			days := target.Sub(in.Now).Hours() / 24
			months := math.Max(days/DaysPerMonth, 1)
			return months, target
		}
		return defaultHorizonMonths, time.Time{}
	}

	months := money.Parse(in.DurationMonths)
	if months <= 0 {
		months = defaultHorizonMonths
	}
	completion := in.Now.AddDate(0, 0, int(math.Round(months*DaysPerMonth)))
	return months, completion
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
