package engine

import (
	"math"
	"time"

	"github.com/kerem6790/financeX/internal/model"
)

// maxProjectionCycles bounds the trajectory against malformed horizons.
const maxProjectionCycles = 240

// Deposit is a discrete cash event applied on its date during projection.
type Deposit struct {
	Date   time.Time
	Amount float64
}

// ProjectionInputs drives the payday trajectory builder.
type ProjectionInputs struct {
	Start         time.Time
	NetWorth      float64
	MonthlyIncome float64
	MonthlySpend  float64
	IncomeDay     int
	End           time.Time
	Deposits      []Deposit
}

// BuildProjection generates a date-ordered net-worth trajectory that models
// discrete income deposits on the recurring income day against continuous
// linear spending between deposits. Each full cycle emits two points, one
// before and one after the deposit; a trailing partial cycle emits a single
// final point with spending drained for the elapsed fraction only.
//
// The income day is re-clamped to each month's length per occurrence, so
// day 31 lands on Feb 28 but returns to the 31st in March.
func BuildProjection(in ProjectionInputs) []model.ProjectedPoint {
	if !in.End.After(in.Start) {
		return nil
	}

	dailySpend := in.MonthlySpend / DaysPerMonth

	year, month := in.Start.Year(), in.Start.Month()
	if clampedDay(year, month, in.IncomeDay) < in.Start.Day() {
		year, month = nextMonth(year, month)
	}

	var points []model.ProjectedPoint
	value := in.NetWorth
	prev := in.Start

	for cycle := 0; cycle < maxProjectionCycles; cycle++ {
		day := clampedDay(year, month, in.IncomeDay)
		payday := time.Date(year, month, day, 0, 0, 0, 0, in.Start.Location())

		if payday.After(in.End) {
			elapsed := math.Max(in.End.Sub(prev).Hours()/24, 0)
			value -= dailySpend * elapsed
			value += sumDeposits(in.Deposits, prev, in.End)
			points = append(points, model.ProjectedPoint{
				Date:  in.End,
				Value: value,
				Kind:  model.PointFinal,
			})
			break
		}

		elapsed := math.Max(payday.Sub(prev).Hours()/24, 0)
		value -= dailySpend * elapsed
		value += sumDeposits(in.Deposits, prev, payday)
		points = append(points, model.ProjectedPoint{
			Date:  payday,
			Value: value,
			Kind:  model.PointPreIncome,
		})

		value += in.MonthlyIncome
		points = append(points, model.ProjectedPoint{
			Date:  payday,
			Value: value,
			Kind:  model.PointPostIncome,
		})

		prev = payday
		year, month = nextMonth(year, month)
	}

	return points
}

// clampedDay maps the configured income day onto a valid day of the given
// month, flooring at 1.
func clampedDay(year int, month time.Month, day int) int {
	if day < 1 {
		day = 1
	}
	if last := daysInMonth(year, month); day > last {
		return last
	}
	return day
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// sumDeposits totals deposits dated inside the half-open window (after, until].
func sumDeposits(deps []Deposit, after, until time.Time) float64 {
	var sum float64
	for _, d := range deps {
		if d.Date.After(after) && !d.Date.After(until) {
			sum += d.Amount
		}
	}
	return sum
}
