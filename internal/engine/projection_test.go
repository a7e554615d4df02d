package engine

import (
	"math"
	"testing"
	"time"

	"github.com/kerem6790/financeX/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildProjection_TwoPointsPerCycle(t *testing.T) {
	points := BuildProjection(ProjectionInputs{
		Start:         date(2025, 1, 15),
		NetWorth:      10000,
		MonthlyIncome: 30000,
		MonthlySpend:  0,
		IncomeDay:     1,
		End:           date(2025, 3, 10),
	})

	// Feb 1 pre/post, Mar 1 pre/post, final on Mar 10.
	if len(points) != 5 {
		t.Fatalf("len = %d, want 5", len(points))
	}

	if !points[0].Date.Equal(date(2025, 2, 1)) || points[0].Kind != model.PointPreIncome {
		t.Errorf("point[0] = %v %s, want Feb 1 pre", points[0].Date, points[0].Kind)
	}
	if points[1].Kind != model.PointPostIncome || points[1].Value != 40000 {
		t.Errorf("point[1] = %s %v, want post 40000", points[1].Kind, points[1].Value)
	}
	if points[3].Value != 70000 {
		t.Errorf("point[3] = %v, want 70000 after two paydays", points[3].Value)
	}
	last := points[len(points)-1]
	if last.Kind != model.PointFinal || !last.Date.Equal(date(2025, 3, 10)) {
		t.Errorf("last = %v %s, want final on Mar 10", last.Date, last.Kind)
	}
}

func TestBuildProjection_SpendDrain(t *testing.T) {
	points := BuildProjection(ProjectionInputs{
		Start:        date(2025, 1, 1),
		NetWorth:     10000,
		MonthlySpend: DaysPerMonth * 10, // 10/day
		IncomeDay:    15,
		End:          date(2025, 1, 20),
	})

	// Pre point on Jan 15: 14 days of drain.
	if len(points) != 3 {
		t.Fatalf("len = %d, want pre, post, final", len(points))
	}
	if math.Abs(points[0].Value-(10000-140)) > 1e-6 {
		t.Errorf("pre value = %v, want 9860", points[0].Value)
	}
	// Final on Jan 20: 5 more days.
	final := points[2]
	if math.Abs(final.Value-(10000-140-50)) > 1e-6 {
		t.Errorf("final value = %v, want 9810", final.Value)
	}
}

func TestBuildProjection_PaydayOnStartDay(t *testing.T) {
	points := BuildProjection(ProjectionInputs{
		Start:         date(2025, 1, 15),
		NetWorth:      1000,
		MonthlyIncome: 500,
		IncomeDay:     15,
		End:           date(2025, 1, 31),
	})

	// The income day has not passed yet, so the first cycle is today.
	if len(points) < 2 {
		t.Fatalf("len = %d, want at least pre+post", len(points))
	}
	if !points[0].Date.Equal(date(2025, 1, 15)) {
		t.Errorf("first payday = %v, want Jan 15", points[0].Date)
	}
	if points[0].Value != 1000 {
		t.Errorf("pre value = %v, want unchanged 1000 (zero elapsed)", points[0].Value)
	}
	if points[1].Value != 1500 {
		t.Errorf("post value = %v, want 1500", points[1].Value)
	}
}

func TestBuildProjection_DayClampPerMonth(t *testing.T) {
	points := BuildProjection(ProjectionInputs{
		Start:         date(2025, 1, 15),
		NetWorth:      0,
		MonthlyIncome: 100,
		IncomeDay:     31,
		End:           date(2025, 4, 5),
	})

	var paydays []time.Time
	for _, p := range points {
		if p.Kind == model.PointPreIncome {
			paydays = append(paydays, p.Date)
		}
	}

	want := []time.Time{date(2025, 1, 31), date(2025, 2, 28), date(2025, 3, 31)}
	if len(paydays) != len(want) {
		t.Fatalf("paydays = %v, want %v", paydays, want)
	}
	for i := range want {
		if !paydays[i].Equal(want[i]) {
			t.Errorf("payday[%d] = %v, want %v (clamp must not stick)", i, paydays[i], want[i])
		}
	}
}

func TestBuildProjection_DayFloorsAtOne(t *testing.T) {
	points := BuildProjection(ProjectionInputs{
		Start:         date(2025, 1, 15),
		MonthlyIncome: 100,
		IncomeDay:     0,
		End:           date(2025, 2, 10),
	})

	if len(points) == 0 {
		t.Fatal("no points")
	}
	if !points[0].Date.Equal(date(2025, 2, 1)) {
		t.Errorf("first payday = %v, want Feb 1 (day floored to 1)", points[0].Date)
	}
}

func TestBuildProjection_EmptyHorizon(t *testing.T) {
	if points := BuildProjection(ProjectionInputs{
		Start: date(2025, 1, 15),
		End:   date(2025, 1, 15),
	}); points != nil {
		t.Errorf("points = %v, want nil when end is not after start", points)
	}

	if points := BuildProjection(ProjectionInputs{
		Start: date(2025, 1, 15),
		End:   date(2025, 1, 1),
	}); points != nil {
		t.Errorf("points = %v, want nil for inverted range", points)
	}
}

func TestBuildProjection_DepositsHalfOpenWindow(t *testing.T) {
	points := BuildProjection(ProjectionInputs{
		Start:     date(2025, 1, 10),
		NetWorth:  0,
		IncomeDay: 1,
		End:       date(2025, 1, 25),
		Deposits: []Deposit{
			{Date: date(2025, 1, 10), Amount: 111}, // on start: excluded
			{Date: date(2025, 1, 20), Amount: 500}, // inside: included
			{Date: date(2025, 1, 25), Amount: 200}, // on end: included
			{Date: date(2025, 1, 26), Amount: 999}, // past end: excluded
		},
	})

	if len(points) != 1 {
		t.Fatalf("len = %d, want single final point", len(points))
	}
	if points[0].Value != 700 {
		t.Errorf("final value = %v, want 700", points[0].Value)
	}
}

func TestBuildProjection_CycleCap(t *testing.T) {
	points := BuildProjection(ProjectionInputs{
		Start:         date(2025, 1, 1),
		MonthlyIncome: 1,
		IncomeDay:     1,
		End:           date(2200, 1, 1),
	})

	if len(points) > 2*maxProjectionCycles {
		t.Errorf("len = %d, want at most %d points", len(points), 2*maxProjectionCycles)
	}
}

func TestSumDeposits(t *testing.T) {
	deps := []Deposit{
		{Date: date(2025, 1, 5), Amount: 10},
		{Date: date(2025, 1, 10), Amount: 20},
		{Date: date(2025, 1, 15), Amount: 40},
	}

	if got := sumDeposits(deps, date(2025, 1, 5), date(2025, 1, 15)); got != 60 {
		t.Errorf("sumDeposits = %v, want 60 (exclusive start, inclusive end)", got)
	}
}
