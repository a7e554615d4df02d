package engine

import (
	"testing"
	"time"

	"github.com/kerem6790/financeX/internal/model"
)

// testContext returns a context pinned to a mutable clock so history
// timestamps and the weekly window are deterministic.
func testContext(t *testing.T) (*Context, *time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := NewWithClock(func() time.Time { return now })
	return c, &now
}

func TestNew_Defaults(t *testing.T) {
	c, _ := testContext(t)

	p := c.Planning()
	if p.MonthlyIncomeDay != "1" {
		t.Errorf("MonthlyIncomeDay = %q, want 1", p.MonthlyIncomeDay)
	}
	if p.Mode != model.TargetDuration {
		t.Errorf("Mode = %q, want duration", p.Mode)
	}
	if p.DurationMonths != "4" {
		t.Errorf("DurationMonths = %q, want 4", p.DurationMonths)
	}
	if len(p.Expenses) != 1 || p.Expenses[0].Category != "General" {
		t.Errorf("Expenses = %+v, want a single General expense", p.Expenses)
	}
	if m := c.Metrics(); m.PlanDurationMonths != 4 {
		t.Errorf("initial PlanDurationMonths = %v, want 4", m.PlanDurationMonths)
	}
}

func TestAddEntry_InvalidTypeFallsBackToCash(t *testing.T) {
	c, _ := testContext(t)

	id := c.AddEntry(model.EntryType("bogus"))
	e, ok := c.EntryByID(id)
	if !ok {
		t.Fatal("entry not found")
	}
	if e.Type != model.TypeCash {
		t.Errorf("Type = %q, want cash fallback", e.Type)
	}
}

func TestAddEntry_ForcedUnits(t *testing.T) {
	c, _ := testContext(t)

	id := c.AddEntry(model.TypeCrypto)
	if e, _ := c.EntryByID(id); e.Unit != model.UnitForeign {
		t.Errorf("crypto unit = %q, want usd", e.Unit)
	}

	id = c.AddEntry(model.TypeCreditCard)
	if e, _ := c.EntryByID(id); e.Unit != model.UnitLocal {
		t.Errorf("card unit = %q, want try", e.Unit)
	}
}

func TestUpdateEntry_UnitRules(t *testing.T) {
	c, _ := testContext(t)

	id := c.AddEntry(model.TypeCash)
	c.UpdateEntry(id, SetUnit{Unit: model.UnitForeign})
	if e, _ := c.EntryByID(id); e.Unit != model.UnitForeign {
		t.Errorf("cash unit = %q, want usd after explicit set", e.Unit)
	}

	// Switching to a forced type re-derives the unit.
	c.UpdateEntry(id, SetType{Type: model.TypeCreditCard})
	if e, _ := c.EntryByID(id); e.Unit != model.UnitLocal {
		t.Errorf("unit after type switch = %q, want forced try", e.Unit)
	}

	// Explicit unit changes on forced types are ignored.
	c.UpdateEntry(id, SetUnit{Unit: model.UnitForeign})
	if e, _ := c.EntryByID(id); e.Unit != model.UnitLocal {
		t.Errorf("unit = %q, want try kept for credit card", e.Unit)
	}
}

func TestUpdateEntry_UnknownIDNoop(t *testing.T) {
	c, _ := testContext(t)
	before := len(c.Entries())
	c.UpdateEntry("missing", SetAmount{Amount: "1"})
	if len(c.Entries()) != before {
		t.Error("unknown id mutated the ledger")
	}
}

func TestRecalcCascade(t *testing.T) {
	c, now := testContext(t)

	id := c.AddEntry(model.TypeCash)
	c.UpdateEntry(id, SetAmount{Amount: "1000"})

	if got := c.Totals().NetWorth; got != 1000 {
		t.Errorf("NetWorth = %v, want 1000", got)
	}

	plan := c.PlanHistory()
	if len(plan) == 0 || plan[len(plan)-1].Value != 1000 {
		t.Fatalf("plan history tail = %+v, want value 1000", plan)
	}
	if !plan[len(plan)-1].CapturedAt.Equal(*now) {
		t.Errorf("CapturedAt = %v, want clock %v", plan[len(plan)-1].CapturedAt, *now)
	}

	assets := c.CategorySeries(model.BucketAssets)
	if len(assets) == 0 || assets[len(assets)-1].Value != 1000 {
		t.Errorf("assets series tail = %+v, want value 1000", assets)
	}

	// Re-setting the same amount must not grow the series.
	lenBefore := len(c.PlanHistory())
	c.UpdateEntry(id, SetAmount{Amount: "1000"})
	if got := len(c.PlanHistory()); got != lenBefore {
		t.Errorf("plan history len = %d, want %d (unchanged value deduped)", got, lenBefore)
	}
}

func TestSetUSDRate(t *testing.T) {
	c, _ := testContext(t)

	id := c.AddEntry(model.TypeCrypto)
	c.UpdateEntry(id, SetAmount{Amount: "100"})
	if got := c.Totals().Assets; got != 0 {
		t.Errorf("Assets = %v, want 0 without a rate", got)
	}

	c.SetUSDRate("41,5")
	if got := c.Totals().Assets; got != 4150 {
		t.Errorf("Assets = %v, want 4150 after rate", got)
	}
	if got := c.USDRate(); got != "41,5" {
		t.Errorf("USDRate = %q, want raw text preserved", got)
	}
}

func TestMoveEntry_Clamps(t *testing.T) {
	c, _ := testContext(t)

	a := c.AddEntry(model.TypeCash)
	b := c.AddEntry(model.TypeCash)
	d := c.AddEntry(model.TypeCash)

	c.MoveEntry(a, 99)
	entries := c.Entries()
	if entries[len(entries)-1].ID != a {
		t.Errorf("tail = %s, want %s (clamped to end)", entries[len(entries)-1].ID, a)
	}

	c.MoveEntry(d, -5)
	entries = c.Entries()
	if entries[0].ID != d {
		t.Errorf("head = %s, want %s (clamped to start)", entries[0].ID, d)
	}
	_ = b
}

func TestSnapshots_DeleteAndUndo(t *testing.T) {
	c, now := testContext(t)

	id := c.AddEntry(model.TypeCash)
	c.UpdateEntry(id, SetAmount{Amount: "500"})

	first := c.TakeSnapshot()
	*now = now.Add(time.Hour)
	c.UpdateEntry(id, SetAmount{Amount: "700"})
	second := c.TakeSnapshot()

	if first.Value != 500 || second.Value != 700 {
		t.Fatalf("snapshot values = %v, %v, want 500, 700", first.Value, second.Value)
	}

	c.DeleteSnapshot(first.ID)
	if got := len(c.Snapshots()); got != 1 {
		t.Fatalf("len after delete = %d, want 1", got)
	}

	c.RestoreSnapshot()
	snaps := c.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("len after undo = %d, want 2", len(snaps))
	}
	if snaps[0].ID != first.ID {
		t.Errorf("restored snapshot out of order: head = %s, want %s", snaps[0].ID, first.ID)
	}

	// The undo slot is single-step.
	c.RestoreSnapshot()
	if got := len(c.Snapshots()); got != 2 {
		t.Errorf("len after second undo = %d, want 2 (no-op)", got)
	}
}

func TestDeleteSnapshot_UnknownIDNoop(t *testing.T) {
	c, _ := testContext(t)
	c.TakeSnapshot()
	c.DeleteSnapshot("missing")
	if got := len(c.Snapshots()); got != 1 {
		t.Errorf("len = %d, want 1", got)
	}
}

func TestRemoveFixedExpense_KeepsLast(t *testing.T) {
	c, _ := testContext(t)

	only := c.Planning().Expenses[0]
	c.RemoveFixedExpense(only.ID)
	if got := len(c.Planning().Expenses); got != 1 {
		t.Fatalf("len = %d, want 1 (last expense kept)", got)
	}

	extra := c.AddFixedExpense("Rent", "12000")
	c.RemoveFixedExpense(only.ID)
	exps := c.Planning().Expenses
	if len(exps) != 1 || exps[0].ID != extra {
		t.Errorf("expenses = %+v, want only the Rent expense", exps)
	}
}

func TestWeeklySpend_Window(t *testing.T) {
	c, _ := testContext(t)

	c.AddSpending("groceries", "300", "2025-03-08") // inside the window
	c.AddSpending("books", "150", "2025-03-04")     // inside
	c.AddSpending("old", "999", "2025-03-02")       // 8 days back: outside
	c.AddSpending("future", "500", "2025-03-11")    // not yet happened: outside

	if got := c.Metrics().WeeklySpend; got != 450 {
		t.Errorf("WeeklySpend = %v, want 450", got)
	}
}

func TestAddSpending_MalformedDateFallsBackToToday(t *testing.T) {
	c, now := testContext(t)

	id := c.AddSpending("misc", "10", "not-a-date")
	var got model.SpendingEntry
	for _, s := range c.SpendingEntries() {
		if s.ID == id {
			got = s
		}
	}

	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Errorf("Date = %v, want today %v", got.Date, want)
	}
}

func TestSecondaryLedgers_SortedByDate(t *testing.T) {
	c, _ := testContext(t)

	c.AddSpending("b", "1", "2025-03-05")
	c.AddSpending("a", "1", "2025-03-01")
	c.AddSpending("c", "1", "2025-03-09")

	got := c.SpendingEntries()
	if got[0].Category != "a" || got[1].Category != "b" || got[2].Category != "c" {
		t.Errorf("order = %s,%s,%s, want a,b,c", got[0].Category, got[1].Category, got[2].Category)
	}
}

func TestAddProjection_ProbabilityNormalization(t *testing.T) {
	c, _ := testContext(t)

	cases := []struct {
		raw  string
		want float64
	}{
		{"0.5", 0.5},
		{"75", 0.75},
		{"150", 1},
		{"junk", 0},
	}

	for _, tc := range cases {
		id := c.AddProjection("bonus", "1000", tc.raw, "2025-04-01")
		for _, p := range c.ProjectionEntries() {
			if p.ID == id && p.Probability != tc.want {
				t.Errorf("probability %q = %v, want %v", tc.raw, p.Probability, tc.want)
			}
		}
	}
}

func TestSetTargetMode_Normalizes(t *testing.T) {
	c, _ := testContext(t)

	c.SetTargetMode("DATE")
	if got := c.Planning().Mode; got != model.TargetDate {
		t.Errorf("mode = %q, want date", got)
	}

	c.SetTargetMode("whatever")
	if got := c.Planning().Mode; got != model.TargetDuration {
		t.Errorf("mode = %q, want duration fallback", got)
	}
}

func TestObserver_SeesConsistentState(t *testing.T) {
	c, _ := testContext(t)

	var events []EventKind
	c.Subscribe(func(ev Event) {
		events = append(events, ev.Kind)
		// Derived state must already reflect the mutation.
		if c.Totals().NetWorth != c.Totals().Assets-c.Totals().Debt {
			t.Error("observer saw inconsistent totals")
		}
	})

	id := c.AddEntry(model.TypeCash)
	c.UpdateEntry(id, SetAmount{Amount: "100"})
	c.SetUSDRate("40")
	c.SetGoal("5000")
	c.TakeSnapshot()

	want := []EventKind{EventLedger, EventLedger, EventRate, EventPlanning, EventSnapshot}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, events[i], want[i])
		}
	}
}

func TestForecast_UsesPlanInputs(t *testing.T) {
	c, now := testContext(t)

	id := c.AddEntry(model.TypeCash)
	c.UpdateEntry(id, SetAmount{Amount: "20000"})
	c.SetGoal("120000")
	c.SetMonthlyIncome("30000")
	c.SetMonthlyIncomeDay("15")
	c.SetTargetDuration("2")

	points := c.Forecast()
	if len(points) == 0 {
		t.Fatal("forecast is empty")
	}
	if points[0].Date.Before(*now) {
		t.Errorf("first point %v precedes now %v", points[0].Date, *now)
	}
	last := points[len(points)-1]
	if last.Kind != model.PointFinal {
		t.Errorf("last kind = %s, want final", last.Kind)
	}
	// The aggressive goal leaves no flexible spending, so paydays
	// accumulate undrained: two deposits of 30000 before the horizon.
	if last.Value != 80000 {
		t.Errorf("final value = %v, want 80000", last.Value)
	}
}

func TestClearHistory(t *testing.T) {
	c, _ := testContext(t)

	id := c.AddEntry(model.TypeCash)
	c.UpdateEntry(id, SetAmount{Amount: "100"})

	c.ClearPlanHistory()
	if got := len(c.PlanHistory()); got != 0 {
		t.Errorf("plan history len = %d, want 0", got)
	}

	c.ClearCategoryHistory(model.BucketAssets)
	if got := len(c.CategorySeries(model.BucketAssets)); got != 0 {
		t.Errorf("assets series len = %d, want 0", got)
	}

	// The next change starts the series again.
	c.UpdateEntry(id, SetAmount{Amount: "200"})
	if got := len(c.PlanHistory()); got != 1 {
		t.Errorf("plan history len = %d, want 1 after new change", got)
	}
}
