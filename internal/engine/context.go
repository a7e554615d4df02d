package engine

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kerem6790/financeX/internal/model"
	"github.com/kerem6790/financeX/internal/money"
)

// EventKind labels a change published to observers.
type EventKind string

const (
	EventLedger   EventKind = "ledger"
	EventRate     EventKind = "rate"
	EventSnapshot EventKind = "snapshot"
	EventHistory  EventKind = "history"
	EventPlanning EventKind = "planning"
	EventHydrated EventKind = "hydrated"
)

// Event is published after a mutation's recompute cascade completes, so
// observers always see a consistent state.
type Event struct {
	Kind EventKind
	At   time.Time
}

// Observer receives change events. Observers run synchronously on the
// mutating goroutine and must not mutate the context reentrantly.
type Observer func(Event)

// PlanningSettings is a read-only view of the raw planning inputs.
type PlanningSettings struct {
	Goal             string
	MonthlyIncome    string
	MonthlyIncomeDay string
	Mode             model.TargetMode
	DurationMonths   string
	TargetDate       string
	Expenses         []model.FixedExpense
}

// Context is the single owned derivation context. Every mutation
// synchronously runs the recompute cascade Totals -> History -> Planning
// before returning, so readers never observe a half-updated state. The
// context is not safe for concurrent use; the app has exactly one mutator.
type Context struct {
	clock func() time.Time
	newID func() string

	entries []model.Entry
	usdRate string

	totals     model.Totals
	categories model.CategoryTotals

	catHistory  model.CategoryHistory
	planHistory []model.HistoryPoint

	snapshots       []model.Snapshot
	deletedSnapshot *model.Snapshot

	goal             string
	monthlyIncome    string
	monthlyIncomeDay string
	expenses         []model.FixedExpense
	targetMode       model.TargetMode
	durationMonths   string
	targetDate       string
	metrics          model.PlanningMetrics

	spending    []model.SpendingEntry
	extraIncome []model.ExtraIncomeEntry
	projections []model.ProjectionEntry

	observers []Observer
}

// New returns a context with planning defaults and one fixed expense, then
// runs the initial recompute so derived state is valid immediately.
func New() *Context {
	return NewWithClock(time.Now)
}

// NewWithClock is New with an injectable clock, used by tests to pin
// history timestamps and planning horizons.
func NewWithClock(clock func() time.Time) *Context {
	c := &Context{
		clock:            clock,
		newID:            uuid.NewString,
		monthlyIncomeDay: "1",
		targetMode:       model.TargetDuration,
		durationMonths:   "4",
	}
	c.expenses = []model.FixedExpense{{ID: c.newID(), Category: "General", Amount: ""}}
	c.recalc()
	return c
}

// Subscribe registers an observer for change events.
func (c *Context) Subscribe(ob Observer) {
	c.observers = append(c.observers, ob)
}

func (c *Context) publish(kind EventKind) {
	ev := Event{Kind: kind, At: c.clock()}
	for _, ob := range c.observers {
		ob(ev)
	}
}

// recalc runs the derivation cascade. It is the only place derived state
// is written.
func (c *Context) recalc() {
	c.totals, c.categories = CalculateTotals(c.entries, money.Parse(c.usdRate))

	now := c.clock()
	c.catHistory.Cards = appendIfChanged(c.catHistory.Cards, c.categories.Cards, 0, categoryHistoryBound, now, c.newID())
	c.catHistory.Debts = appendIfChanged(c.catHistory.Debts, c.categories.Debts, 0, categoryHistoryBound, now, c.newID())
	c.catHistory.Crypto = appendIfChanged(c.catHistory.Crypto, c.categories.Crypto, 0, categoryHistoryBound, now, c.newID())
	c.catHistory.Assets = appendIfChanged(c.catHistory.Assets, c.categories.Assets, 0, categoryHistoryBound, now, c.newID())
	c.planHistory = appendIfChanged(c.planHistory, c.totals.NetWorth, netWorthEpsilon, planHistoryBound, now, c.newID())

	c.metrics = ComputeMetrics(PlanInputs{
		Goal:           c.goal,
		MonthlyIncome:  c.monthlyIncome,
		Expenses:       c.expenses,
		Mode:           c.targetMode,
		DurationMonths: c.durationMonths,
		TargetDate:     c.targetDate,
		NetWorth:       c.totals.NetWorth,
		WeeklySpend:    c.weeklySpend(now),
		Now:            now,
	})
}

// weeklySpend sums spending entries dated within the trailing seven days.
func (c *Context) weeklySpend(now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -7)
	var sum float64
	for _, s := range c.spending {
		if s.Date.After(cutoff) && !s.Date.After(now) {
			sum += money.Parse(s.Amount)
		}
	}
	return sum
}

// --- entry ledger -----------------------------------------------------------

// AddEntry appends a new entry of the given type with type-dependent
// defaults and returns its id. Invalid types fall back to cash.
func (c *Context) AddEntry(t model.EntryType) string {
	if !t.Valid() {
		t = model.TypeCash
	}
	unit, _ := model.UnitFor(t)

	e := model.Entry{ID: c.newID(), Type: t, Unit: unit}
	c.entries = append(c.entries, e)
	c.recalc()
	c.publish(EventLedger)
	return e.ID
}

// UpdateEntry applies a single tagged field update. Unknown ids are a
// no-op.
func (c *Context) UpdateEntry(id string, upd EntryUpdate) {
	idx := c.entryIndex(id)
	if idx < 0 {
		return
	}
	e := &c.entries[idx]

	switch u := upd.(type) {
	case SetName:
		e.Name = u.Name
	case SetAmount:
		e.Amount = u.Amount
	case SetType:
		if !u.Type.Valid() {
			return
		}
		e.Type = u.Type
		if unit, forced := model.UnitFor(u.Type); forced {
			e.Unit = unit
		}
	case SetUnit:
		if _, forced := model.UnitFor(e.Type); forced {
			return
		}
		if u.Unit == model.UnitLocal || u.Unit == model.UnitForeign {
			e.Unit = u.Unit
		}
	case SetCreditLimit:
		e.CreditLimit = u.Limit
	default:
		return
	}

	c.recalc()
	c.publish(EventLedger)
}

// RemoveEntry deletes an entry by id; unknown ids are a no-op.
func (c *Context) RemoveEntry(id string) {
	idx := c.entryIndex(id)
	if idx < 0 {
		return
	}
	c.entries = append(c.entries[:idx:idx], c.entries[idx+1:]...)
	c.recalc()
	c.publish(EventLedger)
}

// MoveEntry moves an entry to the given position, clamped to the ledger
// bounds. Order is user-significant and round-trips through persistence.
func (c *Context) MoveEntry(id string, to int) {
	idx := c.entryIndex(id)
	if idx < 0 {
		return
	}
	if to < 0 {
		to = 0
	}
	if to > len(c.entries)-1 {
		to = len(c.entries) - 1
	}
	if to == idx {
		return
	}

	e := c.entries[idx]
	rest := append(c.entries[:idx:idx], c.entries[idx+1:]...)
	c.entries = append(rest[:to:to], append([]model.Entry{e}, rest[to:]...)...)
	c.recalc()
	c.publish(EventLedger)
}

func (c *Context) entryIndex(id string) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// SetUSDRate replaces the manually supplied exchange rate text.
func (c *Context) SetUSDRate(rate string) {
	c.usdRate = rate
	c.recalc()
	c.publish(EventRate)
}

// --- snapshots --------------------------------------------------------------

// TakeSnapshot captures the current net worth as an explicit point.
func (c *Context) TakeSnapshot() model.Snapshot {
	s := model.Snapshot{ID: c.newID(), CapturedAt: c.clock(), Value: c.totals.NetWorth}
	c.snapshots = append(c.snapshots, s)
	c.publish(EventSnapshot)
	return s
}

// DeleteSnapshot removes a snapshot by id, remembering it for a
// single-step undo. Unknown ids are a no-op.
func (c *Context) DeleteSnapshot(id string) {
	for i, s := range c.snapshots {
		if s.ID == id {
			deleted := s
			c.snapshots = append(c.snapshots[:i:i], c.snapshots[i+1:]...)
			c.deletedSnapshot = &deleted
			c.publish(EventSnapshot)
			return
		}
	}
}

// RestoreSnapshot undoes the most recent snapshot deletion, reinserting
// the point in capture order. A no-op when there is nothing to restore.
func (c *Context) RestoreSnapshot() {
	if c.deletedSnapshot == nil {
		return
	}
	c.snapshots = append(c.snapshots, *c.deletedSnapshot)
	sort.SliceStable(c.snapshots, func(i, j int) bool {
		return c.snapshots[i].CapturedAt.Before(c.snapshots[j].CapturedAt)
	})
	c.deletedSnapshot = nil
	c.publish(EventSnapshot)
}

// --- history ----------------------------------------------------------------

// DeleteCategoryPoint removes one point from a category series.
func (c *Context) DeleteCategoryPoint(b model.Bucket, id string) {
	series := c.catHistory.Series(b)
	if series == nil {
		return
	}
	*series = removePoint(*series, id)
	c.publish(EventHistory)
}

// ClearCategoryHistory empties a category series.
func (c *Context) ClearCategoryHistory(b model.Bucket) {
	series := c.catHistory.Series(b)
	if series == nil {
		return
	}
	*series = nil
	c.publish(EventHistory)
}

// DeletePlanPoint removes one point from the plan series.
func (c *Context) DeletePlanPoint(id string) {
	c.planHistory = removePoint(c.planHistory, id)
	c.publish(EventHistory)
}

// ClearPlanHistory empties the plan series.
func (c *Context) ClearPlanHistory() {
	c.planHistory = nil
	c.publish(EventHistory)
}

// --- planning inputs --------------------------------------------------------

// SetGoal replaces the goal amount text.
func (c *Context) SetGoal(goal string) {
	c.goal = goal
	c.recalc()
	c.publish(EventPlanning)
}

// SetMonthlyIncome replaces the monthly income text.
func (c *Context) SetMonthlyIncome(income string) {
	c.monthlyIncome = income
	c.recalc()
	c.publish(EventPlanning)
}

// SetMonthlyIncomeDay replaces the income day-of-month text.
func (c *Context) SetMonthlyIncomeDay(day string) {
	c.monthlyIncomeDay = day
	c.recalc()
	c.publish(EventPlanning)
}

// SetTargetMode switches the horizon mode. Anything other than "date"
// selects duration mode.
func (c *Context) SetTargetMode(mode string) {
	if model.TargetMode(strings.ToLower(mode)) == model.TargetDate {
		c.targetMode = model.TargetDate
	} else {
		c.targetMode = model.TargetDuration
	}
	c.recalc()
	c.publish(EventPlanning)
}

// SetTargetDuration replaces the duration-months text.
func (c *Context) SetTargetDuration(months string) {
	c.durationMonths = months
	c.recalc()
	c.publish(EventPlanning)
}

// SetTargetDate replaces the target calendar date text (YYYY-MM-DD).
func (c *Context) SetTargetDate(date string) {
	c.targetDate = date
	c.recalc()
	c.publish(EventPlanning)
}

// AddFixedExpense appends a fixed expense and returns its id.
func (c *Context) AddFixedExpense(category, amount string) string {
	fe := model.FixedExpense{ID: c.newID(), Category: category, Amount: amount}
	c.expenses = append(c.expenses, fe)
	c.recalc()
	c.publish(EventPlanning)
	return fe.ID
}

// UpdateFixedExpense replaces a fixed expense's fields by id.
func (c *Context) UpdateFixedExpense(id, category, amount string) {
	for i := range c.expenses {
		if c.expenses[i].ID == id {
			c.expenses[i].Category = category
			c.expenses[i].Amount = amount
			c.recalc()
			c.publish(EventPlanning)
			return
		}
	}
}

// RemoveFixedExpense deletes a fixed expense. The last remaining expense
// cannot be removed; the operation is rejected as a no-op.
func (c *Context) RemoveFixedExpense(id string) {
	if len(c.expenses) <= 1 {
		return
	}
	for i, fe := range c.expenses {
		if fe.ID == id {
			c.expenses = append(c.expenses[:i:i], c.expenses[i+1:]...)
			c.recalc()
			c.publish(EventPlanning)
			return
		}
	}
}

// --- secondary ledgers ------------------------------------------------------

// AddSpending records a purchase. Malformed dates fall back to today.
func (c *Context) AddSpending(category, amount, date string) string {
	s := model.SpendingEntry{
		ID:        c.newID(),
		Category:  category,
		Amount:    amount,
		Date:      c.parseDate(date),
		CreatedAt: c.clock(),
	}
	c.spending = append(c.spending, s)
	sortByDate(c.spending, func(e model.SpendingEntry) (time.Time, time.Time) { return e.Date, e.CreatedAt })
	c.recalc()
	c.publish(EventPlanning)
	return s.ID
}

// RemoveSpending deletes a spending entry by id.
func (c *Context) RemoveSpending(id string) {
	for i, s := range c.spending {
		if s.ID == id {
			c.spending = append(c.spending[:i:i], c.spending[i+1:]...)
			c.recalc()
			c.publish(EventPlanning)
			return
		}
	}
}

// AddExtraIncome records a one-off income event.
func (c *Context) AddExtraIncome(source, amount, date string) string {
	e := model.ExtraIncomeEntry{
		ID:        c.newID(),
		Source:    source,
		Amount:    amount,
		Date:      c.parseDate(date),
		CreatedAt: c.clock(),
	}
	c.extraIncome = append(c.extraIncome, e)
	sortByDate(c.extraIncome, func(e model.ExtraIncomeEntry) (time.Time, time.Time) { return e.Date, e.CreatedAt })
	c.publish(EventPlanning)
	return e.ID
}

// RemoveExtraIncome deletes an extra-income entry by id.
func (c *Context) RemoveExtraIncome(id string) {
	for i, e := range c.extraIncome {
		if e.ID == id {
			c.extraIncome = append(c.extraIncome[:i:i], c.extraIncome[i+1:]...)
			c.publish(EventPlanning)
			return
		}
	}
}

// AddProjection records a probability-weighted future cash event.
// Probability text above 1 is read as a percentage, then clamped to 0..1.
func (c *Context) AddProjection(label, amount, probability, date string) string {
	p := money.Parse(probability)
	if p > 1 {
		p /= 100
	}
	p = clamp01(p)

	e := model.ProjectionEntry{
		ID:          c.newID(),
		Label:       label,
		Amount:      amount,
		Probability: p,
		Date:        c.parseDate(date),
		CreatedAt:   c.clock(),
	}
	c.projections = append(c.projections, e)
	sortByDate(c.projections, func(e model.ProjectionEntry) (time.Time, time.Time) { return e.Date, e.CreatedAt })
	c.publish(EventPlanning)
	return e.ID
}

// RemoveProjection deletes a projection entry by id.
func (c *Context) RemoveProjection(id string) {
	for i, e := range c.projections {
		if e.ID == id {
			c.projections = append(c.projections[:i:i], c.projections[i+1:]...)
			c.publish(EventPlanning)
			return
		}
	}
}

// parseDate reads a YYYY-MM-DD date, falling back to today's date.
func (c *Context) parseDate(date string) time.Time {
	if t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), c.clock().Location()); err == nil {
		return t
	}
	now := c.clock()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// sortByDate orders a secondary ledger by date ascending, breaking ties by
// most-recent-created-first.
func sortByDate[T any](items []T, key func(T) (time.Time, time.Time)) {
	sort.SliceStable(items, func(i, j int) bool {
		di, ci := key(items[i])
		dj, cj := key(items[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return ci.After(cj)
	})
}

// --- projection -------------------------------------------------------------

// Forecast builds the payday net-worth trajectory from the current metrics
// and ledgers. Future extra income is deposited at full value; projection
// entries at their expected value.
func (c *Context) Forecast() []model.ProjectedPoint {
	m := c.metrics
	now := c.clock()

	end := m.PlannedCompletion
	if end.IsZero() {
		end = now.AddDate(0, 0, int(math.Round(m.PlanDurationMonths*DaysPerMonth)))
	}

	spend := m.FixedTotal + math.Max(m.FlexibleSpending, 0)

	day := int(money.Parse(c.monthlyIncomeDay))

	var deps []Deposit
	for _, e := range c.extraIncome {
		deps = append(deps, Deposit{Date: e.Date, Amount: money.Parse(e.Amount)})
	}
	for _, e := range c.projections {
		deps = append(deps, Deposit{Date: e.Date, Amount: money.Parse(e.Amount) * e.Probability})
	}

	return BuildProjection(ProjectionInputs{
		Start:         now,
		NetWorth:      c.totals.NetWorth,
		MonthlyIncome: m.IncomeValue,
		MonthlySpend:  spend,
		IncomeDay:     day,
		End:           end,
		Deposits:      deps,
	})
}

// --- accessors --------------------------------------------------------------

// Entries returns a copy of the ledger in display order.
func (c *Context) Entries() []model.Entry {
	return append([]model.Entry(nil), c.entries...)
}

// EntryByID looks up a single entry.
func (c *Context) EntryByID(id string) (model.Entry, bool) {
	if idx := c.entryIndex(id); idx >= 0 {
		return c.entries[idx], true
	}
	return model.Entry{}, false
}

// USDRate returns the raw exchange-rate text.
func (c *Context) USDRate() string { return c.usdRate }

// Totals returns the current aggregate totals.
func (c *Context) Totals() model.Totals { return c.totals }

// Categories returns the current category breakdown.
func (c *Context) Categories() model.CategoryTotals { return c.categories }

// Metrics returns the current planning metrics snapshot.
func (c *Context) Metrics() model.PlanningMetrics { return c.metrics }

// Snapshots returns a copy of the captured net-worth points.
func (c *Context) Snapshots() []model.Snapshot {
	return append([]model.Snapshot(nil), c.snapshots...)
}

// CategorySeries returns a copy of one category history series.
func (c *Context) CategorySeries(b model.Bucket) []model.HistoryPoint {
	series := c.catHistory.Series(b)
	if series == nil {
		return nil
	}
	return append([]model.HistoryPoint(nil), *series...)
}

// PlanHistory returns a copy of the net-worth change series.
func (c *Context) PlanHistory() []model.HistoryPoint {
	return append([]model.HistoryPoint(nil), c.planHistory...)
}

// Planning returns a read-only view of the raw planning inputs.
func (c *Context) Planning() PlanningSettings {
	return PlanningSettings{
		Goal:             c.goal,
		MonthlyIncome:    c.monthlyIncome,
		MonthlyIncomeDay: c.monthlyIncomeDay,
		Mode:             c.targetMode,
		DurationMonths:   c.durationMonths,
		TargetDate:       c.targetDate,
		Expenses:         append([]model.FixedExpense(nil), c.expenses...),
	}
}

// SpendingEntries returns a copy of the spending ledger.
func (c *Context) SpendingEntries() []model.SpendingEntry {
	return append([]model.SpendingEntry(nil), c.spending...)
}

// ExtraIncomeEntries returns a copy of the extra-income ledger.
func (c *Context) ExtraIncomeEntries() []model.ExtraIncomeEntry {
	return append([]model.ExtraIncomeEntry(nil), c.extraIncome...)
}

// ProjectionEntries returns a copy of the projection ledger.
func (c *Context) ProjectionEntries() []model.ProjectionEntry {
	return append([]model.ProjectionEntry(nil), c.projections...)
}
