package engine

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/kerem6790/financeX/internal/model"
)

// State is the serializable app-state blob exchanged with the persistence
// layer. Every section and field is optional: absent parts leave the
// in-memory values untouched on hydration, so partial snapshots apply
// cleanly.
type State struct {
	Finance     *FinanceState     `json:"finance,omitempty"`
	Planning    *PlanningState    `json:"planning,omitempty"`
	Expenses    *SpendingState    `json:"expenses,omitempty"`
	ExtraIncome *ExtraIncomeState `json:"extraIncome,omitempty"`
	Projections *ProjectionsState `json:"projections,omitempty"`
}

// FinanceState carries the entry ledger and its derived bookkeeping.
// CategoryTotals is written for external readers but ignored on hydration;
// totals are always recomputed from the entries.
type FinanceState struct {
	Entries         []EntryState          `json:"entries,omitempty"`
	USDRate         *string               `json:"usdRate,omitempty"`
	Snapshots       []PointState          `json:"snapshots,omitempty"`
	CategoryTotals  *model.CategoryTotals `json:"categoryTotals,omitempty"`
	CategoryHistory *CategoryHistoryState `json:"categoryHistory,omitempty"`
	PlanHistory     []PointState          `json:"planHistory,omitempty"`
}

// EntryState is the wire form of a ledger entry.
type EntryState struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Unit        string `json:"unit"`
	CreditLimit string `json:"creditLimit,omitempty"`
}

// PointState is the wire form of a history point or snapshot.
type PointState struct {
	ID         string  `json:"id"`
	CapturedAt string  `json:"capturedAt"`
	Value      float64 `json:"value"`
}

// CategoryHistoryState carries the four bounded category series.
type CategoryHistoryState struct {
	Cards  []PointState `json:"cards,omitempty"`
	Debts  []PointState `json:"debts,omitempty"`
	Crypto []PointState `json:"crypto,omitempty"`
	Assets []PointState `json:"assets,omitempty"`
}

// PlanningState carries the raw planning inputs.
type PlanningState struct {
	Goal                 *string        `json:"goal,omitempty"`
	MonthlyIncome        *string        `json:"monthlyIncome,omitempty"`
	MonthlyIncomeDay     *string        `json:"monthlyIncomeDay,omitempty"`
	Expenses             []ExpenseState `json:"expenses,omitempty"`
	TargetMode           *string        `json:"targetMode,omitempty"`
	TargetDurationMonths *string        `json:"targetDurationMonths,omitempty"`
	TargetDate           *string        `json:"targetDate,omitempty"`
}

// ExpenseState is the wire form of a fixed expense.
type ExpenseState struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// SpendingState carries the spending ledger.
type SpendingState struct {
	Entries []SpendingEntryState `json:"entries,omitempty"`
}

// SpendingEntryState is the wire form of a spending entry.
type SpendingEntryState struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	CreatedAt string `json:"createdAt"`
}

// ExtraIncomeState carries the extra-income ledger.
type ExtraIncomeState struct {
	Entries []ExtraIncomeEntryState `json:"entries,omitempty"`
}

// ExtraIncomeEntryState is the wire form of an extra-income entry.
type ExtraIncomeEntryState struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	CreatedAt string `json:"createdAt"`
}

// ProjectionsState carries the probability-weighted projection ledger.
type ProjectionsState struct {
	Entries []ProjectionEntryState `json:"entries,omitempty"`
}

// ProjectionEntryState is the wire form of a projection entry.
type ProjectionEntryState struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Amount      string  `json:"amount"`
	Probability float64 `json:"probability"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
}

const wireTimeLayout = time.RFC3339Nano

// State captures the full current state as a serializable snapshot.
func (c *Context) State() State {
	entries := make([]EntryState, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, EntryState{
			ID:          e.ID,
			Name:        e.Name,
			Amount:      e.Amount,
			Type:        string(e.Type),
			Unit:        string(e.Unit),
			CreditLimit: e.CreditLimit,
		})
	}

	snapshots := make([]PointState, 0, len(c.snapshots))
	for _, s := range c.snapshots {
		snapshots = append(snapshots, PointState{
			ID:         s.ID,
			CapturedAt: s.CapturedAt.Format(wireTimeLayout),
			Value:      s.Value,
		})
	}

	rate := c.usdRate
	catTotals := c.categories

	expenses := make([]ExpenseState, 0, len(c.expenses))
	for _, fe := range c.expenses {
		expenses = append(expenses, ExpenseState{ID: fe.ID, Category: fe.Category, Amount: fe.Amount})
	}

	spending := make([]SpendingEntryState, 0, len(c.spending))
	for _, s := range c.spending {
		spending = append(spending, SpendingEntryState{
			ID:        s.ID,
			Category:  s.Category,
			Amount:    s.Amount,
			Date:      s.Date.Format(dateLayout),
			CreatedAt: s.CreatedAt.Format(wireTimeLayout),
		})
	}

	extra := make([]ExtraIncomeEntryState, 0, len(c.extraIncome))
	for _, e := range c.extraIncome {
		extra = append(extra, ExtraIncomeEntryState{
			ID:        e.ID,
			Source:    e.Source,
			Amount:    e.Amount,
			Date:      e.Date.Format(dateLayout),
			CreatedAt: e.CreatedAt.Format(wireTimeLayout),
		})
	}

	projections := make([]ProjectionEntryState, 0, len(c.projections))
	for _, e := range c.projections {
		projections = append(projections, ProjectionEntryState{
			ID:          e.ID,
			Label:       e.Label,
			Amount:      e.Amount,
			Probability: e.Probability,
			Date:        e.Date.Format(dateLayout),
			CreatedAt:   e.CreatedAt.Format(wireTimeLayout),
		})
	}

	goal, income, day := c.goal, c.monthlyIncome, c.monthlyIncomeDay
	mode := string(c.targetMode)
	duration, targetDate := c.durationMonths, c.targetDate

	return State{
		Finance: &FinanceState{
			Entries:        entries,
			USDRate:        &rate,
			Snapshots:      snapshots,
			CategoryTotals: &catTotals,
			CategoryHistory: &CategoryHistoryState{
				Cards:  pointsToWire(c.catHistory.Cards),
				Debts:  pointsToWire(c.catHistory.Debts),
				Crypto: pointsToWire(c.catHistory.Crypto),
				Assets: pointsToWire(c.catHistory.Assets),
			},
			PlanHistory: pointsToWire(c.planHistory),
		},
		Planning: &PlanningState{
			Goal:                 &goal,
			MonthlyIncome:        &income,
			MonthlyIncomeDay:     &day,
			Expenses:             expenses,
			TargetMode:           &mode,
			TargetDurationMonths: &duration,
			TargetDate:           &targetDate,
		},
		Expenses:    &SpendingState{Entries: spending},
		ExtraIncome: &ExtraIncomeState{Entries: extra},
		Projections: &ProjectionsState{Entries: projections},
	}
}

// Hydrate applies a partial snapshot. Absent sections and fields keep
// their current values; malformed dates normalize to now, missing ids are
// regenerated, and derived state is fully recomputed before returning.
func (c *Context) Hydrate(st State) {
	now := c.clock()

	if f := st.Finance; f != nil {
		if f.Entries != nil {
			c.entries = make([]model.Entry, 0, len(f.Entries))
			for _, es := range f.Entries {
				c.entries = append(c.entries, c.entryFromWire(es))
			}
		}
		if f.USDRate != nil {
			c.usdRate = *f.USDRate
		}
		if f.Snapshots != nil {
			c.snapshots = make([]model.Snapshot, 0, len(f.Snapshots))
			for _, ps := range f.Snapshots {
				c.snapshots = append(c.snapshots, model.Snapshot(c.pointFromWire(ps, now)))
			}
			sort.SliceStable(c.snapshots, func(i, j int) bool {
				return c.snapshots[i].CapturedAt.Before(c.snapshots[j].CapturedAt)
			})
		}
		if h := f.CategoryHistory; h != nil {
			c.hydrateSeries(&c.catHistory.Cards, h.Cards, categoryHistoryBound, now)
			c.hydrateSeries(&c.catHistory.Debts, h.Debts, categoryHistoryBound, now)
			c.hydrateSeries(&c.catHistory.Crypto, h.Crypto, categoryHistoryBound, now)
			c.hydrateSeries(&c.catHistory.Assets, h.Assets, categoryHistoryBound, now)
		}
		if f.PlanHistory != nil {
			c.hydrateSeries(&c.planHistory, f.PlanHistory, planHistoryBound, now)
		}
	}

	if p := st.Planning; p != nil {
		if p.Goal != nil {
			c.goal = *p.Goal
		}
		if p.MonthlyIncome != nil {
			c.monthlyIncome = *p.MonthlyIncome
		}
		if p.MonthlyIncomeDay != nil {
			c.monthlyIncomeDay = *p.MonthlyIncomeDay
		}
		if p.TargetMode != nil {
			if model.TargetMode(*p.TargetMode) == model.TargetDate {
				c.targetMode = model.TargetDate
			} else {
				c.targetMode = model.TargetDuration
			}
		}
		if p.TargetDurationMonths != nil {
			c.durationMonths = *p.TargetDurationMonths
		}
		if p.TargetDate != nil {
			c.targetDate = *p.TargetDate
		}
		if p.Expenses != nil {
			c.expenses = make([]model.FixedExpense, 0, len(p.Expenses))
			for _, es := range p.Expenses {
				id := es.ID
				if id == "" {
					id = c.newID()
				}
				c.expenses = append(c.expenses, model.FixedExpense{ID: id, Category: es.Category, Amount: es.Amount})
			}
		}
	}
	if len(c.expenses) == 0 {
		c.expenses = []model.FixedExpense{{ID: c.newID(), Category: "General", Amount: ""}}
	}

	if s := st.Expenses; s != nil && s.Entries != nil {
		c.spending = make([]model.SpendingEntry, 0, len(s.Entries))
		for _, es := range s.Entries {
			c.spending = append(c.spending, model.SpendingEntry{
				ID:        c.idOr(es.ID),
				Category:  es.Category,
				Amount:    es.Amount,
				Date:      c.dateFromWire(es.Date, now),
				CreatedAt: c.timeFromWire(es.CreatedAt, now),
			})
		}
		sortByDate(c.spending, func(e model.SpendingEntry) (time.Time, time.Time) { return e.Date, e.CreatedAt })
	}

	if s := st.ExtraIncome; s != nil && s.Entries != nil {
		c.extraIncome = make([]model.ExtraIncomeEntry, 0, len(s.Entries))
		for _, es := range s.Entries {
			c.extraIncome = append(c.extraIncome, model.ExtraIncomeEntry{
				ID:        c.idOr(es.ID),
				Source:    es.Source,
				Amount:    es.Amount,
				Date:      c.dateFromWire(es.Date, now),
				CreatedAt: c.timeFromWire(es.CreatedAt, now),
			})
		}
		sortByDate(c.extraIncome, func(e model.ExtraIncomeEntry) (time.Time, time.Time) { return e.Date, e.CreatedAt })
	}

	if s := st.Projections; s != nil && s.Entries != nil {
		c.projections = make([]model.ProjectionEntry, 0, len(s.Entries))
		for _, es := range s.Entries {
			p := es.Probability
			if p > 1 {
				p /= 100
			}
			c.projections = append(c.projections, model.ProjectionEntry{
				ID:          c.idOr(es.ID),
				Label:       es.Label,
				Amount:      es.Amount,
				Probability: clamp01(p),
				Date:        c.dateFromWire(es.Date, now),
				CreatedAt:   c.timeFromWire(es.CreatedAt, now),
			})
		}
		sortByDate(c.projections, func(e model.ProjectionEntry) (time.Time, time.Time) { return e.Date, e.CreatedAt })
	}

	c.recalc()
	c.publish(EventHydrated)
}

// MarshalState serializes the full state blob.
func (c *Context) MarshalState() ([]byte, error) {
	return json.Marshal(c.State())
}

// ApplyStateJSON decodes and hydrates a serialized state blob.
func (c *Context) ApplyStateJSON(data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	c.Hydrate(st)
	return nil
}

func pointsToWire(points []model.HistoryPoint) []PointState {
	out := make([]PointState, 0, len(points))
	for _, p := range points {
		out = append(out, PointState{
			ID:         p.ID,
			CapturedAt: p.CapturedAt.Format(wireTimeLayout),
			Value:      p.Value,
		})
	}
	return out
}

func (c *Context) hydrateSeries(dst *[]model.HistoryPoint, src []PointState, bound int, now time.Time) {
	if src == nil {
		return
	}
	series := make([]model.HistoryPoint, 0, len(src))
	for _, ps := range src {
		series = append(series, c.pointFromWire(ps, now))
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].CapturedAt.Before(series[j].CapturedAt)
	})
	if len(series) > bound {
		series = series[len(series)-bound:]
	}
	*dst = series
}

func (c *Context) entryFromWire(es EntryState) model.Entry {
	t := model.EntryType(es.Type)
	if !t.Valid() {
		t = model.TypeCash
	}

	unit := model.Unit(es.Unit)
	if forced, isForced := model.UnitFor(t); isForced {
		unit = forced
	} else if unit != model.UnitLocal && unit != model.UnitForeign {
		unit = model.UnitLocal
	}

	return model.Entry{
		ID:          c.idOr(es.ID),
		Name:        es.Name,
		Amount:      es.Amount,
		Type:        t,
		Unit:        unit,
		CreditLimit: es.CreditLimit,
	}
}

func (c *Context) pointFromWire(ps PointState, now time.Time) model.HistoryPoint {
	return model.HistoryPoint{
		ID:         c.idOr(ps.ID),
		CapturedAt: c.timeFromWire(ps.CapturedAt, now),
		Value:      ps.Value,
	}
}

func (c *Context) idOr(id string) string {
	if id == "" {
		return c.newID()
	}
	return id
}

// timeFromWire parses a wire timestamp, trying RFC3339 then a bare date,
// normalizing anything else to now.
func (c *Context) timeFromWire(s string, now time.Time) time.Time {
	if t, err := time.Parse(wireTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(dateLayout, s, now.Location()); err == nil {
		return t
	}
	return now
}

func (c *Context) dateFromWire(s string, now time.Time) time.Time {
	t := c.timeFromWire(s, now)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
