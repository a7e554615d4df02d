package model

import "time"

// TargetMode selects how the savings horizon is expressed.
type TargetMode string

const (
	TargetDuration TargetMode = "duration"
	TargetDate     TargetMode = "date"
)

// FixedExpense is a recurring monthly cost. At least one always exists.
type FixedExpense struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// PlanningMetrics is a fully derived, stateless snapshot of plan
// feasibility. It is recomputed whole on every input change.
type PlanningMetrics struct {
	GoalValue            float64
	IncomeValue          float64
	FixedTotal           float64
	MonthlySavingTarget  float64
	FlexibleSpending     float64
	WeeklyLimit          float64
	RemainingGoal        float64
	ProgressToGoal       float64
	WeeklySpend          float64
	WeeklyProgress       float64
	PlanDurationMonths   float64
	PlannedCompletion    time.Time // zero when no completion date resolves
	MonthlyShortfall     float64
	ShortfallRatio       float64
	PlanFeasible         bool
}

// SpendingEntry is one recorded discretionary purchase.
type SpendingEntry struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Amount    string    `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExtraIncomeEntry is a one-off income expected or received on a date.
type ExtraIncomeEntry struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Amount    string    `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectionEntry is a probability-weighted future cash event.
type ProjectionEntry struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Amount      string    `json:"amount"`
	Probability float64   `json:"probability"` // 0..1
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PointKind tags a projected point relative to the payday deposit.
type PointKind string

const (
	PointPreIncome  PointKind = "pre"
	PointPostIncome PointKind = "post"
	PointFinal      PointKind = "final"
)

// ProjectedPoint is one point of the payday net-worth trajectory.
type ProjectedPoint struct {
	Date  time.Time
	Value float64
	Kind  PointKind
}
