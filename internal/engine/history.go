package engine

import (
	"math"
	"time"

	"github.com/kerem6790/financeX/internal/model"
)

const (
	categoryHistoryBound = 200
	planHistoryBound     = 400

	// netWorthEpsilon suppresses float-noise points in the plan series.
	netWorthEpsilon = 0.01
)

// appendIfChanged appends a point when the value differs from the newest
// stored one by more than epsilon (0 means exact comparison), then trims
// the series to bound by evicting the oldest points. The series stays
// ascending by capture time because appends always use the current clock.
func appendIfChanged(series []model.HistoryPoint, value float64, epsilon float64, bound int, at time.Time, id string) []model.HistoryPoint {
	if n := len(series); n > 0 {
		last := series[n-1].Value
		if epsilon > 0 {
			if math.Abs(last-value) < epsilon {
				return series
			}
		} else if last == value {
			return series
		}
	}

	series = append(series, model.HistoryPoint{ID: id, CapturedAt: at, Value: value})
	if len(series) > bound {
		series = series[len(series)-bound:]
	}
	return series
}

// removePoint deletes the point with the given id; unknown ids are a no-op.
func removePoint(series []model.HistoryPoint, id string) []model.HistoryPoint {
	for i, p := range series {
		if p.ID == id {
			return append(series[:i:i], series[i+1:]...)
		}
	}
	return series
}
