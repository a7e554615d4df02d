package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/kerem6790/financeX/internal/model"
)

var historyEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestAppendIfChanged_ExactDedupe(t *testing.T) {
	var series []model.HistoryPoint

	series = appendIfChanged(series, 100, 0, 10, historyEpoch, "a")
	series = appendIfChanged(series, 100, 0, 10, historyEpoch.Add(time.Minute), "b")
	series = appendIfChanged(series, 100.001, 0, 10, historyEpoch.Add(2*time.Minute), "c")

	if len(series) != 2 {
		t.Fatalf("len = %d, want 2 (exact duplicate suppressed)", len(series))
	}
	if series[0].ID != "a" || series[1].ID != "c" {
		t.Errorf("ids = %s,%s, want a,c", series[0].ID, series[1].ID)
	}
}

func TestAppendIfChanged_Epsilon(t *testing.T) {
	var series []model.HistoryPoint

	series = appendIfChanged(series, 100, 0.01, 10, historyEpoch, "a")
	series = appendIfChanged(series, 100.005, 0.01, 10, historyEpoch.Add(time.Minute), "b")
	if len(series) != 1 {
		t.Fatalf("len = %d, want 1 (sub-epsilon change suppressed)", len(series))
	}

	series = appendIfChanged(series, 100.02, 0.01, 10, historyEpoch.Add(2*time.Minute), "c")
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2 (super-epsilon change appended)", len(series))
	}
}

func TestAppendIfChanged_BoundEvictsOldest(t *testing.T) {
	var series []model.HistoryPoint
	for i := 0; i < 12; i++ {
		series = appendIfChanged(series, float64(i), 0, 10,
			historyEpoch.Add(time.Duration(i)*time.Minute), fmt.Sprintf("p%d", i))
	}

	if len(series) != 10 {
		t.Fatalf("len = %d, want bound 10", len(series))
	}
	if series[0].ID != "p2" {
		t.Errorf("oldest id = %s, want p2 (p0,p1 evicted)", series[0].ID)
	}
	if series[9].Value != 11 {
		t.Errorf("newest value = %v, want 11", series[9].Value)
	}
}

func TestAppendIfChanged_FirstPointAlwaysRecorded(t *testing.T) {
	series := appendIfChanged(nil, 0, 0.01, 10, historyEpoch, "a")
	if len(series) != 1 {
		t.Fatalf("len = %d, want 1 (first point always recorded)", len(series))
	}
}

func TestRemovePoint(t *testing.T) {
	series := []model.HistoryPoint{
		{ID: "a", Value: 1},
		{ID: "b", Value: 2},
		{ID: "c", Value: 3},
	}

	series = removePoint(series, "b")
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2", len(series))
	}
	if series[0].ID != "a" || series[1].ID != "c" {
		t.Errorf("ids = %s,%s, want a,c", series[0].ID, series[1].ID)
	}

	// Unknown id is a no-op.
	series = removePoint(series, "zzz")
	if len(series) != 2 {
		t.Errorf("len after unknown id = %d, want 2", len(series))
	}
}
