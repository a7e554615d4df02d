package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/model"
)

func TestAutosaver_FlushesAfterDebounce(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), DBFileName))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ctx := engine.New()
	a := NewAutosaver(ctx, s, log, 20*time.Millisecond)
	a.Start()

	id := ctx.AddEntry(model.TypeCash)
	ctx.UpdateEntry(id, engine.SetAmount{Amount: "1234"})

	// Wait out the debounce window, then poll for the flush.
	deadline := time.Now().Add(2 * time.Second)
	var ok bool
	for time.Now().Before(deadline) {
		if _, ok, _ = s.LoadState(); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	a.Stop()

	if !ok {
		t.Fatal("no state flushed within the deadline")
	}

	// The flushed blob must hydrate back to the same ledger.
	data, _, err := s.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	restored := engine.New()
	if err := restored.ApplyStateJSON(data); err != nil {
		t.Fatalf("hydrate flushed blob: %v", err)
	}
	if got := restored.Totals().NetWorth; got != 1234 {
		t.Errorf("restored NetWorth = %v, want 1234", got)
	}
}

func TestAutosaver_StopFlushesPending(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), DBFileName))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ctx := engine.New()
	// A long debounce: the write should still land via Stop.
	a := NewAutosaver(ctx, s, log, 10*time.Second)
	a.Start()

	ctx.AddEntry(model.TypeCash)
	a.Stop()

	if _, ok, _ := s.LoadState(); !ok {
		t.Error("Stop did not flush the pending state")
	}
}
