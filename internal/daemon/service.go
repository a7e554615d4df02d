// Package daemon provides the long-running local status service. It polls
// the state database for changes written by the CLI or TUI and serves the
// derived figures over a loopback HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/model"
	"github.com/kerem6790/financeX/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Addr         string
	Interval     time.Duration
	EventsBuffer int
	Log          *logrus.Logger
}

// Snapshot is a compact derived-state payload for status and events.
type Snapshot struct {
	At       time.Time `json:"at"`
	Debt     float64   `json:"debt"`
	Assets   float64   `json:"assets"`
	NetWorth float64   `json:"net_worth"`

	Cards       float64 `json:"cards"`
	OtherDebts  float64 `json:"other_debts"`
	Crypto      float64 `json:"crypto"`
	OtherAssets float64 `json:"other_assets"`

	MonthlySavingTarget float64 `json:"monthly_saving_target"`
	MonthlyShortfall    float64 `json:"monthly_shortfall"`
	PlanFeasible        bool    `json:"plan_feasible"`
	ProgressToGoal      float64 `json:"progress_to_goal"`
}

// Event is emitted whenever the persisted state produces a changed
// snapshot.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	NetDelta  float64   `json:"net_delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log *logrus.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	forecast    []model.ProjectedPoint
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 500*time.Millisecond {
		cfg.Interval = 2 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8790"
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Log,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts the HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/v1/forecast", s.handleForecast).Methods(http.MethodGet)
	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.WithFields(logrus.Fields{"addr": s.cfg.Addr, "db": s.cfg.DBPath}).Info("daemon listening")

	// Seed the initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()
	snap, forecast, err := s.deriveFromStore()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.WithError(err).Warn("poll failed")
		return
	}
	snap.At = now

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.forecast = forecast
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "snapshot", Timestamp: now, Snapshot: snap}
		publish = true
	} else if changed(prev, snap) {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "state_delta",
			Timestamp: now,
			Snapshot:  snap,
			NetDelta:  snap.NetWorth - prev.NetWorth,
		}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

// deriveFromStore hydrates a fresh derivation context from the persisted
// blob and reduces it to a snapshot. The daemon never writes state.
func (s *Service) deriveFromStore() (Snapshot, []model.ProjectedPoint, error) {
	st, err := store.Open(s.cfg.DBPath)
	if err != nil {
		return Snapshot{}, nil, err
	}
	defer func() { _ = st.Close() }()

	data, ok, err := st.LoadState()
	if err != nil {
		return Snapshot{}, nil, err
	}

	ctx := engine.New()
	if ok {
		if err := ctx.ApplyStateJSON(data); err != nil {
			return Snapshot{}, nil, fmt.Errorf("state blob: %w", err)
		}
	}

	totals := ctx.Totals()
	cat := ctx.Categories()
	m := ctx.Metrics()

	return Snapshot{
		Debt:                totals.Debt,
		Assets:              totals.Assets,
		NetWorth:            totals.NetWorth,
		Cards:               cat.Cards,
		OtherDebts:          cat.Debts,
		Crypto:              cat.Crypto,
		OtherAssets:         cat.Assets,
		MonthlySavingTarget: m.MonthlySavingTarget,
		MonthlyShortfall:    m.MonthlyShortfall,
		PlanFeasible:        m.PlanFeasible,
		ProgressToGoal:      m.ProgressToGoal,
	}, ctx.Forecast(), nil
}

func changed(prev, curr Snapshot) bool {
	const eps = 0.005
	return math.Abs(prev.NetWorth-curr.NetWorth) > eps ||
		math.Abs(prev.Debt-curr.Debt) > eps ||
		math.Abs(prev.Assets-curr.Assets) > eps ||
		math.Abs(prev.MonthlySavingTarget-curr.MonthlySavingTarget) > eps ||
		prev.PlanFeasible != curr.PlanFeasible
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleState(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Service) handleForecast(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	forecast := make([]model.ProjectedPoint, len(s.forecast))
	copy(forecast, s.forecast)
	s.mu.RUnlock()

	type point struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
		Kind  string  `json:"kind"`
	}
	out := make([]point, 0, len(forecast))
	for _, p := range forecast {
		out = append(out, point{Date: p.Date.Format("2006-01-02"), Value: p.Value, Kind: string(p.Kind)})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
