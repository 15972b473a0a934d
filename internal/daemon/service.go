// Package daemon provides the long-running read API that watches the mess
// ledger and publishes changes.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/pipeline"
	"github.com/theirongolddev/messbook/internal/plan"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Backend      string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	MealsPerDay  int
}

// Snapshot is a compact ledger state for status/event payloads.
type Snapshot struct {
	At            time.Time `json:"at"`
	Members       int       `json:"members"`
	Expenses      int       `json:"expenses"`
	TotalExpenses float64   `json:"total_expenses"`
	TotalMeals    int       `json:"total_meals"`
	MealRate      float64   `json:"meal_rate"`
	Budget        float64   `json:"budget"`
	PerMeal       float64   `json:"per_meal"`
	Tier          string    `json:"tier"`
	TotalDebts    float64   `json:"total_debts"`
	OpenTasks     int       `json:"open_tasks"`
	Notices       int       `json:"notices"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Members       int     `json:"members"`
	Expenses      int     `json:"expenses"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalMeals    int     `json:"total_meals"`
	Budget        float64 `json:"budget"`
	TotalDebts    float64 `json:"total_debts"`
	OpenTasks     int     `json:"open_tasks"`
	Notices       int     `json:"notices"`
}

func (d Delta) isZero() bool {
	return d.Members == 0 &&
		d.Expenses == 0 &&
		d.TotalExpenses == 0 &&
		d.TotalMeals == 0 &&
		d.Budget == 0 &&
		d.TotalDebts == 0 &&
		d.OpenTasks == 0 &&
		d.Notices == 0
}

// Event is emitted whenever the ledger snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventLedgerDelta = "ledger_delta"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	Backend         string    `json:"backend"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	mess    *mess.Service
	log     *slog.Logger
	metrics *metrics

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading through svc.
func New(cfg Config, svc *mess.Service, log *slog.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.MealsPerDay <= 0 {
		cfg.MealsPerDay = pipeline.DefaultMealsPerDay
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		cfg:       cfg,
		mess:      svc,
		log:       log,
		metrics:   newMetrics(),
		startedAt: svc.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("serving read API", "addr", s.cfg.Addr, "interval", s.cfg.Interval)

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.mess.Now()
	s.metrics.polls.Inc()

	l, err := s.mess.Ledger(ctx)
	if err != nil {
		s.metrics.pollErrors.Inc()
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn("daemon poll failed", "err", err)
		return
	}

	snap := snapshotFromLedger(l, now, s.cfg.MealsPerDay)
	s.metrics.observe(snap)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventLedgerDelta,
			Timestamp: now,
			Snapshot:  snap,
			Delta:     delta,
		}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("ledger changed", "event", ev.Type, "id", ev.ID)
		s.publishEvent(ev)
	}
}

func snapshotFromLedger(l model.Ledger, at time.Time, mealsPerDay int) Snapshot {
	sum := pipeline.Summarize(l, "", "")
	p := pipeline.Planner(l, at, mealsPerDay)
	return Snapshot{
		At:            at,
		Members:       len(l.Members),
		Expenses:      sum.ExpenseCount,
		TotalExpenses: sum.TotalExpenses,
		TotalMeals:    sum.TotalMeals,
		MealRate:      sum.MealRate,
		Budget:        l.Budget,
		PerMeal:       p.PerMeal,
		Tier:          plan.ForPlanner(p.PerMeal).Name,
		TotalDebts:    sum.TotalDebts,
		OpenTasks:     sum.OpenTasks,
		Notices:       sum.NoticeCount,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Members:       curr.Members - prev.Members,
		Expenses:      curr.Expenses - prev.Expenses,
		TotalExpenses: curr.TotalExpenses - prev.TotalExpenses,
		TotalMeals:    curr.TotalMeals - prev.TotalMeals,
		Budget:        curr.Budget - prev.Budget,
		TotalDebts:    curr.TotalDebts - prev.TotalDebts,
		OpenTasks:     curr.OpenTasks - prev.OpenTasks,
		Notices:       curr.Notices - prev.Notices,
	}
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
		DataDir:         s.cfg.DataDir,
		Backend:         s.cfg.Backend,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
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
