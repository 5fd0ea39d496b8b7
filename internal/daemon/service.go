// Package daemon provides the long-running background finance monitor.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

// Event types.
const (
	EventSnapshot = "snapshot"
	EventDelta    = "finance_delta"
	EventAlert    = "alert"
)

// Source produces the state the daemon watches. *pipeline.Loader satisfies it.
type Source interface {
	Dashboard(ctx context.Context, month time.Time) (model.Dashboard, error)
	Bills(ctx context.Context) (model.BillOverview, error)
}

// Publisher forwards events off-host. Optional.
type Publisher interface {
	Publish(ctx context.Context, eventType string, at time.Time, payload any) error
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact finance state for status/event payloads.
type Snapshot struct {
	At               time.Time       `json:"at"`
	Month            string          `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Balance          decimal.Decimal `json:"balance"`
	SavingsRate      float64         `json:"savings_rate"`
	BudgetsExceeded  int             `json:"budgets_exceeded"`
	BudgetsNearLimit int             `json:"budgets_near_limit"`
	OverdueBills     int             `json:"overdue_bills"`
	RemindersDue     int             `json:"reminders_due"`
	Recommendations  int             `json:"recommendations"`
	HighPriority     int             `json:"high_priority"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	Balance         decimal.Decimal `json:"balance"`
	BudgetsExceeded int             `json:"budgets_exceeded"`
	OverdueBills    int             `json:"overdue_bills"`
	RemindersDue    int             `json:"reminders_due"`
	HighPriority    int             `json:"high_priority"`
}

func (d Delta) isZero() bool {
	return d.Income.IsZero() &&
		d.Expense.IsZero() &&
		d.Balance.IsZero() &&
		d.BudgetsExceeded == 0 &&
		d.OverdueBills == 0 &&
		d.RemindersDue == 0 &&
		d.HighPriority == 0
}

// raisesAlert reports whether the change made things worse in a way a
// user should hear about.
func (d Delta) raisesAlert() bool {
	return d.BudgetsExceeded > 0 || d.OverdueBills > 0 || d.HighPriority > 0
}

// Event is emitted whenever the finance snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
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
	Publishing      bool      `json:"publishing"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg       Config
	source    Source
	publisher Publisher
	log       *log.Logger
	now       func() time.Time

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

// Option customizes a Service.
type Option func(*Service)

// WithPublisher forwards every event to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l.WithComponent(log.ComponentDaemon) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a new daemon service with the provided config.
func New(cfg Config, src Source, opts ...Option) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	s := &Service{
		cfg:    cfg,
		source: src,
		log:    log.Nop(),
		now:    time.Now,
		subs:   make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
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
	s.log.Info("daemon listening", "addr", s.cfg.Addr, "interval", s.cfg.Interval.String())

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
	start := s.now()
	snap, err := s.load(ctx, start)

	s.mu.Lock()
	s.lastPollAt = start
	s.pollCount++
	if err != nil {
		s.lastError = err.Error()
		s.mu.Unlock()
		s.log.Warn("poll failed", log.FieldError, err)
		return
	}

	prev, prevExists := s.snapshot, s.hasSnapshot
	s.hasSnapshot = true
	s.snapshot = snap
	s.lastError = ""

	var ev Event
	publish := false
	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: start, Snapshot: snap}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		typ := EventDelta
		if delta.raisesAlert() {
			typ = EventAlert
		}
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: typ, Timestamp: start, Snapshot: snap, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
		s.forward(ctx, ev)
	}
	s.log.Debug("poll complete", log.FieldDuration, s.now().Sub(start).Milliseconds())
}

func (s *Service) load(ctx context.Context, now time.Time) (Snapshot, error) {
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dash, err := s.source.Dashboard(ctx, month)
	if err != nil {
		return Snapshot{}, err
	}
	bills, err := s.source.Bills(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotFrom(dash, bills, now), nil
}

func (s *Service) forward(ctx context.Context, ev Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev.Type, ev.Timestamp, ev); err != nil {
		s.log.Warn("forward event failed", log.FieldKind, ev.Type, log.FieldError, err)
	}
}

func snapshotFrom(d model.Dashboard, bills model.BillOverview, at time.Time) Snapshot {
	snap := Snapshot{
		At:              at,
		Month:           d.Month.Format("2006-01"),
		Income:          d.MonthlyIncome,
		Expense:         d.MonthlyExpense,
		Balance:         d.TotalBalance,
		SavingsRate:     d.SavingsRate,
		OverdueBills:    len(bills.Overdue),
		RemindersDue:    len(bills.Reminders),
		Recommendations: len(d.Recommendations),
	}
	for _, b := range d.BudgetStatuses {
		switch {
		case b.SpentAmount.GreaterThan(b.Budget.MonthlyLimit):
			snap.BudgetsExceeded++
		case b.PercentageUsed > 80:
			snap.BudgetsNearLimit++
		}
	}
	for _, r := range d.Recommendations {
		if r.Priority == model.PriorityHigh {
			snap.HighPriority++
		}
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Income:          curr.Income.Sub(prev.Income),
		Expense:         curr.Expense.Sub(prev.Expense),
		Balance:         curr.Balance.Sub(prev.Balance),
		BudgetsExceeded: curr.BudgetsExceeded - prev.BudgetsExceeded,
		OverdueBills:    curr.OverdueBills - prev.OverdueBills,
		RemindersDue:    curr.RemindersDue - prev.RemindersDue,
		HighPriority:    curr.HighPriority - prev.HighPriority,
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
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
		Publishing:      s.publisher != nil,
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

	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: s.now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
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
