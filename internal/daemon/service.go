// Package daemon provides the long-running background reminder service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/view"
)

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventDelta       = "summary_delta"
	EventTaskDueSoon = "task_due_soon"
	EventTaskOverdue = "task_overdue"
)

// Source renders the current view model. *ledger.Ledger satisfies it.
type Source interface {
	Render(opts view.Options) (view.ViewModel, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	DueSoon      time.Duration
	Logger       zerolog.Logger
}

// Snapshot is a compact reminder and balance state for status/event payloads.
type Snapshot struct {
	At           time.Time       `json:"at"`
	Pending      int             `json:"pending"`
	Overdue      int             `json:"overdue"`
	DueSoon      int             `json:"due_soon"`
	Completed    int             `json:"completed"`
	NetCashflow  decimal.Decimal `json:"net_cashflow"`
	SavingsTotal decimal.Decimal `json:"savings_total"`
	Portfolio    decimal.Decimal `json:"portfolio"`
	GoalOnTrack  bool            `json:"goal_on_track"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Pending      int             `json:"pending"`
	Overdue      int             `json:"overdue"`
	DueSoon      int             `json:"due_soon"`
	Completed    int             `json:"completed"`
	NetCashflow  decimal.Decimal `json:"net_cashflow"`
	SavingsTotal decimal.Decimal `json:"savings_total"`
}

func (d Delta) isZero() bool {
	return d.Pending == 0 &&
		d.Overdue == 0 &&
		d.DueSoon == 0 &&
		d.Completed == 0 &&
		d.NetCashflow.IsZero() &&
		d.SavingsTotal.IsZero()
}

// TaskRef identifies the reminder a task event is about.
type TaskRef struct {
	ID     string           `json:"id"`
	Title  string           `json:"title"`
	DueAt  time.Time        `json:"due_at"`
	Status model.TaskStatus `json:"status"`
}

// Event is emitted whenever the snapshot or a reminder's status changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
	Task      *TaskRef  `json:"task,omitempty"`
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
	src Source
	log zerolog.Logger
	now func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	view        view.ViewModel
	statuses    map[string]model.TaskStatus
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading from src.
func New(cfg Config, src Source) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8797"
	}
	if cfg.DueSoon <= 0 {
		cfg.DueSoon = 24 * time.Hour
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		log:       cfg.Logger,
		now:       time.Now,
		startedAt: time.Now(),
		statuses:  make(map[string]model.TaskStatus),
		subs:      make(map[int]chan Event),
	}
}

// Router returns the HTTP API routes.
func (s *Service) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/view", s.handleView).Methods(http.MethodGet)
	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

// Run starts HTTP endpoints and the poll schedule until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := sched.AddFunc("@every "+s.cfg.Interval.String(), s.pollOnce); err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return fmt.Errorf("scheduling poll: %w", err)
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	s.log.Info().
		Str("addr", s.cfg.Addr).
		Dur("interval", s.cfg.Interval).
		Msg("daemon started")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("daemon stopping")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

func (s *Service) pollOnce() {
	now := s.now()
	vm, err := s.src.Render(view.Options{Now: now, ShowCompleted: true, DueSoon: s.cfg.DueSoon})
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("poll failed")
		return
	}

	snap := snapshotFromView(vm)
	var publish []Event

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.view = vm
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		publish = append(publish, s.newEvent(EventSnapshot, now, snap, Delta{}, nil))
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		publish = append(publish, s.newEvent(EventDelta, now, snap, delta, nil))
	}

	statuses := make(map[string]model.TaskStatus, len(vm.Tasks.Rows))
	for _, row := range vm.Tasks.Rows {
		statuses[row.ID] = row.Status
		// A task missing from the last poll, including every task on the
		// first poll, compares against "" so one already due raises its event.
		if typ, ok := transitionEvent(s.statuses[row.ID], row.Status); ok {
			ref := &TaskRef{ID: row.ID, Title: row.Title, DueAt: row.DueAt, Status: row.Status}
			publish = append(publish, s.newEvent(typ, now, snap, Delta{}, ref))
		}
	}
	s.statuses = statuses
	s.mu.Unlock()

	for _, ev := range publish {
		if ev.Task != nil {
			s.log.Info().
				Str("event", ev.Type).
				Str("task", ev.Task.Title).
				Time("due_at", ev.Task.DueAt).
				Msg("reminder")
		}
		s.publishEvent(ev)
	}
}

// newEvent allocates the next event id. Caller holds s.mu.
func (s *Service) newEvent(typ string, at time.Time, snap Snapshot, delta Delta, task *TaskRef) Event {
	s.nextEventID++
	return Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: at,
		Snapshot:  snap,
		Delta:     delta,
		Task:      task,
	}
}

// transitionEvent reports which event, if any, a status change raises.
func transitionEvent(prev, curr model.TaskStatus) (string, bool) {
	if prev == curr {
		return "", false
	}
	switch curr {
	case model.TaskDueSoon:
		return EventTaskDueSoon, true
	case model.TaskOverdue:
		return EventTaskOverdue, true
	}
	return "", false
}

func snapshotFromView(vm view.ViewModel) Snapshot {
	c := vm.Tasks.Counts
	return Snapshot{
		At:           vm.At,
		Pending:      c.Pending,
		Overdue:      c.Overdue,
		DueSoon:      c.DueSoon,
		Completed:    c.Completed,
		NetCashflow:  vm.Summary.NetCashflow,
		SavingsTotal: vm.Summary.SavingsTotal,
		Portfolio:    vm.Summary.Portfolio,
		GoalOnTrack:  vm.Goal.Projection.OnTrack,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Pending:      curr.Pending - prev.Pending,
		Overdue:      curr.Overdue - prev.Overdue,
		DueSoon:      curr.DueSoon - prev.DueSoon,
		Completed:    curr.Completed - prev.Completed,
		NetCashflow:  curr.NetCashflow.Sub(prev.NetCashflow),
		SavingsTotal: curr.SavingsTotal.Sub(prev.SavingsTotal),
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
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.snapshotStatus())
}

func (s *Service) handleView(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	vm, ok := s.view, s.hasSnapshot
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, vm)
}

// handleEvents returns the buffered events, optionally only those after ?since=<id>.
func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	var since int64
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid since", http.StatusBadRequest)
			return
		}
		since = n
	}

	s.mu.RLock()
	events := make([]Event, 0, len(s.events))
	for _, ev := range s.events {
		if ev.ID > since {
			events = append(events, ev)
		}
	}
	s.mu.RUnlock()

	writeJSON(w, events)
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
		Type:      EventSnapshot,
		Timestamp: s.now(),
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
