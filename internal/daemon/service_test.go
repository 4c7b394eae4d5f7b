package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/view"
)

type fakeSource struct {
	state view.State
	err   error
}

func (f *fakeSource) Render(opts view.Options) (view.ViewModel, error) {
	if f.err != nil {
		return view.ViewModel{}, f.err
	}
	return view.Recompute(f.state, opts), nil
}

var base = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newTestService(src Source) *Service {
	s := New(Config{Interval: 10 * time.Second, EventsBuffer: 10}, src)
	s.now = func() time.Time { return base }
	return s
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Pending:      3,
		Overdue:      0,
		DueSoon:      1,
		Completed:    2,
		NetCashflow:  decimal.NewFromInt(53500),
		SavingsTotal: decimal.NewFromInt(77000),
	}
	curr := Snapshot{
		Pending:      2,
		Overdue:      1,
		DueSoon:      1,
		Completed:    3,
		NetCashflow:  decimal.NewFromInt(50000),
		SavingsTotal: decimal.NewFromInt(77000),
	}

	delta := diffSnapshots(prev, curr)
	if delta.Pending != -1 {
		t.Fatalf("Pending delta = %d, want -1", delta.Pending)
	}
	if delta.Overdue != 1 {
		t.Fatalf("Overdue delta = %d, want 1", delta.Overdue)
	}
	if delta.Completed != 1 {
		t.Fatalf("Completed delta = %d, want 1", delta.Completed)
	}
	if !delta.NetCashflow.Equal(decimal.NewFromInt(-3500)) {
		t.Fatalf("NetCashflow delta = %s, want -3500", delta.NetCashflow)
	}
	if !delta.SavingsTotal.IsZero() {
		t.Fatalf("SavingsTotal delta = %s, want 0", delta.SavingsTotal)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots gave non-zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, &fakeSource{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollEmitsTaskTransitions(t *testing.T) {
	src := &fakeSource{state: view.State{Tasks: []model.Task{
		{ID: "t1", Title: "Pay card bill", DueAt: base.Add(48 * time.Hour)},
	}}}
	s := newTestService(src)

	s.pollOnce()
	if got := len(s.events); got != 1 || s.events[0].Type != EventSnapshot {
		t.Fatalf("first poll events = %+v, want one snapshot", s.events)
	}

	// Move the clock so the task falls inside the due-soon window.
	s.now = func() time.Time { return base.Add(30 * time.Hour) }
	s.pollOnce()

	var sawDueSoon bool
	for _, ev := range s.events {
		if ev.Type == EventTaskDueSoon {
			sawDueSoon = true
			if ev.Task == nil || ev.Task.ID != "t1" {
				t.Errorf("due-soon event task = %+v", ev.Task)
			}
		}
	}
	if !sawDueSoon {
		t.Fatalf("no %s event in %+v", EventTaskDueSoon, s.events)
	}

	s.now = func() time.Time { return base.Add(49 * time.Hour) }
	s.pollOnce()
	last := s.events[len(s.events)-1]
	if last.Type != EventTaskOverdue {
		t.Errorf("last event = %s, want %s", last.Type, EventTaskOverdue)
	}
	if s.snapshot.Overdue != 1 {
		t.Errorf("snapshot overdue = %d, want 1", s.snapshot.Overdue)
	}
}

func TestPollRecordsError(t *testing.T) {
	s := newTestService(&fakeSource{err: errors.New("decoding finance_cashflow_v2: bad")})
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError == "" {
		t.Fatal("LastError not recorded")
	}
	if st.PollCount != 1 {
		t.Errorf("PollCount = %d, want 1", st.PollCount)
	}
	if len(s.events) != 0 {
		t.Errorf("events = %d, want 0", len(s.events))
	}
}

func TestStatusAndViewEndpoints(t *testing.T) {
	src := &fakeSource{state: view.State{Cashflow: []model.CashflowEntry{
		{ID: "c1", Kind: model.KindIncome, Amount: decimal.NewFromInt(72000), Date: model.DateOf(base)},
		{ID: "c2", Kind: model.KindExpense, Amount: decimal.NewFromInt(18500), Date: model.DateOf(base)},
	}}}
	s := newTestService(src)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/view")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("view before poll = %d, want 503", resp.StatusCode)
	}

	s.pollOnce()

	resp, err = http.Get(srv.URL + "/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !st.Summary.NetCashflow.Equal(decimal.NewFromInt(53500)) {
		t.Errorf("net cashflow = %s, want 53500", st.Summary.NetCashflow)
	}
	if st.PollCount != 1 {
		t.Errorf("poll count = %d, want 1", st.PollCount)
	}

	resp2, err := http.Get(srv.URL + "/v1/events?since=1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	var events []Event
	if err := json.NewDecoder(resp2.Body).Decode(&events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events since 1 = %d, want 0", len(events))
	}

	resp3, err := http.Post(srv.URL+"/v1/status", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", resp3.StatusCode)
	}
}

func TestFirstPollReportsDueTasks(t *testing.T) {
	src := &fakeSource{state: view.State{Tasks: []model.Task{
		{ID: "late", Title: "Pay card bill", DueAt: base.Add(-time.Hour)},
		{ID: "soon", Title: "Renew FD", DueAt: base.Add(2 * time.Hour)},
		{ID: "later", Title: "Review SIP", DueAt: base.Add(72 * time.Hour)},
		{ID: "done", Title: "File taxes", DueAt: base.Add(-2 * time.Hour), Completed: true},
	}}}
	s := newTestService(src)
	s.pollOnce()

	got := map[string]string{}
	for _, ev := range s.events {
		if ev.Task != nil {
			got[ev.Task.ID] = ev.Type
		}
	}
	if s.events[0].Type != EventSnapshot {
		t.Errorf("first event = %s, want %s", s.events[0].Type, EventSnapshot)
	}
	want := map[string]string{"late": EventTaskOverdue, "soon": EventTaskDueSoon}
	if len(got) != len(want) {
		t.Fatalf("task events = %v, want %v", got, want)
	}
	for id, typ := range want {
		if got[id] != typ {
			t.Errorf("task %s event = %q, want %q", id, got[id], typ)
		}
	}

	// Nothing changed, so a second poll raises no task events.
	n := len(s.events)
	s.pollOnce()
	if len(s.events) != n {
		t.Errorf("second poll added %d events", len(s.events)-n)
	}
}
