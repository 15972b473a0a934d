package daemon

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/records"
	"github.com/theirongolddev/messbook/internal/store"
)

var testNow = time.Date(2025, time.March, 22, 12, 0, 0, 0, time.UTC)

func newTestDaemon(t *testing.T, buffer int) (*Service, *mess.Service) {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := mess.New(records.NewBook(store.NewMemory()),
		mess.WithClock(func() time.Time { return testNow }),
		mess.WithLogger(quiet),
	)
	d := New(Config{
		DataDir:      ".",
		Backend:      store.BackendMemory,
		Interval:     10 * time.Second,
		EventsBuffer: buffer,
	}, svc, quiet)
	return d, svc
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Members:       3,
		Expenses:      10,
		TotalExpenses: 1500.5,
		TotalMeals:    60,
		OpenTasks:     2,
	}
	curr := Snapshot{
		Members:       4,
		Expenses:      12,
		TotalExpenses: 1800.75,
		TotalMeals:    66,
		OpenTasks:     1,
	}

	delta := diffSnapshots(prev, curr)
	if delta.Members != 1 {
		t.Fatalf("Members delta = %d, want 1", delta.Members)
	}
	if delta.Expenses != 2 {
		t.Fatalf("Expenses delta = %d, want 2", delta.Expenses)
	}
	if delta.TotalMeals != 6 {
		t.Fatalf("TotalMeals delta = %d, want 6", delta.TotalMeals)
	}
	if delta.OpenTasks != -1 {
		t.Fatalf("OpenTasks delta = %d, want -1", delta.OpenTasks)
	}
	if math.Abs(delta.TotalExpenses-300.25) > 1e-9 {
		t.Fatalf("TotalExpenses delta = %.2f, want 300.25", delta.TotalExpenses)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots produced a non-zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s, _ := newTestDaemon(t, 2)

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

func TestPollOnceEmitsSnapshotThenDeltas(t *testing.T) {
	ctx := context.Background()
	s, svc := newTestDaemon(t, 10)

	s.pollOnce(ctx)
	s.pollOnce(ctx)

	if _, err := svc.AddExpense(ctx, mess.ExpenseInput{Date: "2025-03-20", Amount: 450, Description: "fish"}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	s.pollOnce(ctx)

	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	polls := s.pollCount
	s.mu.RUnlock()

	if polls != 3 {
		t.Errorf("pollCount = %d, want 3", polls)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want snapshot + one delta", len(events))
	}
	if events[0].Type != EventSnapshot || events[1].Type != EventLedgerDelta {
		t.Fatalf("event types = %s, %s", events[0].Type, events[1].Type)
	}
	if events[1].Delta.Expenses != 1 || events[1].Delta.TotalExpenses != 450 {
		t.Errorf("delta = %+v, want one 450 expense", events[1].Delta)
	}
}

func TestSubscribersReceiveEvents(t *testing.T) {
	s, _ := newTestDaemon(t, 10)

	ch := make(chan Event, 1)
	id := s.addSubscriber(ch)
	s.publishEvent(Event{ID: 7, Type: EventLedgerDelta})

	select {
	case ev := <-ch:
		if ev.ID != 7 {
			t.Fatalf("received id %d, want 7", ev.ID)
		}
	default:
		t.Fatal("subscriber did not receive event")
	}

	s.removeSubscriber(id)
	if st := s.snapshotStatus(); st.SubscriberCount != 0 {
		t.Fatalf("SubscriberCount = %d after remove", st.SubscriberCount)
	}
}
