package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

type memorySink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *memorySink) Write(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memorySink) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(2, sink, zerolog.Nop())
	d.Start()
	defer d.Stop()

	d.Record(domain.AuditEvent{EmailAddress: "a@x.com", Action: domain.AuditActionSignup, Success: true})
	d.Record(domain.AuditEvent{EmailAddress: "b@x.com", Action: domain.AuditActionSignin, Success: false, Reason: "password mismatch"})

	waitFor(t, func() bool { return len(sink.snapshot()) == 2 })

	actions := map[string]bool{}
	for _, ev := range sink.snapshot() {
		actions[ev.Action] = true
	}
	if !actions[domain.AuditActionSignup] || !actions[domain.AuditActionSignin] {
		t.Fatalf("missing events: %+v", sink.snapshot())
	}
}

func TestDispatcher_PerEmailOrdering(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start()
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEvent{
			EmailAddress: "same@x.com",
			Action:       domain.AuditActionSignin,
			Timestamp:    time.Unix(int64(i), 0),
		})
	}

	waitFor(t, func() bool { return len(sink.snapshot()) == 10 })

	events := sink.snapshot()
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Fatalf("events for one email arrived out of order at index %d", i)
		}
	}
}

// Stop must flush events that are still buffered, not abandon them.
func TestDispatcher_StopDrainsBufferedEvents(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(2, sink, zerolog.Nop())

	// Buffer events before any worker runs, so Stop is the only thing that
	// can deliver them.
	for i := 0; i < 20; i++ {
		d.Record(domain.AuditEvent{
			EmailAddress: "drain@x.com",
			Action:       domain.AuditActionSignin,
			Timestamp:    time.Unix(int64(i), 0),
		})
	}

	d.Start()
	d.Stop()

	if got := len(sink.snapshot()); got != 20 {
		t.Fatalf("expected 20 events flushed on Stop, got %d", got)
	}
}

func TestDispatcher_RecordAfterStopIsDropped(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(2, sink, zerolog.Nop())
	d.Start()
	d.Stop()

	d.Record(domain.AuditEvent{EmailAddress: "late@x.com", Action: domain.AuditActionSignup})

	if got := len(sink.snapshot()); got != 0 {
		t.Fatalf("expected no events after Stop, got %d", got)
	}
}

func TestDispatcher_StopIsIdempotent(t *testing.T) {
	d := NewDispatcher(2, &memorySink{}, zerolog.Nop())
	d.Start()
	d.Stop()
	d.Stop()
}

func TestDispatcher_WorkerCountFallback(t *testing.T) {
	d := NewDispatcher(0, &memorySink{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
