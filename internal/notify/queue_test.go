package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"aidconnect/internal/domain"
	"aidconnect/internal/schedule"
)

func newTestQueue(exit time.Duration) (*Queue, *schedule.Fake) {
	clock := schedule.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	q := NewQueue(Options{
		ExitDelay: exit,
		Scheduler: clock,
		IDs:       NewSequenceIDs(1),
		Logger:    zerolog.Nop(),
	})
	return q, clock
}

func ids(items []domain.Notification) []int64 {
	out := make([]int64, 0, len(items))
	for _, n := range items {
		out = append(out, n.ID)
	}
	return out
}

func TestAddFillsDefaults(t *testing.T) {
	q, _ := newTestQueue(0)
	id := q.Add(domain.NotificationInput{Title: "hello"})
	items := q.List()
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	n := items[0]
	if n.ID != id {
		t.Fatalf("id = %d, want %d", n.ID, id)
	}
	if n.Type != domain.NotificationInfo {
		t.Fatalf("type = %q, want info", n.Type)
	}
	if n.Duration != 5*time.Second {
		t.Fatalf("duration = %v, want 5s", n.Duration)
	}
	if n.Phase != domain.PhaseVisible {
		t.Fatalf("phase = %q, want visible", n.Phase)
	}
}

func TestNotificationExpiresAfterDuration(t *testing.T) {
	q, clock := newTestQueue(0)
	id := q.Add(domain.NotificationInput{Title: "expiring"})

	clock.Advance(4999 * time.Millisecond)
	if got := ids(q.List()); len(got) != 1 || got[0] != id {
		t.Fatalf("notification missing before expiry: %v", got)
	}
	clock.Advance(time.Millisecond)
	if q.Len() != 0 {
		t.Fatalf("notification still present after 5000ms: %v", ids(q.List()))
	}
}

func TestExpiryPassesThroughRemovingPhase(t *testing.T) {
	q, clock := newTestQueue(300 * time.Millisecond)
	q.Add(domain.NotificationInput{Title: "fading", Duration: domain.For(time.Second)})

	clock.Advance(time.Second)
	items := q.List()
	if len(items) != 1 || items[0].Phase != domain.PhaseRemoving {
		t.Fatalf("expected entry in removing phase, got %+v", items)
	}
	clock.Advance(300 * time.Millisecond)
	if q.Len() != 0 {
		t.Fatalf("entry not removed after exit delay")
	}
}

func TestZeroDurationPersists(t *testing.T) {
	q, clock := newTestQueue(0)
	q.Add(domain.NotificationInput{Type: domain.NotificationError, Title: "sticky", Duration: domain.For(0)})
	clock.Advance(time.Hour)
	if q.Len() != 1 {
		t.Fatalf("persistent notification was removed")
	}
}

func TestRemoveIsIdempotentAndOrderIndependent(t *testing.T) {
	for _, victim := range []int{0, 1, 2} {
		q, _ := newTestQueue(0)
		var added []int64
		for i := 0; i < 3; i++ {
			added = append(added, q.Add(domain.NotificationInput{Title: "n"}))
		}
		q.Remove(added[victim])
		q.Remove(added[victim])
		q.Remove(9999)

		got := ids(q.List())
		if len(got) != 2 {
			t.Fatalf("victim %d: expected 2 remaining, got %v", victim, got)
		}
		for _, id := range got {
			if id == added[victim] {
				t.Fatalf("victim %d: id %d still queued", victim, id)
			}
		}
		if got[0] > got[1] {
			t.Fatalf("victim %d: insertion order lost: %v", victim, got)
		}
	}
}

func TestRemoveStopsExpiryTimer(t *testing.T) {
	q, clock := newTestQueue(300 * time.Millisecond)
	first := q.Add(domain.NotificationInput{Title: "a"})
	q.Add(domain.NotificationInput{Title: "b"})
	if clock.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", clock.Pending())
	}

	q.Remove(first)
	if clock.Pending() != 1 {
		t.Fatalf("expiry timer of removed notification still pending: %d", clock.Pending())
	}

	q.Remove(first)
	if clock.Pending() != 1 {
		t.Fatalf("second remove touched other timers: %d", clock.Pending())
	}
}

func TestDismissReplacesExpiryWithExitTimer(t *testing.T) {
	q, clock := newTestQueue(300 * time.Millisecond)
	id := q.Add(domain.NotificationInput{Title: "a"})
	if !q.Dismiss(id) {
		t.Fatalf("dismiss reported missing id")
	}
	if clock.Pending() != 1 {
		t.Fatalf("pending = %d, want only the exit timer", clock.Pending())
	}
	q.Remove(id)
	if clock.Pending() != 0 {
		t.Fatalf("exit timer left behind after remove: %d", clock.Pending())
	}
	clock.Advance(time.Minute)
	if q.Len() != 0 {
		t.Fatalf("queue not empty: %v", ids(q.List()))
	}
}

func TestImmediateDismissReportsOnlyOwnRemoval(t *testing.T) {
	q, _ := newTestQueue(0)
	id := q.Add(domain.NotificationInput{Title: "contended"})

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if q.Dismiss(id) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("dismiss reported success %d times, want 1", wins)
	}
	if q.Dismiss(id) {
		t.Fatalf("dismiss after removal reported success")
	}
}

func TestDismissUnknownID(t *testing.T) {
	q, _ := newTestQueue(300 * time.Millisecond)
	if q.Dismiss(42) {
		t.Fatalf("dismiss of unknown id reported success")
	}
}

func TestCloseCancelsExpiry(t *testing.T) {
	q, clock := newTestQueue(0)
	q.Add(domain.NotificationInput{Title: "a"})
	q.Close()
	clock.Advance(time.Minute)
	if q.Len() != 1 {
		t.Fatalf("expiry fired after close")
	}
	if clock.Pending() != 0 {
		t.Fatalf("timers left behind: %d", clock.Pending())
	}
}

func TestUnknownTypeIsKept(t *testing.T) {
	q, _ := newTestQueue(0)
	q.Add(domain.NotificationInput{Type: "mystery", Title: "?"})
	n := q.List()[0]
	if n.Type != "mystery" {
		t.Fatalf("type rewritten to %q", n.Type)
	}
	if n.Type.Icon() != domain.NotificationInfo.Icon() {
		t.Fatalf("unknown type should render with the info icon")
	}
}

func TestClockIDsAreUniqueWithinOneMillisecond(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gen := NewClockIDs(func() time.Time { return fixed })

	var mu sync.Mutex
	seen := make(map[int64]struct{})
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Next()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != 64 {
		t.Fatalf("expected 64 unique ids, got %d", len(seen))
	}
	if _, ok := seen[fixed.UnixMilli()]; !ok {
		t.Fatalf("first id should be derived from the creation time")
	}
}
