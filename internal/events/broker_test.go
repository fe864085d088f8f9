package events

import (
	"context"
	"testing"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

func recvEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		if !ok {
			t.Fatalf("subscriber channel closed unexpectedly")
		}
		return evt
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestBroker_PublishAssignsMonotonicSeq(t *testing.T) {
	t.Parallel()

	b := NewBroker(8, logging.NewNop())
	first := b.Publish(Event{Type: TypeScore, Action: "score_submitted"})
	second := b.Publish(Event{Type: TypeLock, Action: "lock_created"})
	if second != first+1 {
		t.Fatalf("sequence must be monotonic: %d then %d", first, second)
	}
	if b.LastSeq() != second {
		t.Fatalf("LastSeq got=%d want=%d", b.LastSeq(), second)
	}
}

func TestBroker_SubscribeReceivesLiveEvents(t *testing.T) {
	t.Parallel()

	b := NewBroker(8, logging.NewNop())
	ch, cancel := b.Subscribe(context.Background(), 0)
	defer cancel()

	b.Publish(Event{Type: TypeScore, Action: "score_submitted", JudgeID: "j1"})

	evt := recvEvent(t, ch)
	if evt.Type != TypeScore || evt.JudgeID != "j1" || evt.Seq != 1 {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestBroker_ReplayAfterReconnect(t *testing.T) {
	t.Parallel()

	b := NewBroker(8, logging.NewNop())
	b.Publish(Event{Type: TypeScore, Action: "score_submitted"})
	b.Publish(Event{Type: TypeLock, Action: "lock_created"})
	b.Publish(Event{Type: TypeLock, Action: "lock_removed"})

	// A subscriber that saw event 1 asks to resume from there.
	ch, cancel := b.Subscribe(context.Background(), 1)
	defer cancel()

	if evt := recvEvent(t, ch); evt.Seq != 2 || evt.Action != "lock_created" {
		t.Fatalf("unexpected first replayed event: %+v", evt)
	}
	if evt := recvEvent(t, ch); evt.Seq != 3 || evt.Action != "lock_removed" {
		t.Fatalf("unexpected second replayed event: %+v", evt)
	}
}

func TestBroker_ReplayWindowIsBounded(t *testing.T) {
	t.Parallel()

	b := NewBroker(4, logging.NewNop())
	for i := 0; i < 10; i++ {
		b.Publish(Event{Type: TypeActivity, Action: "score_submitted"})
	}

	ch, cancel := b.Subscribe(context.Background(), 0)
	defer cancel()

	// Only the last 4 events survive; the first replayed one is seq 7.
	if evt := recvEvent(t, ch); evt.Seq != 7 {
		t.Fatalf("unexpected oldest replayed seq: got=%d want=7", evt.Seq)
	}
}

func TestBroker_CancelStopsDelivery(t *testing.T) {
	t.Parallel()

	b := NewBroker(8, logging.NewNop())
	ch, cancel := b.Subscribe(context.Background(), 0)
	cancel()
	cancel() // idempotent

	b.Publish(Event{Type: TypeScore, Action: "score_submitted"})
	if _, ok := <-ch; ok {
		t.Fatalf("expected a closed channel after cancel")
	}
}

func TestBroker_ContextCancellationUnsubscribes(t *testing.T) {
	t.Parallel()

	b := NewBroker(8, logging.NewNop())
	ctx, cancelCtx := context.WithCancel(context.Background())
	ch, _ := b.Subscribe(ctx, 0)
	cancelCtx()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("subscriber channel never closed after context cancel")
		}
	}
}
