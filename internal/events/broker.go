package events

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

type Type string

const (
	TypeScore    Type = "score"
	TypeLock     Type = "lock"
	TypeActivity Type = "activity"
)

// Event is one change notification. Seq is assigned by the broker and grows
// monotonically; subscribers use it to resume a dropped stream.
type Event struct {
	Seq          uint64            `json:"seq"`
	Type         Type              `json:"type"`
	Action       string            `json:"action"`
	JudgeID      string            `json:"judgeId,omitempty"`
	CategoryID   string            `json:"categoryId,omitempty"`
	ContestantID string            `json:"contestantId,omitempty"`
	ActivityID   string            `json:"activityId,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	At           time.Time         `json:"at"`
}

const (
	defaultReplayCapacity = 512
	subscriberBufferSize  = 64
)

// Broker fans change notifications out to connected subscribers and keeps a
// bounded replay window. Delivery is best-effort: a subscriber whose buffer is
// full misses events and must reconcile via the read APIs, which is the
// documented reconnect contract.
type Broker struct {
	mu      sync.Mutex
	seq     uint64
	replay  []Event
	cap     int
	subs    map[uint64]chan Event
	nextSub uint64
	logger  *logging.Logger
}

func NewBroker(replayCapacity int, logger *logging.Logger) *Broker {
	if replayCapacity <= 0 {
		replayCapacity = defaultReplayCapacity
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Broker{
		replay: make([]Event, 0, replayCapacity),
		cap:    replayCapacity,
		subs:   make(map[uint64]chan Event),
		logger: logger,
	}
}

// Publish assigns the next sequence number, records the event in the replay
// window and delivers it to every live subscriber without blocking.
func (b *Broker) Publish(evt Event) uint64 {
	b.mu.Lock()
	b.seq++
	evt.Seq = b.seq
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}

	if len(b.replay) == b.cap {
		copy(b.replay, b.replay[1:])
		b.replay = b.replay[:b.cap-1]
	}
	b.replay = append(b.replay, evt)

	// Delivery stays under the lock so a concurrent cancel cannot close a
	// channel mid-send. Sends are non-blocking, so the critical section is
	// bounded regardless of subscriber count.
	var wg conc.WaitGroup
	for _, ch := range b.subs {
		ch := ch
		wg.Go(func() {
			select {
			case ch <- evt:
			default:
				b.logger.Warn("event subscriber buffer full, dropping event",
					"seq", evt.Seq,
					"type", string(evt.Type),
				)
			}
		})
	}
	wg.Wait()
	seq := evt.Seq
	b.mu.Unlock()

	return seq
}

// Subscribe registers a subscriber. Events already in the replay window with
// Seq > sinceSeq are delivered first, in order, before live events. The
// returned cancel func must be called when the subscriber disconnects.
func (b *Broker) Subscribe(ctx context.Context, sinceSeq uint64) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBufferSize)

	b.mu.Lock()
	b.nextSub++
	id := b.nextSub
	for _, evt := range b.replay {
		if evt.Seq <= sinceSeq {
			continue
		}
		select {
		case ch <- evt:
		default:
		}
	}
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
		b.mu.Unlock()
	}

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	return ch, cancel
}

// LastSeq reports the most recently assigned sequence number.
func (b *Broker) LastSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}
