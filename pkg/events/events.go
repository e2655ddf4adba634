package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventCratePublished  EventType = "crate.published"
	EventVersionYanked   EventType = "version.yanked"
	EventVersionUnyanked EventType = "version.unyanked"
	EventOwnersAdded     EventType = "owners.added"
	EventTokenCreated    EventType = "token.created"
	EventTokenRevoked    EventType = "token.revoked"
	EventUserProvisioned EventType = "user.provisioned"
)

// Event represents a registry audit event
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	Message   string
	Metadata  map[string]string
}

// New builds an event with a fresh id
func New(eventType EventType, message string, metadata map[string]string) *Event {
	return &Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		Message:  message,
		Metadata: metadata,
	}
}

// retainLimit bounds the in-memory audit trail served by the management
// API. Older events fall off; the durable audit record is the log
// output, not this buffer.
const retainLimit = 256

// subscriberBuffer is each subscription's channel capacity. Mutating
// requests never wait for a subscriber: one that falls this far behind
// loses events, and the loss is counted.
const subscriberBuffer = 64

// Subscription is a live feed of audit events. Read from C; Cancel when
// done.
type Subscription struct {
	C <-chan *Event

	ch     chan *Event
	types  map[EventType]struct{}
	broker *Broker
	id     int
}

// Cancel ends the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.broker.cancel(s.id)
}

func (s *Subscription) wants(eventType EventType) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// Broker fans audit events out to subscribers and retains a bounded
// trail of the most recent ones. Dispatch is synchronous with the
// mutation that produced the event, so the trail and the store never
// disagree about ordering.
type Broker struct {
	mu      sync.Mutex
	subs    map[int]*Subscription
	nextID  int
	recent  []*Event
	dropped uint64
	closed  bool
}

// NewBroker creates an event broker
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]*Subscription)}
}

// Subscribe returns a feed of events. With no types given the feed
// carries every event; otherwise only the listed types.
func (b *Broker) Subscribe(types ...EventType) *Subscription {
	sub := &Subscription{
		ch:     make(chan *Event, subscriberBuffer),
		broker: b,
	}
	sub.C = sub.ch
	if len(types) > 0 {
		sub.types = make(map[EventType]struct{}, len(types))
		for _, eventType := range types {
			sub.types[eventType] = struct{}{}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.ch)
		return sub
	}
	sub.id = b.nextID
	b.nextID++
	b.subs[sub.id] = sub
	return sub
}

func (b *Broker) cancel(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// Publish stamps the event, appends it to the audit trail, and hands it
// to every matching subscriber without blocking.
func (b *Broker) Publish(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.recent = append(b.recent, event)
	if len(b.recent) > retainLimit {
		b.recent = b.recent[len(b.recent)-retainLimit:]
	}

	for _, sub := range b.subs {
		if !sub.wants(event.Type) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.dropped++
		}
	}
}

// Recent returns up to limit retained events, newest first. A limit of
// zero or less returns the whole trail.
func (b *Broker) Recent(limit int) []*Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.recent)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]*Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, b.recent[i])
	}
	return out
}

// Dropped reports how many events were lost to subscribers that could
// not keep up.
func (b *Broker) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close ends every subscription; later publishes are discarded.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}
