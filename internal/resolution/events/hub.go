package events

import (
	"sync"
	"time"
)

const (
	StoreCallHistory  = "call_history"
	StoreBlockList    = "block_list"
	StoreIntelligence = "phone_numbers"
	StoreSettings     = "settings"

	ActionRecorded  = "recorded"
	ActionBlocked   = "blocked"
	ActionUnblocked = "unblocked"
	ActionCleared   = "cleared"
	ActionFeedback  = "feedback"
	ActionUpdated   = "updated"
)

const (
	DefaultBufferSize       = 50
	DefaultSubscriberBuffer = 16
)

// ChangeEvent announces that one of the stores changed. Subscribers
// re-query the store they care about; the event carries identity, not
// payload.
type ChangeEvent struct {
	Store      string    `json:"store"`
	Action     string    `json:"action"`
	Number     string    `json:"number,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Hub fans store-change events out to subscribers. Slow subscribers
// drop events instead of blocking publishers.
type Hub struct {
	mu               sync.Mutex
	buffer           []ChangeEvent
	subs             map[uint64]chan ChangeEvent
	nextID           uint64
	bufferSize       int
	subscriberBuffer int
}

type Subscription struct {
	hub  *Hub
	id   uint64
	ch   chan ChangeEvent
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		subs:             make(map[uint64]chan ChangeEvent),
		bufferSize:       DefaultBufferSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

func (h *Hub) Publish(event ChangeEvent) {
	if h == nil {
		return
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, event)
	if len(h.buffer) > h.bufferSize {
		h.buffer = h.buffer[len(h.buffer)-h.bufferSize:]
	}
	subs := make([]chan ChangeEvent, 0, len(h.subs))
	for _, ch := range h.subs {
		subs = append(subs, ch)
	}
	h.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns the buffered replay
// of recent events alongside the live channel.
func (h *Hub) Subscribe() (*Subscription, []ChangeEvent) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan ChangeEvent, h.subscriberBuffer)
	h.subs[id] = ch
	replay := append([]ChangeEvent(nil), h.buffer...)
	h.mu.Unlock()

	return &Subscription{hub: h, id: id, ch: ch}, replay
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan ChangeEvent {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.id)
	})
}
