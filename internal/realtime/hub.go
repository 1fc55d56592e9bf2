package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Event is one change-feed entry. Consumers may use the op/id detail for
// incremental updates or treat the event as an opaque "something changed"
// signal; the feed makes no ordering promise relative to locally-issued
// writes, and a subscriber will see echoes of its own writes.
type Event struct {
	Table string `json:"table"`
	Op    string `json:"op"` // insert | update | delete
	ID    string `json:"id"`
}

// Hub fans change events out to subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Event)}
}

// Subscribe registers a new subscriber and returns its id and channel.
// The channel is buffered; a subscriber that falls behind loses events
// rather than blocking the feed.
func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default: // slow subscriber, drop
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
