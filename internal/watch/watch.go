// Package watch provides the mutation broadcast contract for the stored
// collections. Every write to either collection produces an event, so
// observers refreshing cached copies cannot go stale inconsistently.
package watch

import "sync"

// Collection names carried by events.
const (
	CollectionAccounts = "accounts"
	CollectionEntries  = "entries"
)

// Event signals that a named collection has been written in full.
type Event struct {
	Collection string
}

// Hub fans mutation events out to subscribers. Sends never block: a
// subscriber that falls behind its buffer misses events rather than stalling
// writers.
type Hub struct {
	mu   sync.Mutex
	subs []chan Event
}

// NewHub constructs an empty hub.
func NewHub() *Hub { return &Hub{} }

// Subscribe registers a new observer and returns its event channel.
func (h *Hub) Subscribe() <-chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Event, 16)
	h.subs = append(h.subs, ch)
	return ch
}

// Notify broadcasts a write of the named collection to all subscribers.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- Event{Collection: collection}:
		default:
		}
	}
}
