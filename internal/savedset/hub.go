package savedset

import (
	"context"
	"sync"
)

// Hub fans change events out to every in-process subscriber
type Hub struct {
	mu   sync.RWMutex
	subs map[uint64]*Subscription
	next uint64
}

// NewHub creates a hub with no subscribers
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*Subscription)}
}

// Subscription receives events on C until Close is called
type Subscription struct {
	C <-chan Event

	c    chan Event
	id   uint64
	hub  *Hub
	once sync.Once
}

// Subscribe registers a new subscriber. buffer is clamped to at least 1.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	c := make(chan Event, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	sub := &Subscription{C: c, c: c, id: h.next, hub: h}
	h.subs[sub.id] = sub
	return sub
}

// Publish delivers e to every subscriber without blocking.
// A subscriber whose buffer is full already has a pending signal, so it is skipped.
// It returns the number of subscribers that received e.
func (h *Hub) Publish(e Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, sub := range h.subs {
		select {
		case sub.c <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// Len returns the number of live subscribers
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close unregisters the subscription and closes C. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.id)
		close(s.c)
		s.hub.mu.Unlock()
	})
}

// Watch calls fn for every event on a fresh subscription until ctx is done
func (h *Hub) Watch(ctx context.Context, fn func(Event)) {
	sub := h.Subscribe(1)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub.C:
			if !ok {
				return
			}
			fn(e)
		}
	}
}
