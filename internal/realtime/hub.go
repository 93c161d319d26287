package realtime

import (
	"sync"

	"github.com/wichananm65/beverage-shop/internal/metrics"
)

// WatchedTables are the tables whose changes refresh catalog pages.
var WatchedTables = []string{"products", "product_images", "categories", "brands"}

// Subscription receives the names of changed tables.
type Subscription struct {
	C chan string
}

// Hub fans change notifications out to subscribers. Slow subscribers drop
// notifications rather than block the publisher; one pending notification
// is enough to cause a refresh.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{C: make(chan string, 8)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeSubscribers.Inc()
	return s
}

func (h *Hub) Unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.C)
	metrics.RealtimeSubscribers.Dec()
}

// Publish notifies every subscriber that table changed.
func (h *Hub) Publish(table string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		select {
		case s.C <- table:
		default:
		}
	}
}

// Len reports the number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
