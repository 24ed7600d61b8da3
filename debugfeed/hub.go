// Package debugfeed streams bot debug lines to websocket subscribers.
package debugfeed

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBuffer is the per-subscriber backlog before lines are dropped.
const DefaultBuffer = 256

// Line is one debug message as sent to subscribers.
type Line struct {
	Time    time.Time `json:"time"`
	Player  string    `json:"player"`
	Message string    `json:"message"`
}

// Hub fans debug lines out to subscribers. Publishing never blocks: a
// subscriber that falls behind loses lines. The zero value is not usable;
// call NewHub.
type Hub struct {
	mu      sync.Mutex
	subs    map[chan Line]struct{}
	buffer  int
	dropped atomic.Int64
	now     func() time.Time
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[chan Line]struct{}),
		buffer: buffer,
		now:    time.Now,
	}
}

// Debug publishes a line. It implements the controller's debug sink.
func (h *Hub) Debug(player, message string) {
	line := Line{Time: h.now(), Player: player, Message: message}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- line:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribe returns a channel of lines and a function that unsubscribes and
// closes the channel. The cancel function may be called more than once.
func (h *Hub) Subscribe() (<-chan Line, func()) {
	ch := make(chan Line, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped returns how many lines were discarded for slow subscribers.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }
