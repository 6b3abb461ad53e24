package hub

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

// Snapshot summarizes the state of the in-memory log after a refresh.
// Dashboard clients receive one whenever the underlying file changes and
// then re-query the aggregation API for fresh matrices.
type Snapshot struct {
	GeneratedAt   time.Time `json:"generated_at"`
	TotalLines    int       `json:"total_lines"`
	TotalRecords  int       `json:"total_records"`
	ParseFailures int       `json:"parse_failures"`
}

// Hub fans out refresh snapshots to all subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers []chan Snapshot
	dropped     int64
	closed      bool
}

func New() *Hub {
	return &Hub{}
}

// Subscribe returns a buffered channel that receives every published
// snapshot. Each subscriber gets its own copy.
func (h *Hub) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, subscriberBuffer)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel returned by Subscribe and closes it.
func (h *Hub) Unsubscribe(sub <-chan Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, ch := range h.subscribers {
		if ch == sub {
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// Publish delivers a snapshot to every subscriber. A full subscriber buffer
// means the client is not keeping up; the snapshot is dropped for it, a
// later one will carry newer state anyway.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for _, ch := range h.subscribers {
		select {
		case ch <- s:
		default:
			h.dropped++
			log.Debugf("hub: dropped snapshot for slow subscriber (total dropped: %d)", h.dropped)
		}
	}
}

// Dropped returns the number of snapshots dropped for slow subscribers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
