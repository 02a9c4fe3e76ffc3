package overlay

import (
	"sync"
	"time"

	"chickenescape/internal/sim"
	"chickenescape/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Hub fans simulation snapshots out to overlay subscribers. Publish is
// called from the frame loop and never blocks on a slow subscriber.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan sim.Snapshot
	nextID      uint64

	latest    sim.Snapshot
	hasLatest bool
	lastSent  time.Time
	interval  time.Duration
	now       func() time.Time

	log *logrus.Entry
}

// NewHub returns a hub that forwards at most rate snapshots per second.
// Phase changes are always forwarded.
func NewHub(rate int) *Hub {
	h := &Hub{
		subscribers: make(map[uint64]chan sim.Snapshot),
		now:         time.Now,
		log:         logger.Component("overlay"),
	}
	if rate > 0 {
		h.interval = time.Second / time.Duration(rate)
	}
	return h
}

// Register creates a buffered channel for a new subscriber. The most recent
// snapshot, if any, is queued immediately.
func (h *Hub) Register() (uint64, <-chan sim.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan sim.Snapshot, 64)
	if h.hasLatest {
		ch <- h.latest
	}
	h.subscribers[id] = ch
	h.log.WithField("subscriber", id).Debug("overlay subscribed")
	return id, ch
}

func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
		h.log.WithField("subscriber", id).Debug("overlay unsubscribed")
	}
}

// Publish records snap and broadcasts it unless throttled.
func (h *Hub) Publish(snap sim.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	phaseChanged := !h.hasLatest || h.latest.Phase != snap.Phase
	h.latest = snap
	h.hasLatest = true

	now := h.now()
	if !phaseChanged && now.Sub(h.lastSent) < h.interval {
		return
	}
	h.lastSent = now

	for id, ch := range h.subscribers {
		select {
		case ch <- snap:
		default:
			h.log.WithField("subscriber", id).Debug("overlay channel full, frame dropped")
		}
	}
}

// Latest returns the last published snapshot.
func (h *Hub) Latest() (sim.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.hasLatest
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close drops every subscriber, which ends their connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}
