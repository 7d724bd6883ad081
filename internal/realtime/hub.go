// Package realtime implements the push channel that notifies subscribers of
// the live stamp set. Every committed mutation publishes the complete
// current list; delivering full snapshots instead of diffs sidesteps
// ordering and merge problems at the cost of bandwidth.
package realtime

import (
	"sync"

	"stamps/pkg/domain"
)

// queueSize bounds the per-subscription snapshot queue. When a subscriber
// falls behind, older snapshots are replaced by newer ones; since each
// snapshot is complete, skipping intermediates loses nothing.
const queueSize = 8

// Hub fans committed stamp-set snapshots out to subscribers. Publishing
// never blocks on a slow subscriber; each subscription drains its own queue
// on its own goroutine.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*Subscription)}
}

// Subscription is a handle to one subscriber. Delivery for a subscription
// happens in the order snapshots were published; after Close returns no
// further callback invocation can begin.
type Subscription struct {
	hub *Hub
	id  uint64

	queue chan []domain.Stamp

	// cbMu is held while the callback runs and while closing, so Close
	// cannot return with an invocation still pending.
	cbMu   sync.Mutex
	closed bool
	fn     func([]domain.Stamp)
}

// Subscribe registers onUpdate to be invoked with the complete current stamp
// list after every committed mutation. The callback runs on a dedicated
// goroutine per subscription.
func (h *Hub) Subscribe(onUpdate func([]domain.Stamp)) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		hub:   h,
		id:    h.nextID,
		queue: make(chan []domain.Stamp, queueSize),
		fn:    onUpdate,
	}
	h.subs[sub.id] = sub

	go sub.dispatch()

	return sub
}

// Publish delivers the snapshot to every subscription. It never blocks: when
// a subscription's queue is full, its oldest pending snapshot is dropped to
// make room.
func (h *Hub) Publish(snapshot []domain.Stamp) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		for {
			select {
			case sub.queue <- snapshot:
			default:
				// full: drop the oldest and retry
				select {
				case <-sub.queue:
				default:
				}

				continue
			}

			break
		}
	}
}

// Shutdown closes every remaining subscription. The hub stays usable, new
// subscriptions may still be added afterwards.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

// Close unsubscribes. It is idempotent, and once it returns no further
// callback invocation will occur, even for snapshots already queued. Close
// waits for a running callback to finish and therefore must not be called
// from inside the callback itself.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	delete(s.hub.subs, s.id)
	s.hub.mu.Unlock()

	s.cbMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.cbMu.Unlock()
}

func (s *Subscription) dispatch() {
	for snapshot := range s.queue {
		s.cbMu.Lock()
		if s.closed {
			s.cbMu.Unlock()

			return
		}
		s.fn(snapshot)
		s.cbMu.Unlock()
	}
}
