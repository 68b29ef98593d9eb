package websockets

import (
	"context"
	"log/slog"
	"sync"
)

const defaultSubscriptionBuffer = 16

// Hub fans messages out to in-process subscribers of the same owner.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	buffer int

	// OnDrop, if set, is called when a message is dropped for a slow subscriber.
	OnDrop func(ownerID string)
}

// NewHub creates a Hub whose subscriptions buffer up to buffer messages.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultSubscriptionBuffer
	}
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

var _ Publisher = (*Hub)(nil)

// Subscription receives the messages published for one owner until it is closed.
type Subscription struct {
	hub     *Hub
	ownerID string
	ch      chan Message
	once    sync.Once
}

// C returns the channel messages are delivered on. It is closed by Close.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Close detaches the subscription from the hub. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if owned, ok := s.hub.subs[s.ownerID]; ok {
			delete(owned, s)
			if len(owned) == 0 {
				delete(s.hub.subs, s.ownerID)
			}
		}
		close(s.ch)
	})
}

// Subscribe registers a new subscription for ownerID. Callers must Close it.
func (h *Hub) Subscribe(ownerID string) *Subscription {
	sub := &Subscription{hub: h, ownerID: ownerID, ch: make(chan Message, h.buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[*Subscription]struct{})
	}
	h.subs[ownerID][sub] = struct{}{}
	return sub
}

// Publish delivers message to every subscription of message.OwnerID without blocking.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[message.OwnerID] {
		select {
		case sub.ch <- message:
		default:
			slog.WarnContext(ctx, "dropping websocket message for slow subscriber", "owner_id", message.OwnerID, "type", message.Type)
			if h.OnDrop != nil {
				h.OnDrop(message.OwnerID)
			}
		}
	}
	return nil
}

// Subscribers returns the number of open subscriptions for ownerID.
func (h *Hub) Subscribers(ownerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[ownerID])
}
