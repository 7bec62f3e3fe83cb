// Package broadcast fans status and runner output out to connected observers.
// Delivery is fire-and-forget with no queueing: an observer that cannot be
// written to is dropped from the set and receives nothing further.
package broadcast

import (
	"context"
	"sync"

	"github.com/hairizuan-noorazman/suitegen/logger"
)

// Kind classifies a broadcast event.
type Kind string

const (
	KindStatus  Kind = "status"
	KindOutput  Kind = "output"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Event is one observability message pushed to all observers.
type Event struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Sink is the write-side contract consumed by the pipeline and handlers.
type Sink interface {
	// Notify delivers an event best-effort. It never blocks on a slow
	// observer and never returns an error.
	Notify(event Event)
}

// Client is one connected observer. Send returning an error removes the
// client from the hub.
type Client interface {
	Send(event Event) error
}

// Hub is a mutex-guarded observer set implementing Sink.
type Hub struct {
	mu      sync.Mutex
	clients map[Client]struct{}
	logger  logger.Logger
}

// NewHub creates an empty hub.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[Client]struct{}),
		logger:  log,
	}
}

// Subscribe adds an observer to the fan-out set.
func (h *Hub) Subscribe(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// Unsubscribe removes an observer. Safe to call for an already-removed client.
func (h *Hub) Unsubscribe(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Count returns the number of connected observers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Notify delivers the event to every observer. A failed write drops the
// observer from the set.
func (h *Hub) Notify(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if err := c.Send(event); err != nil {
			h.logger.Debug(context.Background(), "dropping unreachable broadcast client", map[string]interface{}{
				"error": err.Error(),
			})
			delete(h.clients, c)
		}
	}
}
