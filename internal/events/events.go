package events

import (
	"sync"
	"time"
)

// Routing keys of the events the POS emits.
const (
	OrderFinalized = "order.finalized"
	OrderCompleted = "order.completed"
)

// OrderEvent is the body of every order event.
type OrderEvent struct {
	Ref        string    `json:"ref,omitempty"`
	OrderID    string    `json:"order_id"`
	Server     string    `json:"server,omitempty"`
	Total      string    `json:"total,omitempty"`
	ItemCount  int       `json:"item_count"`
	Timestamp  int64     `json:"timestamp"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends events to whoever listens outside the process.
// Publishing is best effort: the collections stay the source of truth.
type Publisher interface {
	Publish(routingKey string, event interface{}) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, interface{}) error { return nil }
func (NopPublisher) Close() error                      { return nil }

// Recorder keeps published events in memory; handy in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

// Recorded is one event captured by a Recorder.
type Recorded struct {
	RoutingKey string
	Event      interface{}
}

func (r *Recorder) Publish(key string, event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Recorded{RoutingKey: key, Event: event})
	return nil
}

// Events returns what has been published so far.
func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Recorded(nil), r.events...)
}

func (r *Recorder) Close() error { return nil }
