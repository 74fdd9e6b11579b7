package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
	EventBookingDeleted       = "booking_deleted"
	EventPartnerJoined        = "partner_joined"
)

// BookingEventPayload is the minimal booking snapshot handed to event
// consumers.
type BookingEventPayload struct {
	BookingID   string `json:"booking_id"`
	ServiceType string `json:"service_type"`
	ServiceName string `json:"service_name,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Status      string `json:"status"`
	OldStatus   string `json:"old_status,omitempty"`
	ChangedBy   string `json:"changed_by,omitempty"`
	Note        string `json:"note,omitempty"`
}

// PartnerEventPayload describes a partner application to consumers.
type PartnerEventPayload struct {
	PartnerID string `json:"partner_id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
