package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Fridge domain events
type ItemAddedEvent struct {
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit"`
	Category   string    `json:"category"`
	AddedDate  time.Time `json:"added_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type QuantityAdjustedEvent struct {
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	Delta      int       `json:"delta"`
	NewTotal   int       `json:"new_total"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ItemTrashedEvent struct {
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ItemRestoredEvent struct {
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ItemPurgedEvent struct {
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InMemoryEventPublisher records events and logs them. Used when Kafka is
// disabled or unreachable.
type InMemoryEventPublisher struct {
	logger *zap.Logger
	mu     sync.Mutex
	events []interface{}
}

func NewEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Debug("Event published (in-memory)",
		zap.String("event-type", EventType(event)),
		zap.Any("event", event),
	)
	return nil
}

// Events returns a copy of everything published so far
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}

// EventType returns the event type as string
func EventType(event interface{}) string {
	switch event.(type) {
	case ItemAddedEvent:
		return "ItemAdded"
	case QuantityAdjustedEvent:
		return "QuantityAdjusted"
	case ItemTrashedEvent:
		return "ItemTrashed"
	case ItemRestoredEvent:
		return "ItemRestored"
	case ItemPurgedEvent:
		return "ItemPurged"
	default:
		return "Unknown"
	}
}

// ItemID returns the id of the item an event refers to, used as partition key
func ItemID(event interface{}) (uuid.UUID, bool) {
	switch e := event.(type) {
	case ItemAddedEvent:
		return e.ItemID, true
	case QuantityAdjustedEvent:
		return e.ItemID, true
	case ItemTrashedEvent:
		return e.ItemID, true
	case ItemRestoredEvent:
		return e.ItemID, true
	case ItemPurgedEvent:
		return e.ItemID, true
	}
	return uuid.Nil, false
}
