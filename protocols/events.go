package protocols

import (
	"context"
	"time"

	"github.com/giovaniif/items/domain/item"
	"github.com/google/uuid"
)

const (
	EventItemCreated = "item.created"
	EventItemUpdated = "item.updated"
	EventItemDeleted = "item.deleted"
)

// Event describes a mutation that already happened. Item is nil for deletions.
type Event struct {
	Type       string     `json:"type"`
	ItemId     uuid.UUID  `json:"item_id"`
	Item       *item.Item `json:"item,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func NewEvent(eventType string, it item.Item) Event {
	event := Event{Type: eventType, ItemId: it.Id, OccurredAt: time.Now().UTC()}
	if eventType != EventItemDeleted {
		event.Item = &it
	}
	return event
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
