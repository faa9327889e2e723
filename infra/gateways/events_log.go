package gateways

import (
	"context"
	"log/slog"

	"github.com/giovaniif/items/protocols"
)

// EventPublisherLog is used when no broker is configured.
type EventPublisherLog struct {
	logger *slog.Logger
}

func NewEventPublisherLog(logger *slog.Logger) *EventPublisherLog {
	return &EventPublisherLog{logger: logger}
}

func (p *EventPublisherLog) Publish(ctx context.Context, event protocols.Event) error {
	p.logger.InfoContext(ctx, "item event",
		slog.String("type", event.Type),
		slog.String("item_id", event.ItemId.String()),
	)
	return nil
}
