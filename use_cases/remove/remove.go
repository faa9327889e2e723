package remove

import (
	"context"
	"log/slog"

	"github.com/giovaniif/items/domain/item"
	"github.com/giovaniif/items/protocols"
	"github.com/google/uuid"
)

type Remove struct {
	itemRepository item.Repository
	eventPublisher protocols.EventPublisher
	logger         *slog.Logger
}

func NewRemove(itemRepository item.Repository, eventPublisher protocols.EventPublisher, logger *slog.Logger) *Remove {
	return &Remove{
		itemRepository: itemRepository,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (r *Remove) Remove(ctx context.Context, itemId uuid.UUID) error {
	if err := r.itemRepository.Delete(ctx, itemId); err != nil {
		return err
	}

	if err := r.eventPublisher.Publish(ctx, protocols.NewEvent(protocols.EventItemDeleted, item.Item{Id: itemId})); err != nil {
		r.logger.WarnContext(ctx, "failed to publish item event", slog.String("item_id", itemId.String()), slog.Any("error", err))
	}
	return nil
}
