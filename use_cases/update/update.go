package update

import (
	"context"
	"log/slog"

	"github.com/giovaniif/items/domain/item"
	"github.com/giovaniif/items/protocols"
	"github.com/google/uuid"
)

type Update struct {
	itemRepository item.Repository
	eventPublisher protocols.EventPublisher
	logger         *slog.Logger
}

func NewUpdate(itemRepository item.Repository, eventPublisher protocols.EventPublisher, logger *slog.Logger) *Update {
	return &Update{
		itemRepository: itemRepository,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Update fully replaces text and completion flag. There is no partial update.
func (u *Update) Update(ctx context.Context, input Input) (item.Item, error) {
	if !input.Draft.Valid() {
		return item.Item{}, item.ErrEmptyText
	}

	updated, err := u.itemRepository.Replace(ctx, input.ItemId, input.Draft)
	if err != nil {
		return item.Item{}, err
	}

	if err := u.eventPublisher.Publish(ctx, protocols.NewEvent(protocols.EventItemUpdated, updated)); err != nil {
		u.logger.WarnContext(ctx, "failed to publish item event", slog.String("item_id", updated.Id.String()), slog.Any("error", err))
	}
	return updated, nil
}

type Input struct {
	ItemId uuid.UUID
	Draft  item.Draft
}
