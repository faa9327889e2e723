package create

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/giovaniif/items/domain/item"
	"github.com/giovaniif/items/protocols"
)

var MAX_ID_ATTEMPTS = 3

type Create struct {
	itemRepository     item.Repository
	idGenerator        protocols.IdGenerator
	idempotencyGateway protocols.IdempotencyGateway
	eventPublisher     protocols.EventPublisher
	logger             *slog.Logger
}

func NewCreate(itemRepository item.Repository, idGenerator protocols.IdGenerator, idempotencyGateway protocols.IdempotencyGateway, eventPublisher protocols.EventPublisher, logger *slog.Logger) *Create {
	return &Create{
		itemRepository:     itemRepository,
		idGenerator:        idGenerator,
		idempotencyGateway: idempotencyGateway,
		eventPublisher:     eventPublisher,
		logger:             logger,
	}
}

func (c *Create) Create(ctx context.Context, input Input) (Output, error) {
	if !input.Draft.Valid() {
		return Output{}, item.ErrEmptyText
	}

	if input.IdempotencyKey == "" {
		created, err := c.insert(ctx, input.Draft)
		return Output{Item: created}, err
	}

	result, err := c.idempotencyGateway.ReserveIdempotencyKey(ctx, input.IdempotencyKey)
	if err != nil {
		return Output{}, err
	}
	if result != nil {
		replayed, err := c.itemRepository.GetItem(ctx, result.ItemId)
		if err != nil {
			return Output{}, err
		}
		return Output{Item: replayed, Replayed: true}, nil
	}

	created, err := c.insert(ctx, input.Draft)
	// The key must settle even if the caller went away after the insert.
	markCtx := context.WithoutCancel(ctx)
	if err != nil {
		if markErr := c.idempotencyGateway.MarkFailure(markCtx, input.IdempotencyKey); markErr != nil {
			c.logger.WarnContext(ctx, "failed to release idempotency key", slog.String("idempotency_key", input.IdempotencyKey), slog.Any("error", markErr))
		}
		return Output{}, err
	}
	if markErr := c.idempotencyGateway.MarkSuccess(markCtx, input.IdempotencyKey, created.Id); markErr != nil {
		c.logger.WarnContext(ctx, "failed to record idempotency key", slog.String("idempotency_key", input.IdempotencyKey), slog.String("item_id", created.Id.String()), slog.Any("error", markErr))
	}
	return Output{Item: created}, nil
}

func (c *Create) insert(ctx context.Context, draft item.Draft) (item.Item, error) {
	for i := 0; i < MAX_ID_ATTEMPTS; i++ {
		id, err := c.idGenerator.NewId()
		if err != nil {
			return item.Item{}, fmt.Errorf("generate item id: %w", err)
		}
		created := item.New(id, draft)
		err = c.itemRepository.Insert(ctx, created)
		if errors.Is(err, item.ErrDuplicateId) {
			c.logger.WarnContext(ctx, "generated item id already in use", slog.String("item_id", id.String()))
			continue
		}
		if err != nil {
			return item.Item{}, err
		}

		if err := c.eventPublisher.Publish(ctx, protocols.NewEvent(protocols.EventItemCreated, created)); err != nil {
			c.logger.WarnContext(ctx, "failed to publish item event", slog.String("item_id", id.String()), slog.Any("error", err))
		}
		return created, nil
	}
	return item.Item{}, fmt.Errorf("%w after %d attempts", item.ErrDuplicateId, MAX_ID_ATTEMPTS)
}

type Input struct {
	Draft          item.Draft
	IdempotencyKey string
}

type Output struct {
	Item     item.Item
	Replayed bool
}
