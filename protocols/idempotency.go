package protocols

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrIdempotencyKeyInProgress = errors.New("idempotency key is already being processed")

type IdempotencyKeyResult struct {
	Success bool      `json:"success"`
	ItemId  uuid.UUID `json:"item_id"`
}

type IdempotencyGateway interface {
	ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*IdempotencyKeyResult, error)
	MarkFailure(ctx context.Context, idempotencyKey string) error
	MarkSuccess(ctx context.Context, idempotencyKey string, itemId uuid.UUID) error
}
