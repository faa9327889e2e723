package item

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, item Item) error
	GetItem(ctx context.Context, itemId uuid.UUID) (Item, error)
	List(ctx context.Context, skip int, limit int) ([]Item, error)
	Replace(ctx context.Context, itemId uuid.UUID, draft Draft) (Item, error)
	Delete(ctx context.Context, itemId uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
